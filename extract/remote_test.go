package extract

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/models"
)

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake body"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRemoteExtract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("expected path /extract, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "report.pdf" {
			t.Errorf("expected filename report.pdf, got %s", header.Filename)
		}

		json.NewEncoder(w).Encode([]models.PageContent{
			{Text: "page one", PageNum: 1, FileName: "report.pdf"},
			{Text: "page two", PageNum: 2, FileName: "report.pdf"},
		})
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(transformx.New(server.URL))
	pages, err := extractor.Extract(context.Background(), writePDF(t))

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Text != "page one" || pages[1].PageNum != 2 {
		t.Errorf("unexpected pages: %+v", pages)
	}
}

func TestRemoteExtract_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("unreadable pdf"))
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(transformx.New(server.URL))
	_, err := extractor.Extract(context.Background(), writePDF(t))

	var serviceErr *transformx.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if serviceErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", serviceErr.StatusCode)
	}
}

func TestRemoteExtract_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	extractor := NewRemoteExtractor(transformx.New(server.URL))
	_, err := extractor.Extract(context.Background(), writePDF(t))

	var unavailable *transformx.ServiceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ServiceUnavailableError, got %v", err)
	}
}

func TestRemoteExtract_EmptyPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(transformx.New(server.URL))
	if _, err := extractor.Extract(context.Background(), writePDF(t)); err == nil {
		t.Fatal("expected error for empty extraction")
	}
}

func TestRemoteExtract_MissingFile(t *testing.T) {
	extractor := NewRemoteExtractor(transformx.New("http://unused.invalid"))
	if _, err := extractor.Extract(context.Background(), "/does/not/exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

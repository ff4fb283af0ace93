package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/models"
)

// RemoteExtractor delegates extraction to a backend endpoint: the raw file
// goes up as multipart, the ordered page array comes back as JSON. This is
// how pdf content is extracted; the portal has no local pdf parser.
type RemoteExtractor struct {
	client *transformx.Client
	path   string
}

func NewRemoteExtractor(client *transformx.Client) *RemoteExtractor {
	return &RemoteExtractor{
		client: client,
		path:   "/extract",
	}
}

func (e *RemoteExtractor) Extract(ctx context.Context, path string) ([]models.PageContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := e.client.NewRequest(ctx, http.MethodPost, e.path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &transformx.ServiceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &transformx.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var pages []models.PageContent
	if err := json.NewDecoder(resp.Body).Decode(&pages); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}
	if len(pages) == 0 {
		return nil, errors.New("extraction produced no pages")
	}

	return pages, nil
}

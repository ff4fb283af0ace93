package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Indhu-DataAI/TransformX/models"
)

// DocxExtractor parses .docx files locally. A docx is a zip archive; the
// body lives in word/document.xml. Pages are split on explicit page breaks
// (w:br w:type="page") and on lastRenderedPageBreak markers; a document
// without breaks yields a single page.
type DocxExtractor struct{}

func (DocxExtractor) Extract(ctx context.Context, path string) ([]models.PageContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer r.Close()

	var doc *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, errors.New("not a valid docx file: word/document.xml missing")
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}
	defer rc.Close()

	pages, err := splitDocumentXML(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document body: %w", err)
	}

	fileName := filepath.Base(path)
	var out []models.PageContent
	for _, text := range pages {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, models.PageContent{
			Text:     text,
			PageNum:  len(out) + 1,
			FileName: fileName,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("document contains no extractable text")
	}

	return out, nil
}

// splitDocumentXML walks the WordprocessingML token stream collecting run
// text (w:t), inserting newlines at paragraph ends and splitting pages at
// page breaks.
func splitDocumentXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var pages []string
	var current strings.Builder
	flush := func() {
		pages = append(pages, current.String())
		current.Reset()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, err
				}
				current.WriteString(text)
			case "br":
				for _, attr := range t.Attr {
					if attr.Name.Local == "type" && attr.Value == "page" {
						flush()
					}
				}
			case "lastRenderedPageBreak":
				flush()
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				current.WriteString("\n")
			}
		}
	}
	flush()

	return pages, nil
}

// Package extract provides document text extraction: given a file, produce
// an ordered sequence of page records for ingestion. Extraction is a
// pluggable capability: docx files are parsed locally, everything else is
// delegated to a backend extraction endpoint.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Indhu-DataAI/TransformX/models"
)

// Extractor produces page-level text content from a document file. The
// returned slice is ordered by page and non-empty on success.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]models.PageContent, error)
}

// ForFile picks the extractor for a file by extension: .docx parses
// locally, anything else goes to the remote extraction endpoint.
func ForFile(path string, remote *RemoteExtractor) Extractor {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return DocxExtractor{}
	}
	return remote
}

// AutoExtractor dispatches per file via ForFile
type AutoExtractor struct {
	Remote *RemoteExtractor
}

func (a AutoExtractor) Extract(ctx context.Context, path string) ([]models.PageContent, error) {
	return ForFile(path, a.Remote).Extract(ctx, path)
}

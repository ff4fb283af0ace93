// Package services implements the gateway operations against accelerator
// backends.
//
// This file implements the EvaluationService which handles the evaluation
// workflow endpoints: the health probe, single-shot evaluation submission
// (multipart with the dataset file), and canonical result retrieval for
// export. Every transport failure is normalized into the typed error
// taxonomy of the root package; submission failures are additionally folded
// into an error-status EvaluationResult so the rendering layer has a single
// path.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/models"
)

// ClientInterface defines the methods needed from transformx.Client
type ClientInterface interface {
	NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error)
	Do(req *http.Request) (*http.Response, error)
	DoIdempotent(req *http.Request) (*http.Response, error)
	BaseURL() string
}

type EvaluationService struct {
	client ClientInterface
}

func NewEvaluationService(client ClientInterface) *EvaluationService {
	return &EvaluationService{
		client: client,
	}
}

// Health issues the liveness probe. A non-responding or non-200 backend is
// unhealthy; the client timeout bounds the probe.
func (s *EvaluationService) Health(ctx context.Context) error {
	req, err := s.client.NewRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	resp, err := s.client.DoIdempotent(req)
	if err != nil {
		return &transformx.ServiceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &transformx.ServiceUnavailableError{
			Err: fmt.Errorf("health probe returned status %d", resp.StatusCode),
		}
	}

	return nil
}

// Submit sends one evaluation request as a multipart POST. The returned
// EvaluationResult is never nil: all failure classes come back with status
// "error" and a message, alongside the typed error for callers that
// discriminate. Submission may trigger backend computation and is never
// retried.
func (s *EvaluationService) Submit(ctx context.Context, cfg *models.EvaluationConfig) (*models.EvaluationResult, error) {
	if cfg.ContentType != models.DatasetContentType {
		err := &transformx.InvalidInputError{
			Field:   "dataset",
			Message: fmt.Sprintf("dataset must be %s, got %q", models.DatasetContentType, cfg.ContentType),
		}
		return errorResult(err), err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("agent_type", string(cfg.AgentType)); err != nil {
		e := &transformx.InvalidInputError{Field: "agent_type", Message: err.Error()}
		return errorResult(e), e
	}
	if err := w.WriteField("model_name", cfg.ModelName); err != nil {
		e := &transformx.InvalidInputError{Field: "model_name", Message: err.Error()}
		return errorResult(e), e
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, cfg.FileName))
	header.Set("Content-Type", cfg.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		e := &transformx.InvalidInputError{Field: "dataset", Message: err.Error()}
		return errorResult(e), e
	}
	if _, err := part.Write(cfg.Dataset); err != nil {
		e := &transformx.InvalidInputError{Field: "dataset", Message: err.Error()}
		return errorResult(e), e
	}
	if err := w.Close(); err != nil {
		e := &transformx.InvalidInputError{Field: "dataset", Message: err.Error()}
		return errorResult(e), e
	}

	req, err := s.client.NewRequest(ctx, http.MethodPost, "/evaluate", &buf)
	if err != nil {
		e := &transformx.ServiceUnavailableError{Err: err}
		return errorResult(e), e
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		e := &transformx.ServiceUnavailableError{Err: err}
		return errorResult(e), e
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e := &transformx.ServiceUnavailableError{Err: err}
		return errorResult(e), e
	}

	if resp.StatusCode != http.StatusOK {
		e := &transformx.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
		return errorResult(e), e
	}

	var result models.EvaluationResult
	if err := json.Unmarshal(body, &result); err != nil {
		e := &transformx.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
		}
		return errorResult(e), e
	}

	return &result, nil
}

// FetchResults retrieves the last stored evaluation payload as the raw JSON
// the backend returned. Used by the download path so exports always reflect
// server-side truth, fields the client does not model included.
func (s *EvaluationService) FetchResults(ctx context.Context) (json.RawMessage, error) {
	req, err := s.client.NewRequest(ctx, http.MethodGet, "/results", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.DoIdempotent(req)
	if err != nil {
		return nil, &transformx.ServiceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transformx.ServiceUnavailableError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &transformx.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if !json.Valid(body) {
		return nil, &transformx.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    "malformed response: invalid JSON",
		}
	}

	return body, nil
}

func errorResult(err error) *models.EvaluationResult {
	return &models.EvaluationResult{
		Status: "error",
		Error:  err.Error(),
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/models"
)

type DocQAService struct {
	client ClientInterface
}

func NewDocQAService(client ClientInterface) *DocQAService {
	return &DocQAService{
		client: client,
	}
}

// UploadPages sends the full ordered page sequence to the ingestion
// endpoint as one atomic call. Anything other than HTTP 200 is an upload
// failure regardless of payload shape.
func (s *DocQAService) UploadPages(ctx context.Context, pages []models.PageContent) error {
	if len(pages) == 0 {
		return &transformx.InvalidInputError{
			Field:   "pages",
			Message: "no extracted pages to upload",
		}
	}

	body, err := json.Marshal(pages)
	if err != nil {
		return &transformx.InvalidInputError{Field: "pages", Message: err.Error()}
	}

	req, err := s.client.NewRequest(ctx, http.MethodPost, "/upload", bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &transformx.ServiceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &transformx.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	return nil
}

// Ask sends one question to the QA endpoint and returns the answer text
func (s *DocQAService) Ask(ctx context.Context, question string) (string, error) {
	payload := map[string]string{
		"question": question,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &transformx.QAServiceError{Err: err}
	}

	req, err := s.client.NewRequest(ctx, http.MethodPost, "/qa", bytes.NewReader(body))
	if err != nil {
		return "", &transformx.QAServiceError{Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &transformx.QAServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &transformx.QAServiceError{
			Err: fmt.Errorf("qa endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var answer struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return "", &transformx.QAServiceError{Err: fmt.Errorf("malformed response: %w", err)}
	}

	return answer.Answer, nil
}

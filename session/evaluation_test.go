package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/models"
)

// fakeEvalBackend is a programmable EvaluationBackend for session tests
type fakeEvalBackend struct {
	healthErr    error
	submitResult *models.EvaluationResult
	submitErr    error
	submitCalls  int
	fetchPayload json.RawMessage
	fetchErr     error

	// when set, Submit blocks until released
	submitStarted chan struct{}
	submitRelease chan struct{}
}

func (f *fakeEvalBackend) Health(ctx context.Context) error {
	return f.healthErr
}

func (f *fakeEvalBackend) Submit(ctx context.Context, cfg *models.EvaluationConfig) (*models.EvaluationResult, error) {
	f.submitCalls++
	if f.submitStarted != nil {
		close(f.submitStarted)
		<-f.submitRelease
	}
	return f.submitResult, f.submitErr
}

func (f *fakeEvalBackend) FetchResults(ctx context.Context) (json.RawMessage, error) {
	return f.fetchPayload, f.fetchErr
}

func successResult() *models.EvaluationResult {
	return &models.EvaluationResult{
		Status:  "success",
		Results: []map[string]any{{"question": "q", "score": 0.9}},
		Metrics: map[string]float64{"accuracy": 0.873},
	}
}

func selectJSON(t *testing.T, s *EvaluationSession) {
	t.Helper()
	if err := s.SelectFile("dataset.json", "application/json", []byte("[]")); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
}

func TestStart_Healthy(t *testing.T) {
	s := NewEvaluationSession("rag-evaluator", &fakeEvalBackend{}, nil)

	if got := s.Start(context.Background()); got != HealthHealthy {
		t.Errorf("expected healthy, got %s", got)
	}
	if s.Health() != HealthHealthy {
		t.Errorf("expected stored health healthy, got %s", s.Health())
	}
}

func TestStart_Unhealthy(t *testing.T) {
	backend := &fakeEvalBackend{
		healthErr: &transformx.ServiceUnavailableError{Err: errors.New("connection refused")},
	}
	s := NewEvaluationSession("rag-evaluator", backend, nil)

	if got := s.Start(context.Background()); got != HealthUnhealthy {
		t.Errorf("expected unhealthy, got %s", got)
	}

	// a recovered backend flips the gate on the next start
	backend.healthErr = nil
	if got := s.Start(context.Background()); got != HealthHealthy {
		t.Errorf("expected healthy after recovery, got %s", got)
	}
}

func TestSetConfig(t *testing.T) {
	s := NewEvaluationSession("rag-evaluator", &fakeEvalBackend{}, nil)

	if agent, model := s.Config(); agent != models.AgentQA || model != "gpt-4o-mini" {
		t.Errorf("unexpected defaults: %s, %s", agent, model)
	}

	if err := s.SetConfig(models.AgentSummarization, "gpt-4"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if agent, model := s.Config(); agent != models.AgentSummarization || model != "gpt-4" {
		t.Errorf("config not applied: %s, %s", agent, model)
	}

	err := s.SetConfig("translation", "gpt-4")
	var invalid *transformx.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError for unknown agent, got %v", err)
	}
}

func TestSelectFile_RejectsNonJSON(t *testing.T) {
	s := NewEvaluationSession("rag-evaluator", &fakeEvalBackend{}, nil)

	for _, ct := range []string{"text/csv", "application/pdf", "", "garbage;;"} {
		err := s.SelectFile("data.csv", ct, []byte("a,b"))
		var invalid *transformx.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("content type %q: expected InvalidInputError, got %v", ct, err)
		}
	}

	if s.State() != RunIdle {
		t.Errorf("expected state untouched after rejection, got %s", s.State())
	}
	if s.FileName() != "" {
		t.Errorf("expected no stored file, got %s", s.FileName())
	}
}

func TestSelectFile_AcceptsJSONWithParams(t *testing.T) {
	s := NewEvaluationSession("rag-evaluator", &fakeEvalBackend{}, nil)

	if err := s.SelectFile("dataset.json", "application/json; charset=utf-8", []byte("[]")); err != nil {
		t.Fatalf("expected parametered media type accepted, got %v", err)
	}
	if s.State() != RunFileSelected {
		t.Errorf("expected file-selected, got %s", s.State())
	}
	if s.FileName() != "dataset.json" {
		t.Errorf("expected dataset.json, got %s", s.FileName())
	}
}

func TestRun_GateOrder(t *testing.T) {
	backend := &fakeEvalBackend{submitResult: successResult()}
	s := NewEvaluationSession("rag-evaluator", backend, nil)

	// health gate first
	_, err := s.Run(context.Background())
	var precondition *transformx.PreconditionError
	if !errors.As(err, &precondition) || precondition.Gate != "health" {
		t.Fatalf("expected health precondition, got %v", err)
	}

	s.Start(context.Background())

	// then dataset gate
	_, err = s.Run(context.Background())
	if !errors.As(err, &precondition) || precondition.Gate != "dataset" {
		t.Fatalf("expected dataset precondition, got %v", err)
	}

	if backend.submitCalls != 0 {
		t.Errorf("expected no submission while gated, got %d", backend.submitCalls)
	}
}

func TestRun_Success(t *testing.T) {
	backend := &fakeEvalBackend{submitResult: successResult()}
	s := NewEvaluationSession("rag-evaluator", backend, nil)
	s.Start(context.Background())
	selectJSON(t, s)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got %q", result.Status)
	}
	if s.State() != RunSuccess {
		t.Errorf("expected success state, got %s", s.State())
	}
	if s.Result() == nil {
		t.Error("expected stored result")
	}
}

func TestRun_ErrorResult(t *testing.T) {
	submitErr := &transformx.ServiceError{StatusCode: 400, Message: "bad dataset"}
	backend := &fakeEvalBackend{
		submitResult: &models.EvaluationResult{Status: "error", Error: submitErr.Error()},
		submitErr:    submitErr,
	}
	s := NewEvaluationSession("rag-evaluator", backend, nil)
	s.Start(context.Background())
	selectJSON(t, s)

	result, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if result == nil || result.Status != "error" {
		t.Fatalf("expected error-status result, got %+v", result)
	}
	if s.State() != RunError {
		t.Errorf("expected error state, got %s", s.State())
	}
	if s.ErrorMessage() != submitErr.Error() {
		t.Errorf("expected stored error message, got %q", s.ErrorMessage())
	}
}

func TestRun_SingleFlight(t *testing.T) {
	backend := &fakeEvalBackend{
		submitResult:  successResult(),
		submitStarted: make(chan struct{}),
		submitRelease: make(chan struct{}),
	}
	s := NewEvaluationSession("rag-evaluator", backend, nil)
	s.Start(context.Background())
	selectJSON(t, s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(context.Background())
	}()

	<-backend.submitStarted

	_, err := s.Run(context.Background())
	var precondition *transformx.PreconditionError
	if !errors.As(err, &precondition) || precondition.Gate != "busy" {
		t.Fatalf("expected busy precondition, got %v", err)
	}

	close(backend.submitRelease)
	<-done

	if backend.submitCalls != 1 {
		t.Errorf("expected 1 submission, got %d", backend.submitCalls)
	}
	if s.State() != RunSuccess {
		t.Errorf("expected success state after release, got %s", s.State())
	}
}

func TestDownload(t *testing.T) {
	backend := &fakeEvalBackend{
		fetchPayload: json.RawMessage(`{"status":"success","metrics":{"accuracy":0.873},"run_id":"abc-123"}`),
	}
	s := NewEvaluationSession("rag-evaluator", backend, nil)

	var buf bytes.Buffer
	if err := s.Download(context.Background(), &buf); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected valid JSON export: %v", err)
	}
	if decoded["status"] != "success" {
		t.Errorf("expected success status in export, got %v", decoded["status"])
	}
	// fields the client does not model pass through untouched
	if decoded["run_id"] != "abc-123" {
		t.Errorf("expected unmodeled field preserved, got %v", decoded["run_id"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  ")) {
		t.Error("expected pretty-printed JSON")
	}
}

func TestDownload_FetchFailure(t *testing.T) {
	backend := &fakeEvalBackend{
		fetchErr: &transformx.ServiceError{StatusCode: 404, Message: "no results stored"},
	}
	s := NewEvaluationSession("rag-evaluator", backend, nil)

	var buf bytes.Buffer
	err := s.Download(context.Background(), &buf)

	var serviceErr *transformx.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written on failure, got %d bytes", buf.Len())
	}
}

func TestSucceeded(t *testing.T) {
	tests := []struct {
		result   *models.EvaluationResult
		expected bool
	}{
		{nil, false},
		{&models.EvaluationResult{Status: "success"}, true},
		{&models.EvaluationResult{Status: "error"}, false},
		{&models.EvaluationResult{Status: ""}, false},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			if got := tt.result.Succeeded(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

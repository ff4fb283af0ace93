// Package session implements the stateful orchestration logic for the two
// in-process accelerator workflows: evaluation runs and document QA chats.
//
// Session managers are state machines over the gateway services. All gates
// (backend health, selected file, single-flight guards) are enforced here at
// the API boundary, not in the presentation layer, so headless callers
// cannot bypass them. Each session is independent and keyed by project id;
// a mutex keeps state transitions consistent while network calls are in
// flight.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"sync"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/models"
	"go.uber.org/zap"
)

// HealthState is the backend health gate, re-derived once per session start
type HealthState string

const (
	HealthUnknown   HealthState = "unknown"
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
)

// RunState is the evaluation run lifecycle
type RunState string

const (
	RunIdle         RunState = "idle"
	RunFileSelected RunState = "file-selected"
	RunRunning      RunState = "running"
	RunSuccess      RunState = "success"
	RunError        RunState = "error"
)

// DownloadFileName is the artifact name for exported results
const DownloadFileName = "evaluation_results.json"

// EvaluationBackend is the gateway surface the session needs.
// *services.EvaluationService satisfies it.
type EvaluationBackend interface {
	Health(ctx context.Context) error
	Submit(ctx context.Context, cfg *models.EvaluationConfig) (*models.EvaluationResult, error)
	FetchResults(ctx context.Context) (json.RawMessage, error)
}

// DatasetFile is a selected dataset: name, declared MIME type, content
type DatasetFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// EvaluationSession coordinates one project's evaluation workflow
type EvaluationSession struct {
	mu      sync.Mutex
	backend EvaluationBackend
	logger  *zap.Logger

	projectID string
	agentType models.AgentType
	modelName string

	health HealthState
	run    RunState
	file   *DatasetFile
	result *models.EvaluationResult
	errMsg string
}

func NewEvaluationSession(projectID string, backend EvaluationBackend, logger *zap.Logger) *EvaluationSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationSession{
		backend:   backend,
		logger:    logger,
		projectID: projectID,
		agentType: models.AgentQA,
		modelName: "gpt-4o-mini",
		health:    HealthUnknown,
		run:       RunIdle,
	}
}

// Start runs the one-shot health probe and records the outcome. Callers
// wanting a fresh reading run it again.
func (s *EvaluationSession) Start(ctx context.Context) HealthState {
	err := s.backend.Health(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.health = HealthUnhealthy
		s.logger.Warn("health check failed",
			zap.String("project", s.projectID),
			zap.Error(err))
	} else {
		s.health = HealthHealthy
	}
	return s.health
}

// SetConfig updates the agent type and model name for the next run
func (s *EvaluationSession) SetConfig(agent models.AgentType, model string) error {
	switch agent {
	case models.AgentQA, models.AgentSummarization, models.AgentMultiturn:
	default:
		return &transformx.InvalidInputError{
			Field:   "agent_type",
			Message: fmt.Sprintf("unknown agent type %q", agent),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.agentType = agent
	if model != "" {
		s.modelName = model
	}
	return nil
}

// SelectFile validates and stores a dataset file. Only application/json is
// accepted; a rejected file leaves the run state untouched. Selecting a new
// file after a finished run returns the session to file-selected.
func (s *EvaluationSession) SelectFile(name, contentType string, data []byte) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != models.DatasetContentType {
		return &transformx.InvalidInputError{
			Field:   "dataset",
			Message: fmt.Sprintf("please select a JSON file (got %q)", contentType),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == RunRunning {
		return &transformx.PreconditionError{
			Gate:    "busy",
			Message: "an evaluation is already running",
		}
	}

	s.file = &DatasetFile{Name: name, ContentType: models.DatasetContentType, Data: data}
	s.run = RunFileSelected
	return nil
}

// Run submits the evaluation. Hard preconditions: health = healthy, a
// selected file, and no run already in flight. Violations return
// PreconditionError without touching state. The returned result is never
// nil on a submission attempt; failures come back with status "error".
func (s *EvaluationSession) Run(ctx context.Context) (*models.EvaluationResult, error) {
	s.mu.Lock()
	if s.run == RunRunning {
		s.mu.Unlock()
		return nil, &transformx.PreconditionError{
			Gate:    "busy",
			Message: "an evaluation is already running",
		}
	}
	if s.health != HealthHealthy {
		s.mu.Unlock()
		return nil, &transformx.PreconditionError{
			Gate:    "health",
			Message: fmt.Sprintf("backend is %s", s.health),
		}
	}
	if s.file == nil {
		s.mu.Unlock()
		return nil, &transformx.PreconditionError{
			Gate:    "dataset",
			Message: "no dataset file selected",
		}
	}

	cfg := &models.EvaluationConfig{
		AgentType:   s.agentType,
		ModelName:   s.modelName,
		FileName:    s.file.Name,
		ContentType: s.file.ContentType,
		Dataset:     s.file.Data,
	}
	s.run = RunRunning
	s.result = nil
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.backend.Submit(ctx, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Succeeded() {
		s.run = RunSuccess
		s.result = result
	} else {
		s.run = RunError
		s.result = result
		if result != nil {
			s.errMsg = result.Error
		} else if err != nil {
			s.errMsg = err.Error()
		}
		s.logger.Warn("evaluation failed",
			zap.String("project", s.projectID),
			zap.String("message", s.errMsg))
	}
	return result, err
}

// Download re-fetches the canonical result set from the backend and writes
// it as pretty-printed UTF-8 JSON. The payload passes through untouched
// apart from indentation: the export always reflects server-side truth, not
// the locally cached preview or the client's model of the result shape.
func (s *EvaluationSession) Download(ctx context.Context, w io.Writer) error {
	raw, err := s.backend.FetchResults(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}

	_, err = buf.WriteTo(w)
	return err
}

// Health returns the current health gate state
func (s *EvaluationSession) Health() HealthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health
}

// State returns the current run state
func (s *EvaluationSession) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run
}

// Result returns the last stored evaluation result, if any
func (s *EvaluationSession) Result() *models.EvaluationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// ErrorMessage returns the message of the last failed run
func (s *EvaluationSession) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// FileName returns the selected dataset file name, or ""
func (s *EvaluationSession) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ""
	}
	return s.file.Name
}

// Config returns the configured agent type and model name
func (s *EvaluationSession) Config() (models.AgentType, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agentType, s.modelName
}

package models

// AgentType selects the evaluation agent on the backend
type AgentType string

const (
	AgentQA            AgentType = "qa"
	AgentSummarization AgentType = "summarization"
	AgentMultiturn     AgentType = "multiturn"
)

// DatasetContentType is the only accepted MIME type for dataset files
const DatasetContentType = "application/json"

// EvaluationConfig is one evaluation submission: agent, model, and the
// dataset file. Created per run; never persisted.
type EvaluationConfig struct {
	AgentType   AgentType
	ModelName   string
	FileName    string
	ContentType string
	Dataset     []byte
}

// EvaluationResult is the backend's evaluation payload. If Status is
// "error", Error carries a human-readable message and Results/Metrics are
// absent. Metric values are fractions in [0,1] by convention; out-of-range
// values are a backend bug and are surfaced as-is.
type EvaluationResult struct {
	Status  string             `json:"status"`
	Results []map[string]any   `json:"results,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Succeeded reports whether the evaluation completed successfully
func (r *EvaluationResult) Succeeded() bool {
	return r != nil && r.Status == "success"
}

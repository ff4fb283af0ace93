package transformx

import "fmt"

// ServiceUnavailableError indicates that a backend could not be reached at
// all: connection failures, timeouts, and failed health probes.
type ServiceUnavailableError struct {
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("backend unavailable: %v", e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Err
}

// ServiceError indicates that the backend responded with a non-success
// status. Message carries the response body when one was returned.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// InvalidInputError represents a client-side validation failure, caught
// before any request is sent.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for '%s': %s", e.Field, e.Message)
}

// PreconditionError is returned when a session operation is attempted while
// a required gate is not satisfied: backend health, a selected file, or the
// single-flight guard on mutating calls.
type PreconditionError struct {
	Gate    string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition '%s' not met: %s", e.Gate, e.Message)
}

// QAServiceError indicates that a question could not be answered by the QA
// backend.
type QAServiceError struct {
	Err error
}

func (e *QAServiceError) Error() string {
	return fmt.Sprintf("qa service error: %v", e.Err)
}

func (e *QAServiceError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned when a document with an unsupported
// file extension is selected.
type UnsupportedFormatError struct {
	FileName string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (only .pdf and .docx are supported)", e.FileName)
}

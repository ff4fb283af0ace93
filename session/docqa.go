package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/extract"
	"github.com/Indhu-DataAI/TransformX/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocState is the document lifecycle for a QA session
type DocState string

const (
	DocStateNone         DocState = "no-document"
	DocStateExtracting   DocState = "extracting"
	DocStateUploading    DocState = "uploading"
	DocStateUploadFailed DocState = "upload-failed"
	DocStateReady        DocState = "ready"
)

const (
	// WelcomeMessage seeds the transcript after a successful upload
	WelcomeMessage = "Welcome! Ask me anything about your document."
	// GreetingMessage seeds the transcript after "new chat"
	GreetingMessage = "Hi! How can I help you with your document?"
	// FallbackAnswer pairs with a user question when the QA call fails, so
	// the transcript never has an orphaned unanswered question.
	FallbackAnswer = "Sorry, something went wrong. Please try again later."
)

// QABackend is the gateway surface the session needs.
// *services.DocQAService satisfies it.
type QABackend interface {
	UploadPages(ctx context.Context, pages []models.PageContent) error
	Ask(ctx context.Context, question string) (string, error)
}

// DocQASession coordinates one project's document QA workflow: ingest a
// document, then run a multi-turn chat over it. The transcript is
// append-only and strictly creation-ordered; the two messages of one send
// action are always adjacent.
type DocQASession struct {
	mu        sync.Mutex
	backend   QABackend
	extractor extract.Extractor
	logger    *zap.Logger

	state      DocState
	statusMsg  string
	filePath   string
	transcript []models.ChatMessage
	seq        int64
	busy       bool
}

func NewDocQASession(backend QABackend, extractor extract.Extractor, logger *zap.Logger) *DocQASession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocQASession{
		backend:   backend,
		extractor: extractor,
		logger:    logger,
		state:     DocStateNone,
	}
}

// SelectFile records the document to ingest. Only .pdf and .docx are
// accepted; anything else is rejected with no state change.
func (s *DocQASession) SelectFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" && ext != ".docx" {
		return &transformx.UnsupportedFormatError{FileName: filepath.Base(path)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == DocStateExtracting || s.state == DocStateUploading {
		return &transformx.PreconditionError{
			Gate:    "busy",
			Message: "an upload is already in progress",
		}
	}

	s.filePath = path
	s.statusMsg = ""
	return nil
}

// Upload extracts page text from the selected file and sends the full
// ordered sequence to the ingestion endpoint as one atomic call. Extraction
// failure and non-200 ingestion both end in upload-failed with the
// transcript unseeded; only full success reaches ready and seeds exactly
// one assistant welcome message.
func (s *DocQASession) Upload(ctx context.Context) error {
	s.mu.Lock()
	if s.filePath == "" {
		s.mu.Unlock()
		return &transformx.PreconditionError{
			Gate:    "file",
			Message: "no document selected",
		}
	}
	if s.state == DocStateExtracting || s.state == DocStateUploading {
		s.mu.Unlock()
		return &transformx.PreconditionError{
			Gate:    "busy",
			Message: "an upload is already in progress",
		}
	}
	path := s.filePath
	s.state = DocStateExtracting
	s.statusMsg = "Extracting document text..."
	s.mu.Unlock()

	pages, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.fail(fmt.Sprintf("Extraction failed: %v", err))
		return err
	}

	s.mu.Lock()
	s.state = DocStateUploading
	s.statusMsg = "Uploading to the vector store..."
	s.mu.Unlock()

	if err := s.backend.UploadPages(ctx, pages); err != nil {
		s.fail("Upload failed. Please check your connection and try again.")
		s.logger.Warn("document ingestion failed",
			zap.String("file", filepath.Base(path)),
			zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = DocStateReady
	s.statusMsg = "Document successfully uploaded to the vector store!"
	s.transcript = nil
	s.append(WelcomeMessage, models.SenderAssistant)
	return nil
}

// Send runs one chat turn: the user message is appended immediately, then
// the backend answer (or the fixed fallback apology) is appended as the
// adjacent assistant message. At most one question may be in flight;
// overlapping sends are rejected, not queued.
func (s *DocQASession) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return models.ChatMessage{}, &transformx.PreconditionError{
			Gate:    "message",
			Message: "message text is empty",
		}
	}

	s.mu.Lock()
	if s.state != DocStateReady {
		s.mu.Unlock()
		return models.ChatMessage{}, &transformx.PreconditionError{
			Gate:    "document",
			Message: "no document has been ingested",
		}
	}
	if s.busy {
		s.mu.Unlock()
		return models.ChatMessage{}, &transformx.PreconditionError{
			Gate:    "busy",
			Message: "a question is already in flight",
		}
	}
	s.busy = true
	s.append(question, models.SenderUser)
	s.mu.Unlock()

	answer, err := s.backend.Ask(ctx, question)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.logger.Warn("qa call failed", zap.Error(err))
		return s.append(FallbackAnswer, models.SenderAssistant), err
	}
	return s.append(answer, models.SenderAssistant), nil
}

// NewChat clears the transcript and reseeds exactly one assistant greeting.
// The ingested document stays associated with the backend session.
func (s *DocQASession) NewChat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != DocStateReady {
		return &transformx.PreconditionError{
			Gate:    "document",
			Message: "no document has been ingested",
		}
	}
	if s.busy {
		return &transformx.PreconditionError{
			Gate:    "busy",
			Message: "a question is already in flight",
		}
	}

	s.transcript = nil
	s.append(GreetingMessage, models.SenderAssistant)
	return nil
}

// Messages returns a copy of the transcript in creation order
func (s *DocQASession) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// State returns the current document state
func (s *DocQASession) State() DocState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StatusMessage returns the human-readable status of the last upload step
func (s *DocQASession) StatusMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusMsg
}

// Busy reports whether a QA call is in flight
func (s *DocQASession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// FileName returns the selected document's base name, or ""
func (s *DocQASession) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filePath == "" {
		return ""
	}
	return filepath.Base(s.filePath)
}

func (s *DocQASession) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = DocStateUploadFailed
	s.statusMsg = msg
}

// append adds a message to the transcript. Caller holds the lock.
func (s *DocQASession) append(text string, sender models.Sender) models.ChatMessage {
	s.seq++
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Seq:       s.seq,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

package models

import "time"

// Sender identifies the author of a chat message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one turn in a QA transcript. Messages are immutable once
// created; Seq is monotonic within a session and defines transcript order.
type ChatMessage struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Package bus provides the async message bus for decoupled channel-gateway communication.
package bus

import "time"

// Kind is the declared payload kind of an inbound message.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// ParseKind maps a raw type tag to a known Kind.
// Anything outside the known set returns ok=false — callers must
// handle that explicitly instead of falling through to a default.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindText, KindImage, KindAudio:
		return Kind(s), true
	}
	return "", false
}

// InboundMessage is received from a chat channel.
// Content carries text or a payload URL; Data carries raw bytes.
// Which one is populated depends on Kind.
type InboundMessage struct {
	Channel   string         `json:"channel"`
	SenderID  string         `json:"sender_id"`
	ChatID    string         `json:"chat_id"`
	Kind      Kind           `json:"kind"`
	Content   string         `json:"content,omitempty"`
	Data      []byte         `json:"-"`
	Language  string         `json:"language,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// SessionKey returns the unique key for session identification.
func (m *InboundMessage) SessionKey() string {
	return m.Channel + ":" + m.ChatID
}

// OutboundMessage is sent to a chat channel.
type OutboundMessage struct {
	Channel  string         `json:"channel"`
	ChatID   string         `json:"chat_id"`
	Content  string         `json:"content"`
	ReplyTo  string         `json:"reply_to,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

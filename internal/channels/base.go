// Package channels defines the Channel interface for chat platform integrations.
package channels

import (
	"context"
	"time"

	"github.com/nyayabharat/nyaya-go/internal/bus"
)

// Channel is the interface that all chat platform integrations must implement.
type Channel interface {
	// Name returns the channel identifier (e.g., "whatsapp").
	Name() string

	// Start connects to the platform and begins listening. Blocks until ctx is cancelled.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the channel.
	Stop() error

	// Send delivers an outbound message through this channel.
	Send(msg bus.OutboundMessage) error

	// IsRunning returns whether the channel is active.
	IsRunning() bool
}

// BaseChannel provides shared logic for all channel implementations.
type BaseChannel struct {
	ChannelName string
	Bus         *bus.MessageBus
	AllowFrom   []string
	Running     bool
}

// IsAllowed checks if a sender is permitted to interact with the gateway.
func (b *BaseChannel) IsAllowed(senderID string) bool {
	if len(b.AllowFrom) == 0 {
		return true
	}
	for _, allowed := range b.AllowFrom {
		if allowed == senderID {
			return true
		}
	}
	return false
}

// HandleMessage checks permissions and publishes to the bus.
func (b *BaseChannel) HandleMessage(senderID, chatID string, kind bus.Kind, content, language string, metadata map[string]any) {
	if !b.IsAllowed(senderID) {
		return
	}
	b.Bus.PublishInbound(bus.InboundMessage{
		Channel:   b.ChannelName,
		SenderID:  senderID,
		ChatID:    chatID,
		Kind:      kind,
		Content:   content,
		Language:  language,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
}

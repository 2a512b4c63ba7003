package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyayabharat/nyaya-go/internal/bus"
)

func TestProcessBridgeMessage(t *testing.T) {
	msgBus := bus.NewMessageBus()
	w := NewWhatsAppChannel("", "", nil, msgBus)

	w.ProcessBridgeMessage([]byte(`{
		"type": "message",
		"sender": "+919999999999",
		"chat_id": "+919999999999",
		"kind": "audio",
		"content": "https://example.com/audio.ogg",
		"lang": "hi"
	}`))

	require.Equal(t, 1, msgBus.InboundSize())
	msg := <-msgBus.Inbound
	assert.Equal(t, bus.KindAudio, msg.Kind)
	assert.Equal(t, "+919999999999", msg.SenderID)
	assert.Equal(t, "https://example.com/audio.ogg", msg.Content)
	assert.Equal(t, "hi", msg.Language)
}

func TestProcessBridgeMessage_DefaultsChatIDAndLanguage(t *testing.T) {
	msgBus := bus.NewMessageBus()
	w := NewWhatsAppChannel("", "", nil, msgBus)

	w.ProcessBridgeMessage([]byte(`{"type":"message","sender":"+911","kind":"text","content":"hello"}`))

	require.Equal(t, 1, msgBus.InboundSize())
	msg := <-msgBus.Inbound
	assert.Equal(t, "+911", msg.ChatID)
	assert.Equal(t, "hi", msg.Language)
}

func TestProcessBridgeMessage_DropsUnknownKind(t *testing.T) {
	msgBus := bus.NewMessageBus()
	w := NewWhatsAppChannel("", "", nil, msgBus)

	w.ProcessBridgeMessage([]byte(`{"type":"message","sender":"+911","kind":"sticker","content":"x"}`))
	assert.Equal(t, 0, msgBus.InboundSize())
}

func TestProcessBridgeMessage_IgnoresNonMessageFrames(t *testing.T) {
	msgBus := bus.NewMessageBus()
	w := NewWhatsAppChannel("", "", nil, msgBus)

	w.ProcessBridgeMessage([]byte(`{"type":"status","state":"connected"}`))
	w.ProcessBridgeMessage([]byte(`not json`))
	assert.Equal(t, 0, msgBus.InboundSize())
}

func TestProcessBridgeMessage_AllowFromFilter(t *testing.T) {
	msgBus := bus.NewMessageBus()
	w := NewWhatsAppChannel("", "", []string{"+911"}, msgBus)

	w.ProcessBridgeMessage([]byte(`{"type":"message","sender":"+912","kind":"text","content":"hi"}`))
	assert.Equal(t, 0, msgBus.InboundSize())

	w.ProcessBridgeMessage([]byte(`{"type":"message","sender":"+911","kind":"text","content":"hi"}`))
	assert.Equal(t, 1, msgBus.InboundSize())
}

func TestSend_NotConnected(t *testing.T) {
	w := NewWhatsAppChannel("", "", nil, bus.NewMessageBus())

	err := w.Send(bus.OutboundMessage{ChatID: "+911", Content: "hello"})
	assert.Error(t, err)
}

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyayabharat/nyaya-go/internal/bus"
)

func TestRoute_KnownKinds(t *testing.T) {
	tests := []struct {
		kind        bus.Kind
		wantService Service
		wantAction  string
	}{
		{bus.KindImage, ServiceLegalLens, "process_document"},
		{bus.KindAudio, ServiceVoiceComplaint, "process_complaint"},
		{bus.KindText, ServiceRightsChatbot, "answer_query"},
	}

	for _, tt := range tests {
		d, err := Route(bus.InboundMessage{Kind: tt.kind})
		require.NoError(t, err, "kind %q", tt.kind)
		assert.Equal(t, tt.wantService, d.Service)
		assert.Equal(t, tt.wantAction, d.Action)
	}
}

func TestRoute_Deterministic(t *testing.T) {
	msg := bus.InboundMessage{Kind: bus.KindImage, Content: "varies", SenderID: "a"}
	first, err := Route(msg)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		d, err := Route(msg)
		require.NoError(t, err)
		assert.Equal(t, first, d)
	}
}

func TestRoute_UnrecognizedKind(t *testing.T) {
	for _, kind := range []bus.Kind{"", "video", "sticker", "TEXT"} {
		d, err := Route(bus.InboundMessage{Kind: kind})
		assert.ErrorIs(t, err, ErrUnrecognizedKind, "kind %q", kind)
		assert.Empty(t, d.Service, "no default route for kind %q", kind)
		assert.Empty(t, d.Action)
	}
}

func TestRoutePayload(t *testing.T) {
	d, err := RoutePayload(map[string]any{"type": "audio", "url": "https://example.com/a.mp3"})
	require.NoError(t, err)
	assert.Equal(t, ServiceVoiceComplaint, d.Service)
	assert.Equal(t, "process_complaint", d.Action)
}

func TestRoutePayload_FailsClosed(t *testing.T) {
	payloads := []map[string]any{
		{},                         // missing type
		{"type": 42},               // non-string type
		{"type": "video"},          // unknown tag
		{"type": nil},              // null tag
		{"kind": "text"},           // wrong field name
		{"type": []string{"text"}}, // wrong shape
	}

	for i, p := range payloads {
		_, err := RoutePayload(p)
		assert.ErrorIs(t, err, ErrUnrecognizedKind, "payload %d", i)
	}
}

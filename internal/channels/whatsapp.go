package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nyayabharat/nyaya-go/internal/bus"
)

const reconnectDelay = 5 * time.Second

// WhatsAppChannel integrates WhatsApp via a Node.js bridge WebSocket.
//
// Bridge frames are JSON objects:
//
//	bridge → gateway: {"type":"message","sender":"+91...","chat_id":"...","kind":"text|image|audio","content":"...","lang":"hi"}
//	gateway → bridge: {"type":"send","to":"<chat_id>","text":"..."}
type WhatsAppChannel struct {
	BaseChannel
	BridgeURL   string
	BridgeToken string

	mu       sync.Mutex
	conn     *websocket.Conn
	cancelFn context.CancelFunc
}

// NewWhatsAppChannel creates a WhatsAppChannel.
func NewWhatsAppChannel(bridgeURL, bridgeToken string, allowFrom []string, msgBus *bus.MessageBus) *WhatsAppChannel {
	if bridgeURL == "" {
		bridgeURL = "ws://localhost:3001"
	}
	return &WhatsAppChannel{
		BaseChannel: BaseChannel{
			ChannelName: "whatsapp",
			Bus:         msgBus,
			AllowFrom:   allowFrom,
		},
		BridgeURL:   bridgeURL,
		BridgeToken: bridgeToken,
	}
}

func (w *WhatsAppChannel) Name() string    { return "whatsapp" }
func (w *WhatsAppChannel) IsRunning() bool { return w.Running }

// Start connects to the WhatsApp bridge WebSocket and reads frames
// until ctx is cancelled, reconnecting on failure.
func (w *WhatsAppChannel) Start(ctx context.Context) error {
	w.Running = true
	ctx, w.cancelFn = context.WithCancel(ctx)
	defer func() { w.Running = false }()

	for {
		if err := w.runOnce(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[WhatsApp] bridge connection lost: %v (reconnecting in %s)", err, reconnectDelay)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *WhatsAppChannel) runOnce(ctx context.Context) error {
	header := http.Header{}
	if w.BridgeToken != "" {
		header.Set("Authorization", "Bearer "+w.BridgeToken)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.BridgeURL, header)
	if err != nil {
		return fmt.Errorf("dial bridge: %w", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()

	log.Printf("[WhatsApp] connected to bridge at %s", w.BridgeURL)

	defer func() {
		w.mu.Lock()
		w.conn = nil
		w.mu.Unlock()
		conn.Close()
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		w.ProcessBridgeMessage(raw)
	}
}

// Stop stops the WhatsApp channel.
func (w *WhatsAppChannel) Stop() error {
	w.Running = false
	if w.cancelFn != nil {
		w.cancelFn()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	return nil
}

// Send sends a message through the WhatsApp bridge. The write mutex
// also serializes frames — gorilla/websocket does not support
// concurrent writes.
func (w *WhatsAppChannel) Send(msg bus.OutboundMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return fmt.Errorf("whatsapp bridge not connected")
	}
	return w.conn.WriteJSON(map[string]string{
		"type": "send",
		"to":   msg.ChatID,
		"text": msg.Content,
	})
}

// ProcessBridgeMessage handles one incoming bridge frame. Frames with
// an unknown kind are dropped with a log line — the declared-kind
// union fails closed.
func (w *WhatsAppChannel) ProcessBridgeMessage(raw []byte) {
	var data map[string]any
	if json.Unmarshal(raw, &data) != nil {
		return
	}

	msgType, _ := data["type"].(string)
	if msgType != "message" {
		return
	}

	sender, _ := data["sender"].(string)
	chatID, _ := data["chat_id"].(string)
	if chatID == "" {
		chatID = sender
	}
	rawKind, _ := data["kind"].(string)
	content, _ := data["content"].(string)
	lang, _ := data["lang"].(string)
	if lang == "" {
		lang = "hi"
	}

	kind, ok := bus.ParseKind(rawKind)
	if !ok {
		log.Printf("[WhatsApp] dropping frame with unrecognized kind %q from %s", rawKind, sender)
		return
	}

	w.HandleMessage(sender, chatID, kind, content, lang, nil)
}

// Package router maps inbound messages to the downstream service that
// should handle them. Routing is a pure function of the message's
// declared kind so it stays deterministic and trivially replaceable
// once content-based classification is added.
package router

import (
	"errors"

	"github.com/nyayabharat/nyaya-go/internal/bus"
)

// Service identifies a downstream capability.
type Service string

const (
	ServiceLegalLens      Service = "legal_lens"
	ServiceVoiceComplaint Service = "voice_complaint"
	ServiceRightsChatbot  Service = "rights_chatbot"
	ServiceOfficerMode    Service = "officer_mode"
)

// Decision names exactly one downstream service and action for a message.
type Decision struct {
	Service Service `json:"service"`
	Action  string  `json:"action"`
}

// ErrUnrecognizedKind is returned for messages whose kind is outside the
// known set. Malformed external input is expected, so this is a
// representable outcome rather than a panic — and there is deliberately
// no default route, to prevent silent misrouting.
var ErrUnrecognizedKind = errors.New("unrecognized message kind")

// decisions is the kind→service dispatch table.
var decisions = map[bus.Kind]Decision{
	bus.KindImage: {Service: ServiceLegalLens, Action: "process_document"},
	bus.KindAudio: {Service: ServiceVoiceComplaint, Action: "process_complaint"},
	bus.KindText:  {Service: ServiceRightsChatbot, Action: "answer_query"},
}

// Route classifies an inbound message by its declared kind.
// Pure: no side effects, same input always yields the same decision.
func Route(msg bus.InboundMessage) (Decision, error) {
	d, ok := decisions[msg.Kind]
	if !ok {
		return Decision{}, ErrUnrecognizedKind
	}
	return d, nil
}

// RoutePayload routes a raw webhook payload. The payload's "type" field
// is parsed as a tagged union that fails closed: a missing, non-string,
// or unknown tag yields ErrUnrecognizedKind.
func RoutePayload(payload map[string]any) (Decision, error) {
	raw, _ := payload["type"].(string)
	kind, ok := bus.ParseKind(raw)
	if !ok {
		return Decision{}, ErrUnrecognizedKind
	}
	return Route(bus.InboundMessage{Kind: kind})
}

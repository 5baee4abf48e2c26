package realtime

import (
	"bytes"
	"encoding/json"
)

// MessageType is the "type" used when raw text is wrapped into an envelope.
const MessageType = "message"

// Inbound is one decoded signaling frame: either Structured or RawText.
type Inbound interface {
	envelope() any
}

// Structured is a frame that parsed as a JSON object. It is relayed unchanged.
type Structured struct {
	Raw json.RawMessage
}

// RawText is a frame that was not a JSON object.
type RawText struct {
	Text string
}

// Envelope is the wrapper sent for RawText frames. Field order is part of the
// wire format: {"type":"message","payload":"..."}.
type Envelope struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

func (s Structured) envelope() any { return s.Raw }

func (t RawText) envelope() any { return Envelope{Type: MessageType, Payload: t.Text} }

// ParseInbound classifies a received text frame. Only JSON objects count as
// structured; arrays, numbers, quoted strings and invalid JSON are treated as
// raw text and wrapped, even though they are valid JSON and a generic decoder
// would pass them through unchanged.
func ParseInbound(text string) Inbound {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		return Structured{Raw: json.RawMessage(trimmed)}
	}
	return RawText{Text: text}
}

// EnvelopeFor returns the value to serialize for in.
func EnvelopeFor(in Inbound) any {
	return in.envelope()
}

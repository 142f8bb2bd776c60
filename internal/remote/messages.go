// ABOUTME: Note control message definitions
// ABOUTME: JSON envelope and payloads exchanged over the websocket
package remote

import (
	"encoding/json"
	"fmt"
)

// Message types
const (
	TypeHello         = "server/hello"
	TypeNoteTrigger   = "note/trigger"
	TypeNoteStart     = "note/start"
	TypeNoteStop      = "note/stop"
	TypeNoteReset     = "note/reset"
	TypeHotspotClick  = "hotspot/click"
	TypeHotspotSignal = "hotspot/signal"
	TypeAck           = "note/ack"
)

// Message is the top-level wrapper for all messages
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage encodes payload into an envelope
func NewMessage(msgType string, payload interface{}) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return msg, fmt.Errorf("failed to encode %s payload: %w", msgType, err)
	}
	msg.Payload = data
	return msg, nil
}

// Decode unmarshals the payload into v
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("%s: invalid payload: %w", m.Type, err)
	}
	return nil
}

// Hello is sent by the server when a client connects
type Hello struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Instruments []string `json:"instruments"`
}

// Target names the instrument for trigger, stop and reset
type Target struct {
	Instrument string `json:"instrument"`
}

// NoteStart asks an instrument to play a pitch
type NoteStart struct {
	Instrument string `json:"instrument"`
	Pitch      int    `json:"pitch"`
	// DurationMs overrides the configured note length when positive
	DurationMs int `json:"duration_ms,omitempty"`
}

// HotspotSignal opens or closes the hotspot gate
type HotspotSignal struct {
	Value int `json:"value"`
}

// Ack answers every request
type Ack struct {
	Request string `json:"request"`
	OK      bool   `json:"ok"`
	Slot    *int   `json:"slot,omitempty"`
	Error   string `json:"error,omitempty"`
}

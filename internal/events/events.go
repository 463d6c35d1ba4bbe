// Package events fans engine notifications out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypePing          = "ping"
	TypeDatasetLoaded = "dataset_loaded"
	TypeSessionUpdate = "session_updated"
	TypeViewSaved     = "view_saved"
	TypeViewDeleted   = "view_deleted"
	TypeChatAnswered  = "chat_answered"
	TypeConfigUpdated = "config_updated"
	TypeHistoryPruned = "history_pruned"
)

// EnvelopeVersion is bumped when Event changes shape.
const EnvelopeVersion = 1

// Event is the JSON envelope sent on the stream. Seq increases per hub so a
// client can tell it missed something; events built outside a hub carry 0.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	Seq       uint64          `json:"seq,omitempty"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func newEvent(reqID, typ string, data any) Event {
	e := Event{
		Type:      typ,
		Version:   EnvelopeVersion,
		At:        time.Now().UTC(),
		RequestID: reqID,
	}
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			e.Data = b
		}
	}
	return e
}

func (e Event) String() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// MakeEvent encodes a standalone event.
func MakeEvent(reqID, typ string, data any) string {
	return newEvent(reqID, typ, data).String()
}

package diag

import (
	"encoding/json"
	"io"
	"sync"
)

// jsonEvent is the line-delimited JSON payload for one Event, grounded on
// the teacher's json_formatter.go field-naming conventions (lower_snake_case
// keys, omitted zero fields).
type jsonEvent struct {
	Kind        string   `json:"kind"`
	Mod         string   `json:"mod,omitempty"`
	File        string   `json:"file,omitempty"`
	DirectiveID *int     `json:"directive_id,omitempty"`
	Message     string   `json:"message,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Count       int      `json:"count,omitempty"`
}

// JSONSink writes one JSON object per line, for CI consumption.
type JSONSink struct {
	enc *json.Encoder
	mu  sync.Mutex
}

// NewJSONSink creates a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Emit implements Sink.
func (s *JSONSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := jsonEvent{
		Kind:    e.Kind.String(),
		Mod:     e.Mod,
		File:    e.File,
		Message: e.Message,
		Notes:   e.Notes,
		Count:   e.Count,
	}
	if e.DirectiveID >= 0 {
		id := e.DirectiveID
		payload.DirectiveID = &id
	}

	// Encoding errors here would mean the writer is broken; there is no
	// recovery action a diagnostic sink can usefully take.
	_ = s.enc.Encode(payload)
}

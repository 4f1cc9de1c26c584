package diag

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSinkIncludesModAndFile(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf, false)

	sink.Emit(Event{Kind: KindMissingFile, Mod: "modA", File: "a.ws", DirectiveID: -1, Message: "no such file"})

	out := buf.String()
	assert.Contains(t, out, "modA")
	assert.Contains(t, out, "a.ws")
	assert.Contains(t, out, "no such file")
}

func TestTextSinkRendersNotes(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf, false)

	sink.Emit(Event{Kind: KindNoLocation, DirectiveID: 3, Notes: []string{"check the marker spelling"}})

	assert.Contains(t, buf.String(), "note: check the marker spelling")
}

func TestJSONSinkEncodesOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	sink.Emit(Event{Kind: KindMissingFile, File: "a.ws", DirectiveID: -1})
	sink.Emit(Event{Kind: KindWavePassed, Count: 2, DirectiveID: -1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first jsonEvent
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "missing_file", first.Kind)
	assert.Equal(t, "a.ws", first.File)
	assert.Nil(t, first.DirectiveID)
}

func TestJSONSinkOmitsNegativeDirectiveID(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	sink.Emit(Event{Kind: KindBuildStarted, DirectiveID: -1})

	var e jsonEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	assert.Nil(t, e.DirectiveID)
}

func TestJSONSinkIncludesNonNegativeDirectiveID(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	sink.Emit(Event{Kind: KindNoLocation, DirectiveID: 7})

	var e jsonEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	require.NotNil(t, e.DirectiveID)
	assert.Equal(t, 7, *e.DirectiveID)
}

package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageType(t *testing.T) {
	assert.Equal(t, "code_update", MessageType([]byte(`{"type":"code_update","code":"x"}`)))
	assert.Equal(t, "", MessageType([]byte(`{"code":"x"}`)))
	assert.Equal(t, "", MessageType([]byte(`not json`)))
}

func TestCanonicalTypingDefaults(t *testing.T) {
	got := CanonicalTyping([]byte(`{"type":"typing_indicator"}`))
	assert.Equal(t, TypingIndicator{Type: TypeTypingIndicator, IsTyping: false, UserID: "unknown"}, got)
}

func TestCanonicalTypingKeepsFields(t *testing.T) {
	got := CanonicalTyping([]byte(`{"type":"typing_indicator","isTyping":true,"userId":"u42"}`))
	assert.Equal(t, TypingIndicator{Type: TypeTypingIndicator, IsTyping: true, UserID: "u42"}, got)
}

func TestCanonicalTypingWireShape(t *testing.T) {
	b, err := json.Marshal(CanonicalTyping([]byte(`{"type":"typing_indicator"}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"typing_indicator","isTyping":false,"userId":"unknown"}`, string(b))
}

func TestPongEchoesTimestamp(t *testing.T) {
	b, err := json.Marshal(PongFor([]byte(`{"type":"ping","timestamp":1712345678901}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong","timestamp":1712345678901}`, string(b))
}

func TestPongDefaultsTimestampToZero(t *testing.T) {
	b, err := json.Marshal(PongFor([]byte(`{"type":"ping"}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong","timestamp":0}`, string(b))
}

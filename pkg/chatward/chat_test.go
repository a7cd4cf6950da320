package chatward

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatward/pkg/chatward/expr"
	"github.com/randalmurphal/chatward/pkg/chatward/parser"
)

func TestNewChat(t *testing.T) {
	c := NewChat(42)
	assert.Equal(t, int64(42), c.ID)
	assert.False(t, c.HasFilter())
	assert.Equal(t, DefaultSettings(), c.Settings)
	assert.Equal(t, 0, c.Vars.Count())
}

func TestChatRoundTrip(t *testing.T) {
	c := NewChat(7)
	filter, err := parser.ParseExpression(`has_text and text matches "spam"`)
	require.NoError(t, err)
	c.SetFilter(`has_text and text matches "spam"`, filter)
	c.Settings.DebugPrint = true
	c.Vars.Put("threshold", expr.Int(3))
	c.Vars.Put("note", expr.Str("hello"))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got Chat
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.FilterSource, got.FilterSource)
	assert.Equal(t, c.Settings, got.Settings)

	v, ok := got.Vars.Get("threshold")
	require.True(t, ok)
	assert.Equal(t, expr.Int(3), v)

	// The decoded filter evaluates identically.
	mv := NewMessageVariables(&Message{Text: "spam spam"})
	vars := mv.ToVariables()
	want, err := expr.Evaluate(c.Filter, vars)
	require.NoError(t, err)
	gotVal, err := expr.Evaluate(got.Filter, vars)
	require.NoError(t, err)
	assert.Equal(t, want, gotVal)
	assert.Equal(t, expr.Bool(true), gotVal)
}

func TestChatRoundTripNoFilter(t *testing.T) {
	c := NewChat(1)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got Chat
	require.NoError(t, json.Unmarshal(data, &got))
	assert.False(t, got.HasFilter())
	assert.Empty(t, got.FilterSource)
	assert.NotNil(t, got.Vars)
}

func TestChatUnmarshalMissingVariables(t *testing.T) {
	// Older persisted chats may lack the variables field entirely.
	var got Chat
	require.NoError(t, json.Unmarshal([]byte(`{"chat_id":3,"settings":{}}`), &got))
	assert.Equal(t, int64(3), got.ID)
	require.NotNil(t, got.Vars)
	assert.Equal(t, 0, got.Vars.Count())
}

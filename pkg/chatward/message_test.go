package chatward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatward/pkg/chatward/expr"
)

func TestNewMessageVariablesEmptyMessage(t *testing.T) {
	mv := NewMessageVariables(&Message{ID: 1})
	vars := mv.ToVariables()

	// Every field is bound, nullable ones to empty.
	assert.Equal(t, 29, vars.Count())

	v, ok := vars.Get("has_from")
	require.True(t, ok)
	assert.Equal(t, expr.Bool(false), v)

	v, ok = vars.Get("from_id")
	require.True(t, ok)
	assert.True(t, v.IsEmpty())

	v, ok = vars.Get("has_text")
	require.True(t, ok)
	assert.Equal(t, expr.Bool(false), v)
}

func TestNewMessageVariablesFrom(t *testing.T) {
	mv := NewMessageVariables(&Message{
		ID:   1,
		From: &User{ID: 1001, IsBot: false, Username: "alice", IsPremium: true},
		Text: "hi there",
	})
	vars := mv.ToVariables()

	wantBound := map[string]expr.Value{
		"has_from":        expr.Bool(true),
		"from_id":         expr.Int(1001),
		"from_is_bot":     expr.Bool(false),
		"from_username":   expr.Str("alice"),
		"from_is_premium": expr.Bool(true),
		"has_text":        expr.Bool(true),
		"text":            expr.Str("hi there"),
	}
	for name, want := range wantBound {
		v, ok := vars.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, v, name)
	}
}

func TestNewMessageVariablesNoUsername(t *testing.T) {
	mv := NewMessageVariables(&Message{
		From: &User{ID: 7},
	})
	vars := mv.ToVariables()

	v, ok := vars.Get("from_username")
	require.True(t, ok)
	assert.True(t, v.IsEmpty())
}

func TestNewMessageVariablesOrigins(t *testing.T) {
	tests := []struct {
		name   string
		origin *Origin
		want   map[string]expr.Value
	}{
		{
			name:   "user",
			origin: &Origin{Type: OriginUser, User: &User{ID: 5, IsBot: true, Username: "spammer"}},
			want: map[string]expr.Value{
				"origin_type":          expr.Str("user"),
				"origin_user_id":       expr.Int(5),
				"origin_user_is_bot":   expr.Bool(true),
				"origin_user_username": expr.Str("spammer"),
			},
		},
		{
			name:   "hidden user",
			origin: &Origin{Type: OriginHiddenUser, HiddenUserName: "Ghost"},
			want: map[string]expr.Value{
				"origin_type":                 expr.Str("hidden_user"),
				"origin_hidden_user_username": expr.Str("Ghost"),
			},
		},
		{
			name:   "chat",
			origin: &Origin{Type: OriginChat, ChatID: -100, AuthorSignature: "mods"},
			want: map[string]expr.Value{
				"origin_type":                  expr.Str("chat"),
				"origin_chat_id":               expr.Int(-100),
				"origin_chat_author_signature": expr.Str("mods"),
			},
		},
		{
			name:   "channel",
			origin: &Origin{Type: OriginChannel, ChatID: -200, MessageID: 31, AuthorSignature: "ed"},
			want: map[string]expr.Value{
				"origin_type":                     expr.Str("channel"),
				"origin_channel_id":               expr.Int(-200),
				"origin_channel_message_id":       expr.Int(31),
				"origin_channel_author_signature": expr.Str("ed"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv := NewMessageVariables(&Message{Origin: tt.origin})
			vars := mv.ToVariables()

			v, ok := vars.Get("has_origin")
			require.True(t, ok)
			assert.Equal(t, expr.Bool(true), v)

			for name, want := range tt.want {
				v, ok := vars.Get(name)
				require.True(t, ok, name)
				assert.Equal(t, want, v, name)
			}
		})
	}
}

func TestNewMessageVariablesMediaFlags(t *testing.T) {
	mv := NewMessageVariables(&Message{
		HasSticker: true,
		HasPhoto:   true,
		Caption:    "look at this",
	})
	vars := mv.ToVariables()

	for name, want := range map[string]expr.Value{
		"has_sticker": expr.Bool(true),
		"has_photo":   expr.Bool(true),
		"has_video":   expr.Bool(false),
		"has_caption": expr.Bool(true),
		"caption":     expr.Str("look at this"),
	} {
		v, ok := vars.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, v, name)
	}
}

func TestIsReservedVariable(t *testing.T) {
	assert.True(t, IsReservedVariable("has_text"))
	assert.True(t, IsReservedVariable("origin_channel_author_signature"))
	assert.False(t, IsReservedVariable("my_variable"))
	assert.False(t, IsReservedVariable("spam_words"))
}

func TestMessageVariablesUsableInFilter(t *testing.T) {
	mv := NewMessageVariables(&Message{
		From: &User{ID: 9, IsBot: true},
		Text: "buy now",
	})
	vars := mv.ToVariables()

	v, err := expr.Evaluate(&expr.BinaryOp{
		Left:     &expr.Identifier{Name: "from_is_bot"},
		Operator: expr.OpAnd,
		Right: &expr.BinaryOp{
			Left:     &expr.Identifier{Name: "text"},
			Operator: expr.OpMatches,
			Right:    &expr.Literal{Value: expr.Str("buy")},
		},
	}, vars)
	require.NoError(t, err)
	assert.Equal(t, expr.Bool(true), v)
}

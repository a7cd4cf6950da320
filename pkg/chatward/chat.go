package chatward

import (
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/chatward/pkg/chatward/expr"
)

// Chat is the persisted state of one moderated chat: the active
// filter (kept both as source text and as the parsed tree), the
// chat's options, and its user variables.
type Chat struct {
	ID           int64
	FilterSource string
	Filter       expr.Expression
	Settings     Settings
	Vars         *expr.Variables
}

// NewChat returns a chat with default settings and no filter.
func NewChat(id int64) *Chat {
	return &Chat{
		ID:       id,
		Settings: DefaultSettings(),
		Vars:     expr.NewVariables(),
	}
}

// HasFilter reports whether a filter is currently set.
func (c *Chat) HasFilter() bool { return c.Filter != nil }

// SetFilter installs a parsed filter together with its source text.
func (c *Chat) SetFilter(source string, filter expr.Expression) {
	c.FilterSource = source
	c.Filter = filter
}

type chatFilterJSON struct {
	Text       string          `json:"text"`
	Expression json.RawMessage `json:"expression"`
}

type chatJSON struct {
	ChatID    int64           `json:"chat_id"`
	Filter    *chatFilterJSON `json:"filter,omitempty"`
	Settings  Settings        `json:"settings"`
	Variables *expr.Variables `json:"variables"`
}

// MarshalJSON encodes the chat for persistence. The filter is stored
// as its source text plus the serialized tree, so loading never needs
// to re-parse.
func (c *Chat) MarshalJSON() ([]byte, error) {
	out := chatJSON{
		ChatID:    c.ID,
		Settings:  c.Settings,
		Variables: c.Vars,
	}
	if c.Filter != nil {
		tree, err := expr.MarshalExpression(c.Filter)
		if err != nil {
			return nil, fmt.Errorf("encode filter: %w", err)
		}
		out.Filter = &chatFilterJSON{Text: c.FilterSource, Expression: tree}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a persisted chat.
func (c *Chat) UnmarshalJSON(data []byte) error {
	var in chatJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	c.ID = in.ChatID
	c.Settings = in.Settings
	c.Vars = in.Variables
	if c.Vars == nil {
		c.Vars = expr.NewVariables()
	}
	c.FilterSource = ""
	c.Filter = nil
	if in.Filter != nil {
		filter, err := expr.UnmarshalExpression(in.Filter.Expression)
		if err != nil {
			return fmt.Errorf("decode filter: %w", err)
		}
		c.FilterSource = in.Filter.Text
		c.Filter = filter
	}
	return nil
}

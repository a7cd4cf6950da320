package chatward

import (
	"github.com/randalmurphal/chatward/pkg/chatward/expr"
)

// Forward-origin type names exposed through the origin_type variable.
const (
	OriginUser       = "user"
	OriginHiddenUser = "hidden_user"
	OriginChat       = "chat"
	OriginChannel    = "channel"
)

// User identifies a message sender.
type User struct {
	ID        int64
	IsBot     bool
	Username  string // empty when the user has no username
	IsPremium bool
}

// Origin describes where a forwarded message came from. Type selects
// which of the remaining fields are meaningful.
type Origin struct {
	Type string // one of the Origin* constants

	// Type == OriginUser
	User *User

	// Type == OriginHiddenUser
	HiddenUserName string

	// Type == OriginChat or OriginChannel
	ChatID          int64
	AuthorSignature string // empty when unsigned

	// Type == OriginChannel
	MessageID int64
}

// Message is a platform-neutral incoming chat message. The host
// transport adapts its native message type into this shape.
type Message struct {
	ID      int64
	From    *User
	Origin  *Origin
	Text    string
	ReplyTo *Message

	HasAudio     bool
	HasDocument  bool
	HasAnimation bool
	HasGame      bool
	HasPhoto     bool
	HasSticker   bool
	HasStory     bool
	HasVideo     bool
	HasVoice     bool

	Caption string
}

// MessageVariables is the structured record of every expression
// variable derived from one message. Nullable fields hold empty when
// the underlying data is absent; the has_* flags are always bound.
type MessageVariables struct {
	HasFrom       bool
	FromID        expr.Value
	FromIsBot     expr.Value
	FromUsername  expr.Value
	FromIsPremium expr.Value

	HasOrigin                    bool
	OriginType                   expr.Value
	OriginUserID                 expr.Value
	OriginUserIsBot              expr.Value
	OriginUserUsername           expr.Value
	OriginHiddenUserUsername     expr.Value
	OriginChatID                 expr.Value
	OriginChatAuthorSignature    expr.Value
	OriginChannelID              expr.Value
	OriginChannelMessageID       expr.Value
	OriginChannelAuthorSignature expr.Value

	HasText bool
	Text    expr.Value

	HasAudio     bool
	HasDocument  bool
	HasAnimation bool
	HasGame      bool
	HasPhoto     bool
	HasSticker   bool
	HasStory     bool
	HasVideo     bool
	HasVoice     bool

	HasCaption bool
	Caption    expr.Value
}

// NewMessageVariables derives the variable record from a message.
// The zero value of expr.Value is empty, so unset nullable fields
// need no explicit initialization.
func NewMessageVariables(msg *Message) MessageVariables {
	var mv MessageVariables
	if msg == nil {
		return mv
	}

	if from := msg.From; from != nil {
		mv.HasFrom = true
		mv.FromID = expr.Int(from.ID)
		mv.FromIsBot = expr.Bool(from.IsBot)
		if from.Username != "" {
			mv.FromUsername = expr.Str(from.Username)
		}
		mv.FromIsPremium = expr.Bool(from.IsPremium)
	}

	if origin := msg.Origin; origin != nil {
		mv.HasOrigin = true
		mv.OriginType = expr.Str(origin.Type)

		switch origin.Type {
		case OriginUser:
			if u := origin.User; u != nil {
				mv.OriginUserID = expr.Int(u.ID)
				mv.OriginUserIsBot = expr.Bool(u.IsBot)
				if u.Username != "" {
					mv.OriginUserUsername = expr.Str(u.Username)
				}
			}
		case OriginHiddenUser:
			mv.OriginHiddenUserUsername = expr.Str(origin.HiddenUserName)
		case OriginChat:
			mv.OriginChatID = expr.Int(origin.ChatID)
			if origin.AuthorSignature != "" {
				mv.OriginChatAuthorSignature = expr.Str(origin.AuthorSignature)
			}
		case OriginChannel:
			mv.OriginChannelID = expr.Int(origin.ChatID)
			mv.OriginChannelMessageID = expr.Int(origin.MessageID)
			if origin.AuthorSignature != "" {
				mv.OriginChannelAuthorSignature = expr.Str(origin.AuthorSignature)
			}
		}
	}

	if msg.Text != "" {
		mv.HasText = true
		mv.Text = expr.Str(msg.Text)
	}

	mv.HasAudio = msg.HasAudio
	mv.HasDocument = msg.HasDocument
	mv.HasAnimation = msg.HasAnimation
	mv.HasGame = msg.HasGame
	mv.HasPhoto = msg.HasPhoto
	mv.HasSticker = msg.HasSticker
	mv.HasStory = msg.HasStory
	mv.HasVideo = msg.HasVideo
	mv.HasVoice = msg.HasVoice

	if msg.Caption != "" {
		mv.HasCaption = true
		mv.Caption = expr.Str(msg.Caption)
	}

	return mv
}

// fields is the read-only field table for message variables. These
// fields are never assigned into, so Store is nil throughout.
func (m *MessageVariables) fields() []expr.Field {
	boolField := func(name string, v *bool) expr.Field {
		return expr.Field{Name: name, Kind: expr.KindBool, Load: func() expr.Value { return expr.Bool(*v) }}
	}
	valueField := func(name string, kind expr.Kind, v *expr.Value) expr.Field {
		return expr.Field{Name: name, Kind: kind, Nullable: true, Load: func() expr.Value { return *v }}
	}
	return []expr.Field{
		boolField("has_from", &m.HasFrom),
		valueField("from_id", expr.KindInt, &m.FromID),
		valueField("from_is_bot", expr.KindBool, &m.FromIsBot),
		valueField("from_username", expr.KindStr, &m.FromUsername),
		valueField("from_is_premium", expr.KindBool, &m.FromIsPremium),
		boolField("has_origin", &m.HasOrigin),
		valueField("origin_type", expr.KindStr, &m.OriginType),
		valueField("origin_user_id", expr.KindInt, &m.OriginUserID),
		valueField("origin_user_is_bot", expr.KindBool, &m.OriginUserIsBot),
		valueField("origin_user_username", expr.KindStr, &m.OriginUserUsername),
		valueField("origin_hidden_user_username", expr.KindStr, &m.OriginHiddenUserUsername),
		valueField("origin_chat_id", expr.KindInt, &m.OriginChatID),
		valueField("origin_chat_author_signature", expr.KindStr, &m.OriginChatAuthorSignature),
		valueField("origin_channel_id", expr.KindInt, &m.OriginChannelID),
		valueField("origin_channel_message_id", expr.KindInt, &m.OriginChannelMessageID),
		valueField("origin_channel_author_signature", expr.KindStr, &m.OriginChannelAuthorSignature),
		boolField("has_text", &m.HasText),
		valueField("text", expr.KindStr, &m.Text),
		boolField("has_audio", &m.HasAudio),
		boolField("has_document", &m.HasDocument),
		boolField("has_animation", &m.HasAnimation),
		boolField("has_game", &m.HasGame),
		boolField("has_photo", &m.HasPhoto),
		boolField("has_sticker", &m.HasSticker),
		boolField("has_story", &m.HasStory),
		boolField("has_video", &m.HasVideo),
		boolField("has_voice", &m.HasVoice),
		boolField("has_caption", &m.HasCaption),
		valueField("caption", expr.KindStr, &m.Caption),
	}
}

// ToVariables materializes the record into an environment, one
// binding per field.
func (m *MessageVariables) ToVariables() *expr.Variables {
	return expr.MaterializeFields(m.fields())
}

// ContainsVariable reports whether name is one of the derived message
// variable names. Used to keep user variables from shadowing them.
func (m *MessageVariables) ContainsVariable(name string) bool {
	return expr.ContainsField(m.fields(), name)
}

// IsReservedVariable reports whether name collides with a derived
// message variable name.
func IsReservedVariable(name string) bool {
	var mv MessageVariables
	return mv.ContainsVariable(name)
}

var _ expr.ToVariables = (*MessageVariables)(nil)

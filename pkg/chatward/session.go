package chatward

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/chatward/pkg/chatward/expr"
	"github.com/randalmurphal/chatward/pkg/chatward/observability"
	"github.com/randalmurphal/chatward/pkg/chatward/parser"
	"github.com/randalmurphal/chatward/pkg/chatward/store"
)

const helpText = `/set_filter <expr>
change current filter. expr should evaluate to bool value.
requires admin rights.

/get_filter
display current filter.

/set_option <option> := <expr>
set an option.
available options:
- debug_print: bool
- report_filtered: bool
- report_invalid_commands: bool
- filter_enabled: bool
- report_command_success: bool
expr should evaluate to value of option's type.
requires admin rights.

/get_options
display current options.

/set_variable <variable> := <expr>
set a user variable.
requires admin rights.

/unset_variable <variable>
unset a user variable.
requires admin rights.

/get_variables
display user variables.

/get_message_variables
display variables from the message replied to.

/eval <expr>
evaluate an expression against user variables.

/help
display this message.`

// Update is one action the host transport should apply after a
// message was handled.
type Update interface {
	update()
}

// ReplyUpdate asks the transport to send Text to the chat.
type ReplyUpdate struct {
	Text string
}

// DeleteUpdate asks the transport to delete the message with
// MessageID from the chat.
type DeleteUpdate struct {
	MessageID int64
}

func (ReplyUpdate) update()  {}
func (DeleteUpdate) update() {}

// Session owns one chat's state and handles its messages. A session
// serializes its own message handling; distinct sessions are
// independent.
type Session struct {
	mu          sync.Mutex
	chatID      int64
	botUsername string
	store       store.Store
	logger      *slog.Logger
	spans       observability.SpanManager
	metrics     observability.MetricsRecorder
	chat        *Chat
	lastActive  time.Time
}

// NewSession loads the chat state for chatID from st, starting from a
// fresh default chat when none is stored yet.
func NewSession(st store.Store, chatID int64, botUsername string) (*Session, error) {
	s := &Session{
		chatID:      chatID,
		botUsername: botUsername,
		store:       st,
		spans:       observability.NoopSpanManager{},
		metrics:     observability.NoopMetrics{},
		lastActive:  time.Now(),
	}

	data, err := st.Load(chatID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.chat = NewChat(chatID)
	case err != nil:
		return nil, fmt.Errorf("load chat %d: %w", chatID, err)
	default:
		chat := new(Chat)
		if err := chat.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("decode chat %d: %w", chatID, err)
		}
		s.chat = chat
	}
	return s, nil
}

// ChatID returns the chat this session belongs to.
func (s *Session) ChatID() int64 { return s.chatID }

// Touch marks the session as active now.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// IdleSince returns how long ago the session last handled a message.
func (s *Session) IdleSince() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActive)
}

// IsIdle reports whether the session has been inactive longer than ttl.
func (s *Session) IsIdle(ttl time.Duration) bool {
	return s.IdleSince() > ttl
}

// HandleMessage processes one incoming message and returns the
// updates to apply. Command messages are dispatched to their
// handlers; everything else is evaluated against the chat's filter
// when one is set and enabled. The chat state is persisted before
// returning.
func (s *Session) HandleMessage(ctx context.Context, msg *Message, fromAdmin bool) ([]Update, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	var updates []Update

	validCommand := false
	commandFailed := false
	needsSuccessReport := false

	if msg.Text != "" {
		cmd, err := ParseCommand(msg.Text, s.botUsername)
		switch {
		case err != nil:
			if s.chat.Settings.ReportInvalidCommands {
				updates = append(updates, ReplyUpdate{Text: "error: " + err.Error()})
			}
		case cmd == nil:
			// Not a command, or addressed to another bot.
		case cmd.RequiresAdmin() && !fromAdmin:
			observability.LogCommand(s.logger, s.chatID, cmd.Name, ErrPermissionDenied)
			s.metrics.RecordCommand(ctx, cmd.Name, false)
			updates = append(updates, ReplyUpdate{Text: "error: permission denied"})
		default:
			validCommand = true
			needsSuccessReport = cmd.reportsSuccess()
			cmdUpdates, cmdErr := s.runCommand(msg, cmd)
			commandFailed = cmdErr != nil
			updates = append(updates, cmdUpdates...)
			observability.LogCommand(s.logger, s.chatID, cmd.Name, cmdErr)
			s.metrics.RecordCommand(ctx, cmd.Name, !commandFailed)
		}
	}

	if validCommand && needsSuccessReport && !commandFailed && s.chat.Settings.ReportCommandSuccess {
		updates = append(updates, ReplyUpdate{Text: "success"})
	}

	if !validCommand && s.chat.Settings.FilterEnabled {
		updates = append(updates, s.runFilter(ctx, msg)...)
	}

	if err := s.persist(); err != nil {
		observability.LogStoreError(s.logger, s.chatID, "save", err)
		return updates, err
	}
	return updates, nil
}

// runCommand dispatches one parsed command against the chat state.
// It returns the replies plus the failure the command reported, if any.
func (s *Session) runCommand(msg *Message, cmd *Command) (updates []Update, cmdErr error) {
	reply := func(text string) {
		updates = append(updates, ReplyUpdate{Text: text})
	}
	fail := func(text string) {
		cmdErr = errors.New(text)
		reply(text)
	}

	switch cmd.Name {
	case CmdSetFilter:
		filter, err := parser.ParseExpression(cmd.Arg)
		if err != nil {
			fail(fmt.Sprintf("parse error: %v", err))
			return
		}
		s.chat.SetFilter(cmd.Arg, filter)

	case CmdGetFilter:
		if !s.chat.HasFilter() {
			fail("no filter set")
			return
		}
		reply(s.chat.FilterSource)

	case CmdSetOption:
		a, err := parser.ParseAssignment(cmd.Arg)
		if err != nil {
			fail(fmt.Sprintf("parse error: %v", err))
			return
		}
		if err := s.chat.Settings.SetFromAssignment(a, s.chat.Vars); err != nil {
			fail(fmt.Sprintf("failed to set option: %v", err))
		}

	case CmdGetOptions:
		reply(s.chat.Settings.ToVariables().Show(false))

	case CmdSetVariable:
		a, err := parser.ParseAssignment(cmd.Arg)
		if err != nil {
			fail(fmt.Sprintf("parse error: %v", err))
			return
		}
		if IsReservedVariable(a.Identifier) {
			fail(fmt.Sprintf("failed to set variable: %q is reserved", a.Identifier))
			return
		}
		if err := s.chat.Vars.SetFromAssignment(a, s.chat.Vars.Clone()); err != nil {
			fail(fmt.Sprintf("failed to set variable: %v", err))
		}

	case CmdUnsetVariable:
		name, err := parser.ParseIdentifier(cmd.Arg)
		if err != nil {
			fail(fmt.Sprintf("parse error: %v", err))
			return
		}
		if !s.chat.Vars.Remove(name) {
			fail(fmt.Sprintf("variable %q does not exist", name))
		}

	case CmdGetVariables:
		if s.chat.Vars.Count() == 0 {
			fail("no variables")
			return
		}
		reply(s.chat.Vars.Show(false))

	case CmdGetMessageVariables:
		if msg.ReplyTo == nil {
			fail("error: no reply message")
			return
		}
		mv := NewMessageVariables(msg.ReplyTo)
		reply(mv.ToVariables().String())

	case CmdEval:
		e, err := parser.ParseExpression(cmd.Arg)
		if err != nil {
			fail(fmt.Sprintf("parse error: %v", err))
			return
		}
		value, err := expr.Evaluate(e, s.chat.Vars)
		if err != nil {
			fail(fmt.Sprintf("error: failed to evaluate expression: %v", err))
			return
		}
		reply(value.String())

	case CmdHelp:
		reply(helpText)
	}
	return
}

// runFilter evaluates the chat filter against a non-command message.
// Evaluation problems never fail message handling; they surface as
// replies only when debug_print is on.
func (s *Session) runFilter(ctx context.Context, msg *Message) []Update {
	if !s.chat.HasFilter() {
		return nil
	}

	ctx, span := s.spans.StartFilterSpan(ctx, s.chatID)
	start := time.Now()

	mv := NewMessageVariables(msg)
	vars := mv.ToVariables()
	vars.Extend(s.chat.Vars)

	value, err := expr.Evaluate(s.chat.Filter, vars)
	matched := false
	if err == nil {
		matched, _ = value.AsBool()
	}
	s.metrics.RecordFilterEvaluation(ctx, matched, time.Since(start))
	s.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogFilterError(s.logger, s.chatID, err)
		if s.chat.Settings.DebugPrint {
			return []Update{ReplyUpdate{Text: fmt.Sprintf("error: failed to evaluate filter: %v", err)}}
		}
		return nil
	}

	if _, ok := value.AsBool(); !ok {
		if s.chat.Settings.DebugPrint {
			return []Update{ReplyUpdate{Text: "error: filter evaluated to non-bool value"}}
		}
		return nil
	}

	if !matched {
		return nil
	}

	observability.LogFilterMatch(s.logger, s.chatID)
	updates := []Update{DeleteUpdate{MessageID: msg.ID}}
	if s.chat.Settings.ReportFiltered {
		updates = append(updates, ReplyUpdate{Text: "message filtered"})
	}
	return updates
}

func (s *Session) persist() error {
	data, err := s.chat.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode chat %d: %w", s.chatID, err)
	}
	if err := s.store.Save(s.chatID, data); err != nil {
		return fmt.Errorf("save chat %d: %w", s.chatID, err)
	}
	return nil
}

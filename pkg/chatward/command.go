package chatward

import "strings"

// Command names.
const (
	CmdSetFilter           = "/set_filter"
	CmdGetFilter           = "/get_filter"
	CmdSetOption           = "/set_option"
	CmdGetOptions          = "/get_options"
	CmdSetVariable         = "/set_variable"
	CmdUnsetVariable       = "/unset_variable"
	CmdGetVariables        = "/get_variables"
	CmdGetMessageVariables = "/get_message_variables"
	CmdEval                = "/eval"
	CmdHelp                = "/help"
)

// commandSpec describes one command's arity and required rights.
type commandSpec struct {
	wantsArg      bool
	requiresAdmin bool
	// reportSuccess marks state-changing commands that get a
	// "success" reply when ReportCommandSuccess is on.
	reportSuccess bool
}

var commandSpecs = map[string]commandSpec{
	CmdSetFilter:           {wantsArg: true, requiresAdmin: true, reportSuccess: true},
	CmdGetFilter:           {},
	CmdSetOption:           {wantsArg: true, requiresAdmin: true, reportSuccess: true},
	CmdGetOptions:          {},
	CmdSetVariable:         {wantsArg: true, requiresAdmin: true, reportSuccess: true},
	CmdUnsetVariable:       {wantsArg: true, requiresAdmin: true, reportSuccess: true},
	CmdGetVariables:        {},
	CmdGetMessageVariables: {},
	CmdEval:                {wantsArg: true},
	CmdHelp:                {},
}

// Command is one parsed bot command.
type Command struct {
	Name string
	Arg  string
}

// RequiresAdmin reports whether the command may only be issued by a
// chat admin.
func (c *Command) RequiresAdmin() bool {
	return commandSpecs[c.Name].requiresAdmin
}

// reportsSuccess reports whether the command participates in
// "success" replies.
func (c *Command) reportsSuccess() bool {
	return commandSpecs[c.Name].reportSuccess
}

// ParseCommand parses a message text as a bot command. It returns
// (nil, nil) when the text is not a command at all, or when the
// command is explicitly addressed to a different bot via the
// /command@botname form. A recognized command with the wrong argument
// arity fails with InvalidArgumentsError; an unknown /word fails with
// InvalidCommandError.
func ParseCommand(text, botUsername string) (*Command, error) {
	if !strings.HasPrefix(text, "/") {
		return nil, nil
	}

	name := text
	arg := ""
	if i := strings.IndexFunc(text, isSpace); i >= 0 {
		name = text[:i]
		arg = strings.TrimLeft(text[i+1:], " \t\r\n")
	}

	// /command@botname routes the command to one specific bot.
	if name, target, ok := splitTarget(name); ok {
		if target != botUsername {
			return nil, nil
		}
		return buildCommand(name, arg)
	}
	return buildCommand(name, arg)
}

func buildCommand(name, arg string) (*Command, error) {
	spec, ok := commandSpecs[name]
	if !ok {
		return nil, &InvalidCommandError{Command: name}
	}
	if spec.wantsArg && arg == "" {
		return nil, &InvalidArgumentsError{Command: name, WantArgument: true}
	}
	if !spec.wantsArg && arg != "" {
		return nil, &InvalidArgumentsError{Command: name, WantArgument: false}
	}
	return &Command{Name: name, Arg: arg}, nil
}

func splitTarget(name string) (cmd, target string, ok bool) {
	i := strings.IndexByte(name, '@')
	if i < 0 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

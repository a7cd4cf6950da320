package chatward

import (
	"github.com/randalmurphal/chatward/pkg/chatward/expr"
)

// Settings holds a chat's typed options. Every field is a
// non-nullable bool settable through /set_option.
type Settings struct {
	// DebugPrint reports filter evaluation problems to the chat
	// instead of swallowing them.
	DebugPrint bool `json:"debug_print"`

	// ReportFiltered announces deletions with a "message filtered" reply.
	ReportFiltered bool `json:"report_filtered"`

	// ReportInvalidCommands replies with the parse problem when a
	// message looks like a command but is not one.
	ReportInvalidCommands bool `json:"report_invalid_commands"`

	// FilterEnabled turns filter evaluation on or off for the chat.
	FilterEnabled bool `json:"filter_enabled"`

	// ReportCommandSuccess replies "success" after state-changing
	// commands that completed without error.
	ReportCommandSuccess bool `json:"report_command_success"`
}

// DefaultSettings returns the settings a new chat starts with.
func DefaultSettings() Settings {
	return Settings{
		DebugPrint:            false,
		ReportFiltered:        true,
		ReportInvalidCommands: true,
		FilterEnabled:         true,
		ReportCommandSuccess:  true,
	}
}

func (s *Settings) fields() []expr.Field {
	option := func(name string, v *bool) expr.Field {
		return expr.Field{
			Name: name,
			Kind: expr.KindBool,
			Load: func() expr.Value { return expr.Bool(*v) },
			Store: func(val expr.Value) {
				b, _ := val.AsBool()
				*v = b
			},
		}
	}
	return []expr.Field{
		option("debug_print", &s.DebugPrint),
		option("report_filtered", &s.ReportFiltered),
		option("report_invalid_commands", &s.ReportInvalidCommands),
		option("filter_enabled", &s.FilterEnabled),
		option("report_command_success", &s.ReportCommandSuccess),
	}
}

// ToVariables materializes the settings into an environment, one
// binding per option.
func (s *Settings) ToVariables() *expr.Variables {
	return expr.MaterializeFields(s.fields())
}

// SetFromAssignment evaluates the assignment's expression against
// read and stores the result into the named option, enforcing the
// option's type. Unknown option names and non-bool values fail
// without modifying the settings.
func (s *Settings) SetFromAssignment(a expr.Assignment, read *expr.Variables) error {
	return expr.AssignFields(s.fields(), a, read)
}

var (
	_ expr.ToVariables      = (*Settings)(nil)
	_ expr.AssignmentTarget = (*Settings)(nil)
)

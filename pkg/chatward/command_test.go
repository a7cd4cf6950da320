package chatward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandNotACommand(t *testing.T) {
	for _, text := range []string{"hello", "set_filter true", "", " /help"} {
		cmd, err := ParseCommand(text, "guardbot")
		assert.NoError(t, err, "text %q", text)
		assert.Nil(t, cmd, "text %q", text)
	}
}

func TestParseCommandWithArg(t *testing.T) {
	cmd, err := ParseCommand("/set_filter has_sticker or has_photo", "guardbot")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, CmdSetFilter, cmd.Name)
	assert.Equal(t, "has_sticker or has_photo", cmd.Arg)
}

func TestParseCommandArgWhitespaceTrimmed(t *testing.T) {
	cmd, err := ParseCommand("/eval   1 + 1", "guardbot")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "1 + 1", cmd.Arg)
}

func TestParseCommandNoArg(t *testing.T) {
	cmd, err := ParseCommand("/get_filter", "guardbot")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, CmdGetFilter, cmd.Name)
	assert.Empty(t, cmd.Arg)
}

func TestParseCommandMissingArg(t *testing.T) {
	cmd, err := ParseCommand("/set_filter", "guardbot")
	assert.Nil(t, cmd)
	require.Error(t, err)
	assert.EqualError(t, err, `command "/set_filter" expected an argument`)

	var argErr *InvalidArgumentsError
	require.ErrorAs(t, err, &argErr)
	assert.True(t, argErr.WantArgument)
}

func TestParseCommandUnexpectedArg(t *testing.T) {
	cmd, err := ParseCommand("/help me", "guardbot")
	assert.Nil(t, cmd)
	require.Error(t, err)
	assert.EqualError(t, err, `command "/help" was not expecting an argument`)
}

func TestParseCommandUnknown(t *testing.T) {
	cmd, err := ParseCommand("/frobnicate", "guardbot")
	assert.Nil(t, cmd)
	require.Error(t, err)
	assert.EqualError(t, err, `invalid command "/frobnicate"`)

	var cmdErr *InvalidCommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "/frobnicate", cmdErr.Command)
}

func TestParseCommandBotRouting(t *testing.T) {
	// Addressed to us.
	cmd, err := ParseCommand("/help@guardbot", "guardbot")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, CmdHelp, cmd.Name)

	// Addressed to another bot: silently ignored.
	cmd, err = ParseCommand("/help@otherbot", "guardbot")
	assert.NoError(t, err)
	assert.Nil(t, cmd)

	// Routing with an argument.
	cmd, err = ParseCommand("/eval@guardbot 1 + 1", "guardbot")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "1 + 1", cmd.Arg)
}

func TestCommandRequiresAdmin(t *testing.T) {
	admin := []string{CmdSetFilter, CmdSetOption, CmdSetVariable, CmdUnsetVariable}
	open := []string{CmdGetFilter, CmdGetOptions, CmdGetVariables, CmdGetMessageVariables, CmdEval, CmdHelp}

	for _, name := range admin {
		assert.True(t, (&Command{Name: name}).RequiresAdmin(), name)
	}
	for _, name := range open {
		assert.False(t, (&Command{Name: name}).RequiresAdmin(), name)
	}
}

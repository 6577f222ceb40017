package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStreamsCommand(t *testing.T) {
	cmd := NewStreamsCommand()
	assert.Equal(t, "streams", cmd.Use)
	assert.Equal(t, []string{"stream"}, cmd.Aliases)
	assert.Equal(t, "Manage streams", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 7)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "fetch")
	assert.Contains(t, commandNames, "advance")
	assert.Contains(t, commandNames, "reset")
}

func TestStreamsFetchCommand(t *testing.T) {
	cmd := newStreamsFetchCommand()
	assert.Equal(t, "fetch DATASET STREAM", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	for _, name := range []string{"size", "continuation", "advance"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestStreamsAdvanceCommand(t *testing.T) {
	cmd := newStreamsAdvanceCommand()
	assert.Equal(t, "advance DATASET STREAM", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	continuationFlag := cmd.Flags().Lookup("continuation")
	assert.NotNil(t, continuationFlag)
}

func TestStreamsResetCommand(t *testing.T) {
	cmd := newStreamsResetCommand()
	assert.Equal(t, "reset DATASET STREAM", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	toFlag := cmd.Flags().Lookup("to")
	assert.NotNil(t, toFlag)
}

func TestStreamsCreateCommand(t *testing.T) {
	cmd := newStreamsCreateCommand()
	assert.Equal(t, "create DATASET NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	for _, name := range []string{"title", "model-version"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

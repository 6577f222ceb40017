package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSourcesCommand(t *testing.T) {
	cmd := NewSourcesCommand()
	assert.Equal(t, "sources", cmd.Use)
	assert.Equal(t, []string{"source", "src"}, cmd.Aliases)
	assert.Equal(t, "Manage sources", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "delete")
}

func TestSourcesListCommand(t *testing.T) {
	cmd := newSourcesListCommand()
	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	limitFlag := cmd.Flags().Lookup("limit")
	assert.NotNil(t, limitFlag)
}

func TestSourcesGetCommand(t *testing.T) {
	cmd := newSourcesGetCommand()
	assert.Equal(t, "get SOURCE", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestSourcesCreateCommand(t *testing.T) {
	cmd := newSourcesCreateCommand()
	assert.Equal(t, "create OWNER/NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	for _, name := range []string{"title", "description", "language", "translate", "sensitive-property"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestSourcesUpdateCommand(t *testing.T) {
	cmd := newSourcesUpdateCommand()
	assert.Equal(t, "update SOURCE", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestSourcesDeleteCommand(t *testing.T) {
	cmd := newSourcesDeleteCommand()
	assert.Equal(t, "delete SOURCE...", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

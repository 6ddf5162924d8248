package categorize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/cmd/categorize"
)

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize", categorize.Cmd.Use)
	assert.Contains(t, categorize.Cmd.Short, "Classify")
	assert.Contains(t, categorize.Cmd.Long, "learned mappings")
	assert.NotNil(t, categorize.Cmd.RunE)
}

func TestCategorizeCommand_Flags(t *testing.T) {
	descFlag := categorize.Cmd.Flags().Lookup("description")
	require.NotNil(t, descFlag)
	assert.Equal(t, "d", descFlag.Shorthand)

	storedFlag := categorize.Cmd.Flags().Lookup("stored")
	require.NotNil(t, storedFlag)
	assert.Equal(t, "bool", storedFlag.Value.Type())
	assert.Equal(t, "false", storedFlag.DefValue)
}

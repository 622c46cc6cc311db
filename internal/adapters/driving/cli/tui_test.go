package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTuiCmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTuiCmd_LongMentionsControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Ctrl+L")
	assert.Contains(t, tuiCmd.Long, "Ctrl+R")
	assert.Contains(t, tuiCmd.Long, "Tab")
}

func TestRootCmd_LaunchesTUIByDefault(t *testing.T) {
	// The root command and the tui subcommand share the same runner
	assert.NotNil(t, rootCmd.RunE)
}

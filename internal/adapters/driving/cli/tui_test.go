package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui"
)

func stubProgram(t *testing.T, run func(app *tui.App) error) {
	t.Helper()
	original := runProgram
	runProgram = run
	t.Cleanup(func() { runProgram = original })
}

func TestTUICommand_Help(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Toggle favourite")
}

func TestTUICommand_RunsApp(t *testing.T) {
	setupTestServices(t)
	runner := newFakeRunner(nil)
	watcher = runner

	var got *tui.App
	stubProgram(t, func(app *tui.App) error {
		got = app
		<-runner.started
		return nil
	})

	_, _, err := execute(t, "tui")

	require.NoError(t, err)
	require.NotNil(t, got)
	<-runner.stopped
}

func TestTUICommand_ProgramError(t *testing.T) {
	setupTestServices(t)
	stubProgram(t, func(*tui.App) error { return errors.New("no tty") })

	_, _, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error: no tty")
}

func TestTUICommand_RequiresCourts(t *testing.T) {
	SetServices(Services{})
	t.Cleanup(resetFlags)
	stubProgram(t, func(*tui.App) error {
		t.Fatal("program should not start")
		return nil
	})

	_, _, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "courts service not configured")
}

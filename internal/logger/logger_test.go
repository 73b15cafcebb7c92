package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("test message")
	Info("info")
	Warn("warn")
	Section("section")

	assert.Zero(t, buf.Len())
}

func TestLevels(t *testing.T) {
	buf := capture(t, true)

	Info("info message %d", 42)
	Warn("warning message")
	Section("Courts")

	assert.Equal(t, "[INFO] info message 42\n[WARN] warning message\n\n=== Courts ===\n", buf.String())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("store unreachable: %v", "timeout")

	assert.Equal(t, "[ERROR] store unreachable: timeout\n", buf.String())
}

func TestComponent(t *testing.T) {
	buf := capture(t, true)
	log := Component("watcher")

	log.Debug("location %s", "40,-73")
	log.Info("started")
	log.Warn("slow")
	log.Error("failed")

	assert.Equal(t,
		"[DEBUG] watcher: location 40,-73\n"+
			"[INFO] watcher: started\n"+
			"[WARN] watcher: slow\n"+
			"[ERROR] watcher: failed\n",
		buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			Component("c").Info("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}

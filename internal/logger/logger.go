// Package logger provides process-wide logging for the CourtFinder CLI.
// Debug, info and warning lines are printed to stderr only when verbose mode
// is enabled via the --verbose flag. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(false, "[DEBUG] ", "", format, args)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(false, "[INFO] ", "", format, args)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write(false, "[WARN] ", "", format, args)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	write(true, "[ERROR] ", "", format, args)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Component prefixes every line with a component name.
type Component string

// Debug prints a component message if verbose mode is enabled.
func (c Component) Debug(format string, args ...any) {
	write(false, "[DEBUG] ", string(c), format, args)
}

// Info prints a component message if verbose mode is enabled.
func (c Component) Info(format string, args ...any) {
	write(false, "[INFO] ", string(c), format, args)
}

// Warn prints a component warning if verbose mode is enabled.
func (c Component) Warn(format string, args ...any) {
	write(false, "[WARN] ", string(c), format, args)
}

// Error prints a component error regardless of verbose mode.
func (c Component) Error(format string, args ...any) {
	write(true, "[ERROR] ", string(c), format, args)
}

func write(always bool, level, component, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()
	if !always && !verbose {
		return
	}
	if component != "" {
		level += component + ": "
	}
	fmt.Fprintf(output, level+format+"\n", args...)
}

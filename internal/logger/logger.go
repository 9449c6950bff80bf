// Package logger writes the --verbose trace of gshell to stderr: every Admin
// SDK request with its duration and outcome, plus debug notes and warnings.
// Nothing is written unless verbose mode is on.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level tags a trace line.
type Level string

// Trace levels.
const (
	LevelDebug Level = "DEBUG"
	LevelWarn  Level = "WARN"
	LevelAPI   Level = "API"
)

var (
	mu       sync.RWMutex
	verbose  bool
	output   io.Writer = os.Stderr
	requests int
	failures int
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer trace lines go to. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[%s] %s\n", level, fmt.Sprintf(format, args...))
	}
}

// Debug writes a debug line.
func Debug(format string, args ...any) {
	write(LevelDebug, format, args...)
}

// Warn writes a warning line.
func Warn(format string, args ...any) {
	write(LevelWarn, format, args...)
}

// Call starts tracing one Admin SDK request and returns the function that
// finishes it. The finished line reads "<api> <method> <target> (<elapsed>)"
// followed by the error, if any. An empty target is omitted.
func Call(api, method, target string) func(err error) {
	start := time.Now()
	name := api + " " + method
	if target != "" {
		name += " " + target
	}
	return func(err error) {
		elapsed := time.Since(start).Round(time.Millisecond)

		mu.Lock()
		requests++
		if err != nil {
			failures++
		}
		mu.Unlock()

		if err != nil {
			write(LevelAPI, "%s (%s) failed: %v", name, elapsed, err)
			return
		}
		write(LevelAPI, "%s (%s)", name, elapsed)
	}
}

// Stats returns the number of requests finished so far and how many failed.
func Stats() (total, failed int) {
	mu.RLock()
	defer mu.RUnlock()
	return requests, failures
}

// ResetStats zeroes the request counters.
func ResetStats() {
	mu.Lock()
	defer mu.Unlock()
	requests, failures = 0, 0
}

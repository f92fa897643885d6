// Package logger is the process-wide diagnostic log. Everything below
// LevelError is shown only with --verbose; errors always reach the output.
// Lines are plain text on stderr so they never mix with command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose shows or hides lines below LevelError.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects the log. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Enabled reports whether a line at level would be written.
func Enabled(level Level) bool {
	return level >= LevelError || IsVerbose()
}

// Logf writes one line at level, prefixed with the level name.
func Logf(level Level, format string, args ...any) {
	write(level, "["+level.String()+"] "+format, args...)
}

func write(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < LevelError && !verbose {
		return
	}
	fmt.Fprintf(output, format+"\n", args...)
}

func Debug(format string, args ...any) { Logf(LevelDebug, format, args...) }
func Info(format string, args ...any)  { Logf(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { Logf(LevelWarn, format, args...) }
func Error(format string, args ...any) { Logf(LevelError, format, args...) }

// Section starts a visually separated block of debug output, such as one
// pipeline stage.
func Section(name string) {
	write(LevelDebug, "\n=== %s ===", name)
}

// Timed logs how long a stage took when the returned func is called.
//
//	defer logger.Timed("ocr")()
func Timed(stage string) func() {
	if !Enabled(LevelDebug) {
		return func() {}
	}
	start := time.Now()
	return func() {
		Debug("%s took %s", stage, time.Since(start).Round(time.Millisecond))
	}
}

package logger

import (
	"fmt"
	"io"
	"os"
)

// SetupLogger installs the process-wide logger. Output defaults to stdout;
// callers running a full-screen program pass a file or io.Discard instead.
func SetupLogger(logLevel string, logJSON, logSource bool, output io.Writer) {
	level := LogLevel(logLevel)
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
	default:
		level = InfoLevel
	}
	if output == nil {
		output = os.Stdout
	}
	Init(&Config{
		Level:      level,
		Output:     output,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
}

// OpenLogFile opens path for appending log records.
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
)

type Level = log.Level

const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelError = log.ErrorLevel
)

var (
	mu     sync.Mutex
	closer io.Closer
	logger = log.NewWithOptions(io.Discard, log.Options{
		Level:           LevelInfo,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Formatter:       log.LogfmtFormatter,
	})
)

// ToFile routes log lines to path, appending. The terminal is owned by the
// UI so nothing is ever written to stderr while it runs.
func ToFile(path string) error {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return fmt.Errorf("logging: open %s: %w", path, err)
	}
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	closer = f
	logger.SetOutput(f)
	return nil
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func SetLevel(l Level) {
	logger.SetLevel(l)
}

// Close releases a file opened by ToFile and falls back to discarding.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(io.Discard)
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func Debug(msg string, kv ...any) {
	logger.Debug(msg, kv...)
}

func Info(msg string, kv ...any) {
	logger.Info(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	logger.Error(msg, append([]any{"err", err}, kv...)...)
}

package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultHistorySize is how many formatted lines History keeps when created with size <= 0.
const DefaultHistorySize = 256

// Logger bundles the logrus logger with the in-memory history the debug overlay reads.
type Logger struct {
	*logrus.Logger
	History *History
	file    *os.File
}

// New returns a logger that writes to stderr and appends to the file at path.
// The parent directory is created if needed. An empty path, or a file that
// cannot be opened, leaves stderr as the only sink.
func New(path string) *Logger {
	l := &Logger{
		Logger:  logrus.New(),
		History: NewHistory(DefaultHistorySize),
	}
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	l.AddHook(l.History)

	var out io.Writer = os.Stderr
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			l.file = f
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	l.SetOutput(out)
	return l
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// History is a logrus hook that keeps the most recent entries as short lines.
type History struct {
	mu    sync.Mutex
	size  int
	lines []string
}

// NewHistory returns a History holding at most size lines.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Levels implements logrus.Hook.
func (h *History) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook. Each entry becomes "[15:04:05] LEVEL message".
func (h *History) Fire(e *logrus.Entry) error {
	line := "[" + e.Time.Format("15:04:05") + "] " + levelTag(e.Level) + " " + e.Message

	h.mu.Lock()
	h.lines = append(h.lines, line)
	if over := len(h.lines) - h.size; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
	}
	h.mu.Unlock()
	return nil
}

// Lines returns a copy of all stored lines, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Tail returns a copy of the last n lines.
func (h *History) Tail(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 {
		return nil
	}
	start := max(len(h.lines)-n, 0)
	out := make([]string, len(h.lines)-start)
	copy(out, h.lines[start:])
	return out
}

func levelTag(l logrus.Level) string {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel:
		return "FATAL"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.InfoLevel:
		return "INFO"
	}
	return "DEBUG"
}

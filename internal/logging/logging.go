package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "kmon.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool

	logger = newLogger(defaultLogPath())
)

// appendWriter opens the log file for every write so no descriptor is held
// while the terminal UI runs.
type appendWriter struct {
	mu   sync.Mutex
	path string
}

func (w *appendWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	path := w.path
	w.mu.Unlock()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

func (w *appendWriter) setPath(path string) {
	w.mu.Lock()
	w.path = path
	w.mu.Unlock()
}

func (w *appendWriter) currentPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

var output = &appendWriter{}

func newLogger(path string) *logrus.Logger {
	output.setPath(path)
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

func defaultLogPath() string {
	return filepath.Join(os.TempDir(), defaultLogFile)
}

// Logger exposes the shared logrus logger for components that need leveled
// logging beyond errors and traces.
func Logger() *logrus.Logger {
	return logger
}

// Path returns the file currently receiving log entries.
func Path() string {
	return output.currentPath()
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	logger.WithError(err).Error("error")
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	fields := logrus.Fields{"event": event}
	if payload != nil {
		fields["payload"] = payload
	}
	logger.WithFields(fields).Info("trace")
}

// TraceFields is Trace with the fields attached to the entry itself rather
// than nested under payload.
func TraceFields(event string, fields logrus.Fields) {
	if !TraceEnabled() {
		return
	}
	logger.WithFields(fields).WithField("event", event).Info("trace")
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	if strings.TrimSpace(path) == "" {
		output.setPath(defaultLogPath())
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		output.setPath(defaultLogPath())
		return
	}
	output.setPath(path)
}

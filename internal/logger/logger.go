// Package logger provides leveled logging for the SIRIA CLI.
// Debug and info messages are printed only in verbose mode (the --verbose
// flag) to help users follow the ingestion pipeline. Warnings and errors
// are always printed. Output goes to stderr unless redirected.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured key/value pairs attached to a message.
type Fields = logrus.Fields

var (
	mu      sync.RWMutex
	verbose bool
	base    = newBase(os.Stderr)
)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(lineFormatter{})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// lineFormatter renders "[LEVEL] message key=value ..." with sorted keys.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(levelTag(e.Level))
	b.WriteString("] ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return "WARN"
	default:
		return strings.ToUpper(l.String())
	}
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	base.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(base.Out, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	base.Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	base.Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	base.Errorf(format, args...)
}

// WithFields returns an entry that attaches fields to the next message.
func WithFields(fields Fields) *logrus.Entry {
	return base.WithFields(fields)
}

// WithError returns an entry carrying err under the "error" key.
func WithError(err error) *logrus.Entry {
	return base.WithError(err)
}

package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// New returns a component logger that writes to stdout with a bracketed prefix.
func New(component string) *log.Logger {
	return NewWithWriter(os.Stdout, component)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(w io.Writer, component string) *log.Logger {
	component = strings.TrimSpace(component)
	if component == "" {
		component = "assos"
	}
	return log.New(w, "["+component+"] ", log.LstdFlags|log.Lmsgprefix)
}

// Discard is a logger that drops everything. Useful as a nil-safe default.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// OrDiscard returns l when non-nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

package logging

import (
	"context"
	"io"
)

// New builds a JSON logger for the named backend. Unknown names fall back
// to slog.
func New(backend, level string, w io.Writer) Logger {
	if backend == BackendZerolog {
		return NewJSONZerologLogger(w, level)
	}
	return NewJSONSlogLogger(w, level)
}

// Nop discards everything. Handy in tests and for optional dependencies.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }

package logger

import "context"

// noopLogger discards everything. It is the default until Initialize runs
// and the backend used by tests.
type noopLogger struct{}

func (n *noopLogger) Log(context.Context, LogEntry)  {}
func (n *noopLogger) Shutdown(context.Context) error { return nil }

package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// FromContext returns the logger stored by WithLogger, or the package default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx under charmbracelet/log's own context key,
// so log.FromContext sees it too.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return log.WithContext(ctx, logger)
}

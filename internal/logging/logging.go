// Package logging configures structured logging for the web host and the
// browser controller.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	slogotel "github.com/remychantenay/slog-otel"
)

type ctxKey string

// ErrKey is the attribute key used for errors.
const ErrKey = "error"

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler.
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	var attrs []slog.Attr
	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		attrs = append(attrs, v...)
	}
	attrs = append(attrs, attr)
	return context.WithValue(parent, slogFields, attrs)
}

// ParseLevel maps LOG_LEVEL values to slog levels.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return logLevelDefault
	}
}

// NewHandler builds the JSON handler chain: context attributes, then trace
// correlation, then JSON encoding to w.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return contextHandler{slogotel.OtelHandler{Next: slog.NewJSONHandler(w, opts)}}
}

// Init installs the default logger from LOG_LEVEL and LOG_ADD_SOURCE and returns it.
func Init() *slog.Logger {
	addSource := os.Getenv("LOG_ADD_SOURCE")
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(os.Getenv("LOG_LEVEL")),
		AddSource: addSource == "true" || addSource == "t" || addSource == "1",
	}

	logger := slog.New(NewHandler(os.Stdout, opts))
	slog.SetDefault(logger)

	slog.Debug("log config",
		"logLevel", opts.Level,
		"addSource", opts.AddSource,
	)
	return logger
}

// Err wraps an error as a log attribute.
func Err(err error) slog.Attr {
	return slog.Any(ErrKey, err)
}

package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// Options configures the process logger
type Options struct {
	Level   string
	Format  string // "json" | "text"
	App     string
	Version string
	Env     string
}

// New builds a slog.Logger. JSON output uses the ECS field layout that the
// request logger of the stub backend also emits.
func New(w io.Writer, opts Options) *slog.Logger {
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	if opts.Format == "json" {
		logFormat := httplog.SchemaECS.Concise(false)
		handlerOpts.ReplaceAttr = logFormat.ReplaceAttr
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

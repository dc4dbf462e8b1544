package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var ProgramLevel = new(slog.LevelVar)

// SetupLogger installs a JSON logger on stdout at info level as the default.
func SetupLogger() {
	SetupLoggerTo(os.Stdout)
}

func SetupLoggerTo(w io.Writer) {
	ProgramLevel.Set(slog.LevelInfo)

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ProgramLevel,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

// SetDebug lowers the level to debug when debug is true.
func SetDebug(debug bool) {
	if debug {
		ProgramLevel.Set(slog.LevelDebug)
	}
}

type ctxLoggerKey struct{}

// With returns a copy of ctx carrying l.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// From returns the logger stored in ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

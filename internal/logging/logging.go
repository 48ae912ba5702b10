package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

var (
	once sync.Once
	base *slog.Logger
)

// Init configures the global logger exactly once.
// Call this in main(): logging.Init("crm-api", "./logs/app.log", "info")
func Init(component, filePath, level string) *slog.Logger {
	once.Do(func() {
		_ = os.MkdirAll(filepath.Dir(filePath), 0755)

		rot := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   false,
		}
		mw := io.MultiWriter(os.Stdout, rot)

		h := slog.NewJSONHandler(mw, &slog.HandlerOptions{Level: parseLevel(level)})
		base = slog.New(h).With("component", component)
	})
	return base
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Base returns the global logger (Init if not already called).
func Base() *slog.Logger {
	if base == nil {
		return Init("app", "./logs/app.log", "info")
	}
	return base
}

// New returns a child logger derived from the global one.
// IMPORTANT: does NOT create a new handler/writer; it reuses the global handler.
func New(component string) *slog.Logger {
	return Base().With("component", component)
}

// WithCtx stores a logger in a standard context (useful outside Gin).
func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx fetches a logger from ctx or falls back to the global one.
func FromCtx(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}

// With stores the logger in gin.Context.
func With(c *gin.Context, l *slog.Logger) {
	c.Set("logger", l)
}

// From returns the request-scoped logger from gin.Context, or the global one.
func From(c *gin.Context) *slog.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}

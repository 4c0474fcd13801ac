package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/manjitt2/Movie-bot/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 50
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// NewLogger builds the process logger: text output in dev, JSON in prod.
// When cfg.Log.File is set, output is duplicated into a rotating file.
func NewLogger(cfg *configs.Config) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Log.File != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		})
	}
	return New(w, cfg.Env, cfg.Log.Level)
}

func New(w io.Writer, env string, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(env, level)}

	var handler slog.Handler
	switch env {
	case configs.EnvProd:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(env string, level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if env == configs.EnvProd {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/iomz/hito/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log level mapping
var logLevelMap = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// initLogging builds the process logger: a JSON handler on a rotating log
// file, plus a stderr handler when verbose. The returned closer flushes the file.
func initLogging(cfg config.LogSettings, stderr io.Writer) (*slog.Logger, io.Closer) {
	level, ok := logLevelMap[strings.ToLower(cfg.Level)]
	if !ok {
		level = slog.LevelWarn // Default to WARN
	}

	logPath := cfg.File
	if logPath == "" {
		logPath = filepath.Join(getXDGCacheDir(), "hito.log")
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.Rotation.MaxSize,
		MaxBackups: cfg.Rotation.MaxBackups,
		MaxAge:     cfg.Rotation.MaxAge,
		Compress:   cfg.Rotation.Compress,
	}

	var handler slog.Handler = slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})

	// If verbose, also log to stderr
	if cfg.Verbose {
		opts := &slog.HandlerOptions{Level: level}
		var stderrHandler slog.Handler = slog.NewTextHandler(stderr, opts)
		if cfg.JSON {
			stderrHandler = slog.NewJSONHandler(stderr, opts)
		}
		handler = &multiHandler{
			handlers: []slog.Handler{handler, stderrHandler},
		}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Debug("logging initialized",
		"level", level.String(),
		"log_file", logPath,
		"verbose", cfg.Verbose)

	return logger, fileWriter
}

// getXDGCacheDir returns the XDG cache directory for hito
func getXDGCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "hito")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Last resort - use temp directory
		return filepath.Join(os.TempDir(), "hito")
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Caches", "hito")
	}

	return filepath.Join(homeDir, ".cache", "hito")
}

// multiHandler implements slog.Handler to write to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

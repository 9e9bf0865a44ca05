package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sift/internal/config"
)

// LogFileName is the file written inside the configured log directory.
const LogFileName = "sift.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Path is the log file. Empty disables file output.
	Path string
	// Stderr mirrors every enabled record to stderr in console format.
	// Without it, stderr only receives warnings when no file is configured.
	Stderr    bool
	SessionID string
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	addSource := level <= slog.LevelDebug

	var handlers []slog.Handler
	if path := strings.TrimSpace(opts.Path); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		handler, err := newFormatHandler(opts.Format, file, levelVar, addSource)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, handler)
	}
	switch {
	case opts.Stderr:
		handlers = append(handlers, newPrettyHandler(os.Stderr, levelVar, addSource))
	case len(handlers) == 0:
		handlers = append(handlers, newLevelOverrideHandler(newPrettyHandler(os.Stderr, levelVar, addSource), slog.LevelWarn))
	}

	handler := newFanoutHandler(handlers...)
	if opts.SessionID != "" {
		handler = newSessionIDHandler(handler, opts.SessionID)
	}
	return slog.New(handler), nil
}

// NewFromConfig creates a logger writing to the configured log directory.
// Debug level also mirrors output to stderr.
func NewFromConfig(cfg *config.Config, sessionID string) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", SessionID: sessionID})
	}
	opts := Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Stderr:    strings.EqualFold(strings.TrimSpace(cfg.Logging.Level), "debug"),
		SessionID: sessionID,
	}
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		opts.Path = filepath.Join(dir, LogFileName)
	}
	return New(opts)
}

// ParseLevel maps a config level name onto slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}

func newFormatHandler(format string, w io.Writer, lvl *slog.LevelVar, addSource bool) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "":
		return newPrettyHandler(w, lvl, addSource), nil
	case "json":
		return newJSONHandler(w, lvl, addSource), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/deps"
	"sift/internal/logging"
	"sift/internal/preview"
	"sift/internal/scan"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// ensureLogger prunes expired logs before opening the current one, then
// reports what retention did through the new logger.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		removed, failed := logging.CleanupOldLogs(time.Now(), cfg.Logging.RetentionDays,
			logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "sift*.log"},
		)
		logger, err := logging.NewFromConfig(cfg, logging.NewSessionID())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		for _, path := range removed {
			logger.Debug("removed expired log", logging.String("path", path))
		}
		for _, failure := range failed {
			logging.WarnWithContext(logger, "log retention failed", "log_retention_failed",
				logging.String("path", failure.Path),
				logging.Error(failure.Err),
				logging.String(logging.FieldErrorHint, "check permissions on the log directory"),
			)
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// decoderStatuses probes the decoder binaries named in cfg.
func decoderStatuses(cfg *config.Config) []deps.DecoderStatus {
	return deps.ResolveDecoders(deps.DecoderOptions{
		FFmpeg:      cfg.Decoders.FFmpeg,
		FFprobe:     cfg.Decoders.FFprobe,
		Pdftoppm:    cfg.Decoders.Pdftoppm,
		Pdfinfo:     cfg.Decoders.Pdfinfo,
		IconSupport: preview.IconExtractionSupported,
		Disabled:    cfg.DecoderDisabled,
	})
}

// newDispatcher resolves capabilities once and builds the preview dispatcher.
func newDispatcher(cfg *config.Config, logger *slog.Logger) *preview.Dispatcher {
	statuses := decoderStatuses(cfg)
	caps := preview.Capabilities{
		Document:    deps.Available(statuses, deps.DecoderDocument),
		Video:       deps.Available(statuses, deps.DecoderVideo),
		Application: deps.Available(statuses, deps.DecoderApplication),
	}
	opts := preview.Options{
		MaxWidth:        cfg.Preview.MaxWidth,
		MaxHeight:       cfg.Preview.MaxHeight,
		IconMaxWidth:    cfg.Preview.IconMaxWidth,
		IconMaxHeight:   cfg.Preview.IconMaxHeight,
		MaxDocumentZoom: cfg.Preview.MaxDocumentZoom,
		FFmpeg:          cfg.Decoders.FFmpeg,
		FFprobe:         cfg.Decoders.FFprobe,
		Pdftoppm:        cfg.Decoders.Pdftoppm,
		Pdfinfo:         cfg.Decoders.Pdfinfo,
	}
	logger.Debug("preview capabilities resolved",
		logging.Bool("document", caps.Document),
		logging.Bool("video", caps.Video),
		logging.Bool("application", caps.Application),
	)
	return preview.NewDispatcher(caps, opts, logger)
}

// watchDir returns the directory argument, expanded, or the configured
// watch folder.
func watchDir(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		dir, err := config.ExpandPath(strings.TrimSpace(args[0]))
		if err != nil {
			return "", fmt.Errorf("resolve directory: %w", err)
		}
		return dir, nil
	}
	return cfg.Paths.WatchDir, nil
}

// scanDir scans dir over --hours when the flag was given and over the
// configured default window otherwise.
func scanDir(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, dir string, hours float64) (scan.Report, error) {
	scanner := newScanner(cfg, logger)
	if !cmd.Flags().Changed("hours") {
		return scanner.ScanDefault(dir)
	}
	lookback, err := hoursToLookback(hours)
	if err != nil {
		return scan.Report{}, err
	}
	return scanner.Scan(dir, lookback)
}

func hoursToLookback(hours float64) (time.Duration, error) {
	switch {
	case math.IsNaN(hours) || hours < 0:
		return 0, fmt.Errorf("--hours must be zero or positive, got %v", hours)
	case hours > config.MaxLookbackHours:
		return 0, fmt.Errorf("--hours must be at most %d, got %v", config.MaxLookbackHours, hours)
	}
	return time.Duration(hours * float64(time.Hour)), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

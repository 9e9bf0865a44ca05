package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	envWatchDir      = "SIFT_WATCH_DIR"
	envLookbackHours = "SIFT_LOOKBACK_HOURS"
)

func (c *Config) normalize() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePreview()
	c.normalizeDecoders()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv(envWatchDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.WatchDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envLookbackHours); ok && strings.TrimSpace(value) != "" {
		hours, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", envLookbackHours, err)
		}
		c.Scan.LookbackHours = hours
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		if c.Paths.WatchDir, err = DownloadsDir(); err != nil {
			return fmt.Errorf("paths.watch_dir: %w", err)
		}
	}
	if c.Paths.WatchDir, err = expandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePreview() {
	names := make([]string, 0, len(c.Preview.DisabledDecoders))
	for _, name := range c.Preview.DisabledDecoders {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			names = append(names, name)
		}
	}
	c.Preview.DisabledDecoders = names
}

func (c *Config) normalizeDecoders() {
	def := Default().Decoders
	c.Decoders.FFmpeg = orDefault(c.Decoders.FFmpeg, def.FFmpeg)
	c.Decoders.FFprobe = orDefault(c.Decoders.FFprobe, def.FFprobe)
	c.Decoders.Pdftoppm = orDefault(c.Decoders.Pdftoppm, def.Pdftoppm)
	c.Decoders.Pdfinfo = orDefault(c.Decoders.Pdfinfo, def.Pdfinfo)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
)

var knownDecoders = []string{DecoderDocument, DecoderVideo, DecoderApplication}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validatePreview(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if c.Scan.LookbackHours < 0 {
		return errors.New("scan.lookback_hours must be zero or positive")
	}
	if c.Scan.LookbackHours > MaxLookbackHours {
		return fmt.Errorf("scan.lookback_hours must be at most %d", MaxLookbackHours)
	}
	for _, pattern := range c.Scan.IgnorePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("scan.ignore_patterns: invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validatePreview() error {
	p := c.Preview
	if p.MaxWidth <= 0 || p.MaxHeight <= 0 {
		return errors.New("preview.max_width and preview.max_height must be positive")
	}
	if p.IconMaxWidth <= 0 || p.IconMaxHeight <= 0 {
		return errors.New("preview.icon_max_width and preview.icon_max_height must be positive")
	}
	if p.MaxDocumentZoom <= 0 {
		return errors.New("preview.max_document_zoom must be positive")
	}
	for _, name := range p.DisabledDecoders {
		if !slices.Contains(knownDecoders, name) {
			return fmt.Errorf("preview.disabled_decoders: unknown decoder %q (want one of %v)", name, knownDecoders)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

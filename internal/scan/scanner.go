package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sift/internal/files"
	"sift/internal/logging"
)

// DefaultLookback applies when a caller passes no lookback.
const DefaultLookback = 24 * time.Hour

// Report is the outcome of a scan.
type Report struct {
	Dir     string
	Cutoff  time.Time
	Entries []files.Entry
	Skipped []AccessError
}

// Scanner lists recently created files in a directory.
type Scanner struct {
	logger         *slog.Logger
	ignorePatterns []string
	defaultWindow  time.Duration

	now  func() time.Time
	stat func(path string) (files.Entry, error)
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithLogger attaches a logger for skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logging.NewComponentLogger(logger, "scanner")
	}
}

// WithIgnorePatterns excludes base names matching any filepath.Match pattern.
func WithIgnorePatterns(patterns []string) Option {
	return func(s *Scanner) {
		s.ignorePatterns = append([]string(nil), patterns...)
	}
}

// WithDefaultLookback overrides the window used by ScanDefault.
func WithDefaultLookback(window time.Duration) Option {
	return func(s *Scanner) {
		if window >= 0 {
			s.defaultWindow = window
		}
	}
}

// NewScanner constructs a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		logger:        logging.NewNop(),
		defaultWindow: DefaultLookback,
		now:           time.Now,
		stat:          files.Stat,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanDefault scans dir with the configured default lookback.
func (s *Scanner) ScanDefault(dir string) (Report, error) {
	return s.Scan(dir, s.defaultWindow)
}

// Scan returns the files directly inside dir created on or after
// now-lookback, newest first. Ties keep directory enumeration order.
func (s *Scanner) Scan(dir string, lookback time.Duration) (Report, error) {
	if lookback < 0 {
		return Report{}, fmt.Errorf("scan %s: %w", dir, ErrInvalidLookback)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Report{}, &ScanError{Kind: DirectoryNotFound, Path: dir, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Report{}, &ScanError{Kind: DirectoryNotFound, Path: abs, Err: err}
	}
	if !info.IsDir() {
		return Report{}, &ScanError{Kind: NotADirectory, Path: abs}
	}

	report := Report{
		Dir:    abs,
		Cutoff: s.now().Add(-lookback),
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, &ScanError{Kind: DirectoryNotFound, Path: abs, Err: err}
		}
		// ReadDir returns what it managed to read alongside the error.
		s.skip(&report, abs, err)
	}
	for _, de := range dirEntries {
		if de.IsDir() || s.ignored(de.Name()) {
			continue
		}
		path := filepath.Join(abs, de.Name())
		entry, err := s.stat(path)
		if err != nil {
			if errors.Is(err, files.ErrDirectory) {
				continue
			}
			s.skip(&report, path, err)
			continue
		}
		if entry.Created.Before(report.Cutoff) {
			continue
		}
		report.Entries = append(report.Entries, entry)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Created.After(report.Entries[j].Created)
	})

	s.logger.Debug("scan complete",
		logging.String("dir", abs),
		logging.Duration("lookback", lookback),
		logging.Int("kept", len(report.Entries)),
		logging.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, pattern := range s.ignorePatterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func (s *Scanner) skip(report *Report, path string, err error) {
	report.Skipped = append(report.Skipped, AccessError{Path: path, Err: err})
	logging.WarnWithContext(s.logger, "scan skipped entry", "scan_entry_skipped",
		logging.String("path", path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check file permissions"),
		logging.String(logging.FieldImpact, "file left out of the review queue"),
	)
}

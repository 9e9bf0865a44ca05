package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RetentionTarget specifies a directory and filename pattern to prune.
type RetentionTarget struct {
	Dir     string
	Pattern string
}

// RetentionFailure records a log file that could not be removed.
type RetentionFailure struct {
	Path string
	Err  error
}

// CleanupOldLogs removes files matching targets whose modification time is
// more than retentionDays before now. It runs before the logger opens its
// file, so results are returned for the caller to log. A retentionDays value
// of 0 disables pruning.
func CleanupOldLogs(now time.Time, retentionDays int, targets ...RetentionTarget) (removed []string, failed []RetentionFailure) {
	if retentionDays <= 0 {
		return nil, nil
	}
	cutoff := now.AddDate(0, 0, -retentionDays)

	for _, target := range targets {
		dir := strings.TrimSpace(target.Dir)
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if pat := strings.TrimSpace(target.Pattern); pat != "" {
				matched, err := filepath.Match(pat, name)
				if err != nil || !matched {
					continue
				}
			}
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}
			fullPath := filepath.Join(dir, name)
			if err := os.Remove(fullPath); err != nil {
				failed = append(failed, RetentionFailure{Path: fullPath, Err: err})
				continue
			}
			removed = append(removed, fullPath)
		}
	}
	return removed, failed
}

//go:build !windows

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DownloadsDir resolves the user's downloads folder: $XDG_DOWNLOAD_DIR, then
// the XDG_DOWNLOAD_DIR entry of user-dirs.dirs, then ~/Downloads.
func DownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if dir := strings.TrimSpace(os.Getenv("XDG_DOWNLOAD_DIR")); dir != "" {
		return expandHomeVar(dir, home), nil
	}

	configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dir, err := readUserDirs(filepath.Join(configHome, "user-dirs.dirs"), home)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if dir != "" {
		return dir, nil
	}
	return filepath.Join(home, "Downloads"), nil
}

// readUserDirs extracts XDG_DOWNLOAD_DIR from a user-dirs.dirs file, whose
// lines look like XDG_DOWNLOAD_DIR="$HOME/Downloads".
func readUserDirs(path, home string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "XDG_DOWNLOAD_DIR" {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value == "" {
			return "", nil
		}
		return expandHomeVar(value, home), nil
	}
	return "", scanner.Err()
}

func expandHomeVar(value, home string) string {
	switch {
	case value == "$HOME":
		return home
	case strings.HasPrefix(value, "$HOME/"):
		return filepath.Join(home, value[len("$HOME/"):])
	}
	return value
}

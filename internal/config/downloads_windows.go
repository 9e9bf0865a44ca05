//go:build windows

package config

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// DownloadsDir resolves the user's downloads folder through the shell's
// known-folder registry.
func DownloadsDir() (string, error) {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_Downloads, 0)
	if err != nil {
		return "", fmt.Errorf("resolve downloads folder: %w", err)
	}
	return dir, nil
}

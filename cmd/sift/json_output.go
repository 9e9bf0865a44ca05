package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"sift/internal/files"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type fileJSON struct {
	Path          string    `json:"path"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"size_formatted"`
	Created       time.Time `json:"created"`
}

func toFileJSON(entry files.Entry) fileJSON {
	return fileJSON{
		Path:          entry.Path,
		Name:          entry.Name,
		Size:          entry.Size,
		SizeFormatted: entry.SizeFormatted(),
		Created:       entry.Created,
	}
}

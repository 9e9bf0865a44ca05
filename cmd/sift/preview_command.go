package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/preview"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var show bool

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render the preview for a single file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve file: %w", err)
			}
			if info, err := os.Stat(path); err != nil {
				return fmt.Errorf("preview %s: %w", path, err)
			} else if info.IsDir() {
				return fmt.Errorf("preview %s: is a directory", path)
			}

			result := newDispatcher(cfg, logger).Preview(cmd.Context(), path)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", filepath.Base(path))
			fmt.Fprintf(out, "Kind: %s\n", result.Kind)
			writePreviewSummary(out, result)

			if show && result.Available() && shouldColorize(out) {
				fmt.Fprint(out, renderHalfBlocks(result.Image, terminalPreviewColumns))
			}
			if strings.TrimSpace(outPath) == "" {
				return nil
			}
			if !result.Available() {
				fmt.Fprintln(cmd.ErrOrStderr(), "no preview image; nothing written")
				return nil
			}
			target, err := config.ExpandPath(strings.TrimSpace(outPath))
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := savePreview(result, target); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the preview to this PNG file")
	cmd.Flags().BoolVar(&show, "show", false, "Draw the preview inline when stdout is a terminal")
	return cmd
}

// writePreviewSummary prints the image size, or the reason there is none.
func writePreviewSummary(w io.Writer, result preview.Result) {
	if result.Available() {
		width, height := result.Size()
		fmt.Fprintf(w, "Preview: %dx%d\n", width, height)
		return
	}
	lines := strings.Split(result.Reason, "\n")
	fmt.Fprintf(w, "Preview: %s\n", lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "         %s\n", line)
	}
}

func savePreview(result preview.Result, target string) error {
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview directory: %w", err)
		}
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	if err := result.WritePNG(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close preview file: %w", err)
	}
	return nil
}

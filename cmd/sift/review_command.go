package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/files"
	"sift/internal/logging"
	"sift/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var hours float64
	var saveDir string
	var inline bool

	cmd := &cobra.Command{
		Use:   "review [dir]",
		Short: "Step through recent files and delete, keep or move each one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			dir, err := watchDir(cfg, args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(saveDir) != "" {
				if saveDir, err = config.ExpandPath(strings.TrimSpace(saveDir)); err != nil {
					return fmt.Errorf("resolve preview directory: %w", err)
				}
			}

			lock, err := review.AcquireLock(cfg.Paths.StateDir)
			if err != nil {
				if errors.Is(err, review.ErrLocked) {
					return fmt.Errorf("%w (lock held in %s)", err, cfg.Paths.StateDir)
				}
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logging.WarnWithContext(logger, "release review lock", "review_lock_release_failed",
						logging.String("path", lock.Path()),
						logging.Error(err),
					)
				}
			}()

			report, err := scanDir(cmd, cfg, logger, dir, hours)
			if err != nil {
				return err
			}
			errOut := cmd.ErrOrStderr()
			for _, skipped := range report.Skipped {
				fmt.Fprintf(errOut, "skipped %s: %v\n", skipped.Path, skipped.Err)
			}
			logger.Info("review session started",
				logging.String("dir", report.Dir),
				logging.Int("queued", len(report.Entries)),
				logging.Int("skipped", len(report.Skipped)),
				logging.String(logging.FieldEventType, "review_started"),
			)

			out := cmd.OutOrStdout()
			r := &reviewer{
				session:     review.NewSession(report.Entries, files.NewOperator(), review.WithLogger(logger)),
				previews:    newDispatcher(cfg, logger),
				in:          bufio.NewReader(cmd.InOrStdin()),
				out:         out,
				errOut:      errOut,
				interactive: isTerminal(cmd.InOrStdin()),
				paint:       painter{enabled: shouldColorize(out)},
				inline:      inline,
				saveDir:     saveDir,
				logger:      logger,
			}
			return r.run(cmd.Context())
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Lookback window in hours (defaults to scan.lookback_hours)")
	cmd.Flags().StringVar(&saveDir, "save-previews", "", "Also write each preview as PNG into this folder")
	cmd.Flags().BoolVar(&inline, "inline", true, "Draw previews inline when stdout is a terminal")
	return cmd
}

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var hours float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List files created within the lookback window, newest first",
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
			report, err := scanDir(cmd, cfg, logger, dir, hours)
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			for _, skipped := range report.Skipped {
				fmt.Fprintf(errOut, "skipped %s: %v\n", skipped.Path, skipped.Err)
			}

			if asJSON {
				return writeJSON(cmd, toScanJSON(report))
			}
			out := cmd.OutOrStdout()
			if len(report.Entries) == 0 {
				fmt.Fprintf(out, "No files in %s created since %s\n", report.Dir, report.Cutoff.Local().Format(time.DateTime))
				return nil
			}
			now := time.Now()
			rows := make([][]string, 0, len(report.Entries))
			for i, entry := range report.Entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					entry.Name,
					entry.SizeFormatted(),
					entry.CreatedFormatted(),
					entry.Age(now),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Name", "Size", "Created", "Age"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d file(s) in %s\n", len(report.Entries), report.Dir)
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Lookback window in hours (defaults to scan.lookback_hours)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the queue as JSON")
	return cmd
}

func newScanner(cfg *config.Config, logger *slog.Logger) *scan.Scanner {
	return scan.NewScanner(
		scan.WithLogger(logger),
		scan.WithIgnorePatterns(cfg.Scan.IgnorePatterns),
		scan.WithDefaultLookback(cfg.Lookback()),
	)
}

type scanJSON struct {
	Dir     string        `json:"dir"`
	Cutoff  time.Time     `json:"cutoff"`
	Files   []fileJSON    `json:"files"`
	Skipped []skippedJSON `json:"skipped,omitempty"`
}

type skippedJSON struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func toScanJSON(report scan.Report) scanJSON {
	payload := scanJSON{
		Dir:    report.Dir,
		Cutoff: report.Cutoff,
		Files:  make([]fileJSON, 0, len(report.Entries)),
	}
	for _, entry := range report.Entries {
		payload.Files = append(payload.Files, toFileJSON(entry))
	}
	for _, skipped := range report.Skipped {
		payload.Skipped = append(payload.Skipped, skippedJSON{Path: skipped.Path, Error: skipped.Err.Error()})
	}
	return payload
}

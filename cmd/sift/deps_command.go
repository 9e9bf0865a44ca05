package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/deps"
	"sift/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Show which preview decoders can run and whether sift's folders are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := decoderStatuses(cfg)
			checks := preflight.RunAll(cfg)

			if asJSON {
				return writeJSON(cmd, toDepsJSON(statuses, checks))
			}

			out := cmd.OutOrStdout()
			p := painter{enabled: shouldColorize(out)}
			for _, line := range renderSectionHeader("Decoders", p) {
				fmt.Fprintln(out, line)
			}
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				commands := status.Commands()
				if commands == "" {
					commands = "-"
				}
				rows = append(rows, []string{status.Name, commands, yesNo(status.Available), status.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Decoder", "Commands", "Available", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignCenter, alignLeft},
			))

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Directories", p) {
				fmt.Fprintln(out, line)
			}
			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, p))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	return cmd
}

type decoderJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Available   bool     `json:"available"`
	Detail      string   `json:"detail,omitempty"`
	Commands    []string `json:"commands,omitempty"`
}

type checkJSON struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type depsJSON struct {
	Decoders    []decoderJSON `json:"decoders"`
	Directories []checkJSON   `json:"directories"`
}

func toDepsJSON(statuses []deps.DecoderStatus, checks []preflight.Result) depsJSON {
	payload := depsJSON{
		Decoders:    make([]decoderJSON, 0, len(statuses)),
		Directories: make([]checkJSON, 0, len(checks)),
	}
	for _, status := range statuses {
		item := decoderJSON{
			Name:        status.Name,
			Description: status.Description,
			Available:   status.Available,
			Detail:      status.Detail,
		}
		if commands := status.Commands(); commands != "" {
			item.Commands = strings.Split(commands, ", ")
		}
		payload.Decoders = append(payload.Decoders, item)
	}
	for _, check := range checks {
		payload.Directories = append(payload.Directories, checkJSON(check))
	}
	return payload
}

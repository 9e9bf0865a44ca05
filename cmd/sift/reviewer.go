package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"sift/internal/config"
	"sift/internal/files"
	"sift/internal/logging"
	"sift/internal/preview"
	"sift/internal/review"
)

const commandHelp = "[d]elete  [k]eep  [m]ove  [n]ext  [p]rev  [q]uit"

type previewer interface {
	Preview(ctx context.Context, path string) preview.Result
}

type reviewTally struct {
	deleted int
	moved   int
	kept    int
	failed  int
}

// reviewer drives a review session from line-oriented input.
type reviewer struct {
	session  *review.Session
	previews previewer

	in          *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
	paint       painter
	inline      bool
	saveDir     string
	logger      *slog.Logger

	shown  string
	result preview.Result
	tally  reviewTally
}

func (r *reviewer) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			r.summary()
			return err
		}
		entry, ok := r.session.Current()
		if !ok {
			fmt.Fprintln(r.out, r.paint.green("All Clean!"))
			r.summary()
			return nil
		}
		if entry.Path != r.shown {
			r.show(ctx, entry)
		}

		line, err := r.prompt(commandHelp + "\n> ")
		if errors.Is(err, io.EOF) {
			r.summary()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		switch strings.ToLower(line) {
		case "d", "delete":
			r.apply(entry, review.Decision{Kind: review.DecisionDelete})
		case "k", "keep":
			r.session.Keep()
			r.tally.kept++
			r.shown = ""
		case "m", "move":
			r.move(entry)
		case "n", "next":
			r.session.Next()
		case "p", "prev":
			r.session.Prev()
		case "q", "quit":
			r.summary()
			return nil
		case "":
			r.shown = ""
		default:
			fmt.Fprintf(r.errOut, "Unknown command %q\n", line)
		}
	}
}

func (r *reviewer) show(ctx context.Context, entry files.Entry) {
	r.shown = entry.Path
	r.result = r.previews.Preview(ctx, entry.Path)

	state := r.session.State()
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.paint.bold("File "+state.Progress()))
	fmt.Fprintf(r.out, "  Name:    %s\n", entry.Name)
	fmt.Fprintf(r.out, "  Path:    %s\n", r.paint.dim(entry.Path))
	fmt.Fprintf(r.out, "  Size:    %s (%d bytes)\n", entry.SizeFormatted(), entry.Size)
	fmt.Fprintf(r.out, "  Created: %s (%s)\n", entry.CreatedFormatted(), entry.Age(time.Now()))
	fmt.Fprintf(r.out, "  Kind:    %s\n", r.result.Kind)
	fmt.Fprint(r.out, "  ")
	writePreviewSummary(r.out, r.result)
	if r.inline && r.paint.enabled && r.result.Available() {
		fmt.Fprint(r.out, renderHalfBlocks(r.result.Image, terminalPreviewColumns))
	}
	r.savePreview(entry)
}

func (r *reviewer) savePreview(entry files.Entry) {
	if r.saveDir == "" || !r.result.Available() {
		return
	}
	target := filepath.Join(r.saveDir, entry.Name+".png")
	if err := savePreview(r.result, target); err != nil {
		logging.WarnWithContext(r.logger, "save preview failed", "preview_save_failed",
			logging.String("path", target),
			logging.Error(err),
			logging.String(logging.FieldImpact, "preview not written; review continues"),
		)
		fmt.Fprintf(r.errOut, "Could not save preview: %v\n", err)
	}
}

func (r *reviewer) move(entry files.Entry) {
	dest, err := r.prompt("Move to folder: ")
	if err != nil || dest == "" {
		fmt.Fprintln(r.out, "Move cancelled")
		return
	}
	if dest, err = config.ExpandPath(dest); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	decision := review.Decision{Kind: review.DecisionMove, Destination: dest}
	if _, err := r.session.Apply(decision); err != nil {
		if !errors.Is(err, files.ErrAlreadyExists) {
			r.fail(err)
			return
		}
		fmt.Fprintf(r.out, "%q already exists in %s.\n", entry.Name, dest)
		answer, perr := r.prompt("Overwrite? [y/N]: ")
		if perr != nil || !isYes(answer) {
			fmt.Fprintln(r.out, "Move cancelled")
			return
		}
		decision.Overwrite = true
		r.apply(entry, decision)
		return
	}
	r.done(entry, decision)
}

func (r *reviewer) apply(entry files.Entry, decision review.Decision) {
	if _, err := r.session.Apply(decision); err != nil {
		r.fail(err)
		return
	}
	r.done(entry, decision)
}

func (r *reviewer) done(entry files.Entry, decision review.Decision) {
	switch decision.Kind {
	case review.DecisionDelete:
		r.tally.deleted++
		fmt.Fprintf(r.out, "Moved %s to the trash\n", entry.Name)
	case review.DecisionMove:
		r.tally.moved++
		fmt.Fprintf(r.out, "Moved %s to %s\n", entry.Name, decision.Destination)
	}
	r.shown = ""
}

func (r *reviewer) fail(err error) {
	r.tally.failed++
	fmt.Fprintf(r.errOut, "%s %v\n", r.paint.red("Error:"), err)
}

func (r *reviewer) summary() {
	fmt.Fprintf(r.out, "Deleted %d, moved %d, kept %d", r.tally.deleted, r.tally.moved, r.tally.kept)
	if r.tally.failed > 0 {
		fmt.Fprintf(r.out, ", %d failed", r.tally.failed)
	}
	fmt.Fprintln(r.out)
}

// prompt prints text when reading from a terminal and returns the next
// trimmed input line. A final line without a newline is still returned.
func (r *reviewer) prompt(text string) (string, error) {
	if r.interactive {
		fmt.Fprint(r.out, text)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

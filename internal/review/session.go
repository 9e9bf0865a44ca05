package review

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sift/internal/files"
	"sift/internal/logging"
)

// ErrAllClean is returned when a decision is requested with nothing left to review.
var ErrAllClean = errors.New("review: no files left to review")

// Actions performs the filesystem side of a decision.
type Actions interface {
	Trash(path string) error
	Move(path, destDir string, overwrite bool) (string, error)
}

// Phase is the session's coarse state.
type Phase string

const (
	PhaseReviewing Phase = "reviewing"
	PhaseAllClean  Phase = "all_clean"
)

// State summarizes the session after an operation.
type State struct {
	Phase Phase `json:"phase"`
	Index int   `json:"index"`
	Total int   `json:"total"`
}

// Done reports whether the session reached AllClean.
func (s State) Done() bool { return s.Phase == PhaseAllClean }

// Progress renders the 1-based position, e.g. "2 of 5".
func (s State) Progress() string {
	if s.Done() {
		return ""
	}
	return fmt.Sprintf("%d of %d", s.Index+1, s.Total)
}

// DecisionKind names what the user chose for the current file.
type DecisionKind string

const (
	DecisionKeep   DecisionKind = "keep"
	DecisionDelete DecisionKind = "delete"
	DecisionMove   DecisionKind = "move"
)

// Decision is a user verdict on the current entry.
type Decision struct {
	Kind        DecisionKind
	Destination string
	Overwrite   bool
}

// Session tracks the review queue and the cursor into it.
type Session struct {
	entries []files.Entry
	index   int
	done    bool

	actions Actions
	exists  func(path string) bool
	logger  *slog.Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger attaches a logger used for decision records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logging.NewComponentLogger(logger, "review")
	}
}

// WithExistsFunc replaces the existence check used when pruning.
func WithExistsFunc(fn func(path string) bool) Option {
	return func(s *Session) {
		if fn != nil {
			s.exists = fn
		}
	}
}

// NewSession takes ownership of a copy of entries. Later duplicates of a
// path are dropped. An empty queue starts AllClean.
func NewSession(entries []files.Entry, actions Actions, opts ...Option) *Session {
	seen := make(map[string]struct{}, len(entries))
	queue := make([]files.Entry, 0, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.Path]; dup {
			continue
		}
		seen[entry.Path] = struct{}{}
		queue = append(queue, entry)
	}
	s := &Session{
		entries: queue,
		actions: actions,
		exists:  files.Exists,
		logger:  logging.NewNop(),
		done:    len(queue) == 0,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the entry under the cursor after dropping entries whose
// files no longer exist. It returns false once the session is AllClean.
func (s *Session) Current() (files.Entry, bool) {
	if s.done {
		return files.Entry{}, false
	}
	if s.index >= len(s.entries) {
		s.finish("reviewed past the last file")
		return files.Entry{}, false
	}

	s.prune()
	if len(s.entries) == 0 {
		s.finish("every remaining file disappeared")
		return files.Entry{}, false
	}
	if s.index >= len(s.entries) {
		s.index = len(s.entries) - 1
	}
	if s.index < 0 {
		s.index = 0
	}
	return s.entries[s.index], true
}

// prune removes missing entries, shifting the cursor left by the number of
// removals in front of it so it keeps naming the same file when possible.
func (s *Session) prune() {
	kept := s.entries[:0]
	shift := 0
	for i, entry := range s.entries {
		if s.exists(entry.Path) {
			kept = append(kept, entry)
			continue
		}
		if i < s.index {
			shift++
		}
		s.logger.Info("file disappeared; dropped from review",
			logging.String("path", entry.Path),
			logging.String(logging.FieldEventType, "review_pruned"),
		)
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = files.Entry{}
	}
	s.entries = kept
	s.index -= shift
}

// State reports the session position without touching the filesystem. A
// cursor past the end already reads as AllClean here; Current makes it final.
func (s *Session) State() State {
	if s.done || s.index >= len(s.entries) {
		return State{Phase: PhaseAllClean}
	}
	return State{Phase: PhaseReviewing, Index: s.index, Total: len(s.entries)}
}

// Entries returns a copy of the queue.
func (s *Session) Entries() []files.Entry {
	return append([]files.Entry(nil), s.entries...)
}

// Keep leaves the current file alone and advances the cursor. Running past
// the last entry is noticed by the next Current call.
func (s *Session) Keep() State {
	if s.done {
		return s.State()
	}
	if s.index < len(s.entries) {
		s.logDecision(DecisionKeep, s.entries[s.index], "kept")
	}
	s.index++
	return s.State()
}

// Next moves the cursor forward without deciding; no-op on the last entry.
func (s *Session) Next() State {
	if !s.done && s.index < len(s.entries)-1 {
		s.index++
	}
	return s.State()
}

// Prev moves the cursor back; no-op on the first entry.
func (s *Session) Prev() State {
	if !s.done && s.index > 0 && s.index < len(s.entries) {
		s.index--
	}
	return s.State()
}

// Delete sends the current file to the trash.
func (s *Session) Delete() (State, error) {
	return s.Apply(Decision{Kind: DecisionDelete})
}

// Move relocates the current file into dest.
func (s *Session) Move(dest string, overwrite bool) (State, error) {
	return s.Apply(Decision{Kind: DecisionMove, Destination: dest, Overwrite: overwrite})
}

// Apply executes a decision against the entry under the cursor. A failed
// action leaves the queue and cursor untouched and returns the action's error.
func (s *Session) Apply(decision Decision) (State, error) {
	if decision.Kind == DecisionKeep {
		return s.Keep(), nil
	}
	if s.done || s.index < 0 || s.index >= len(s.entries) {
		return s.State(), ErrAllClean
	}
	if s.actions == nil {
		return s.State(), errors.New("review: no actions configured")
	}
	entry := s.entries[s.index]

	var err error
	result := ""
	switch decision.Kind {
	case DecisionDelete:
		err = s.actions.Trash(entry.Path)
		result = "trashed"
	case DecisionMove:
		dest := strings.TrimSpace(decision.Destination)
		if dest == "" {
			return s.State(), errors.New("review: move requires a destination folder")
		}
		var target string
		target, err = s.actions.Move(entry.Path, dest, decision.Overwrite)
		result = "moved to " + target
	default:
		return s.State(), fmt.Errorf("review: unknown decision %q", decision.Kind)
	}
	if err != nil {
		logging.WarnWithContext(s.logger, "decision failed; file kept in queue", "review_decision_failed",
			logging.String("path", entry.Path),
			logging.String(logging.FieldDecisionType, string(decision.Kind)),
			logging.Error(err),
			logging.String("error_kind", string(files.KindOf(err))),
			logging.String(logging.FieldErrorHint, failureHint(err)),
			logging.String(logging.FieldImpact, "file remains queued for review"),
		)
		return s.State(), err
	}

	s.logDecision(decision.Kind, entry, result)
	s.removeCurrent()
	return s.State(), nil
}

// removeCurrent drops the entry under the cursor. When the tail entry goes,
// the cursor steps back so it still names a valid entry.
func (s *Session) removeCurrent() {
	copy(s.entries[s.index:], s.entries[s.index+1:])
	s.entries[len(s.entries)-1] = files.Entry{}
	s.entries = s.entries[:len(s.entries)-1]
	if s.index >= len(s.entries) && s.index > 0 {
		s.index = len(s.entries) - 1
	}
	if len(s.entries) == 0 {
		s.finish("queue emptied")
	}
}

func (s *Session) finish(reason string) {
	if s.done {
		return
	}
	s.done = true
	s.logger.Info("review complete",
		logging.String("reason", reason),
		logging.Int("remaining", len(s.entries)),
		logging.String(logging.FieldEventType, "review_all_clean"),
	)
}

func (s *Session) logDecision(kind DecisionKind, entry files.Entry, result string) {
	attrs := logging.DecisionAttrs(string(kind), result, "user choice")
	attrs = append(attrs, logging.String("path", entry.Path), logging.Int64("size_bytes", entry.Size))
	s.logger.Info("review decision", logging.Args(attrs...)...)
}

func failureHint(err error) string {
	switch files.KindOf(err) {
	case files.KindNotFound:
		return "the file was removed outside the review; it will drop from the queue"
	case files.KindPermissionDenied:
		return "close programs using the file and try again"
	case files.KindAlreadyExists:
		return "allow overwrite or pick another destination"
	default:
		return "check the destination folder and try again"
	}
}

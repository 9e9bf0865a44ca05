// Package logging assembles the structured slog loggers used by sift.
//
// It owns the console and JSON handlers, the level and output plumbing, and
// a session handler that stamps every record with the run's session ID. The
// helpers in attrs.go keep warning and decision records uniformly shaped:
// WarnWithContext always carries an event type, an error hint, and the
// user-facing impact. NewNop gives tests and optional wiring a logger that
// cannot fail.
package logging

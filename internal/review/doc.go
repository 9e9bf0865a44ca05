// Package review holds the review session state machine.
//
// A Session owns the queue produced by the scanner and a cursor into it. The
// queue is treated as a cache over the filesystem: Current re-validates it
// lazily, dropping entries whose files disappeared, while Delete and Move run
// the decision through an Actions collaborator and only touch the queue when
// the action succeeded. Once the queue empties, or the user keeps past the
// last entry, the session is AllClean for the rest of the run.
//
// Lock guards against two review sessions running against the same state
// directory at once.
package review

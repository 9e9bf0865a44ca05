// Package preflight provides readiness checks for the directories sift
// reads and writes.
//
// The CLI "sift deps" command prints these next to the decoder table so a
// user can see at a glance whether a review session can run.
package preflight

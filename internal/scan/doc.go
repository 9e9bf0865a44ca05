// Package scan builds the review queue from a watched directory.
//
// A Scanner lists the direct children of one directory, keeps the files
// created within the lookback window, and orders them newest first. A missing
// directory is the only fatal condition; per-file stat failures are logged,
// recorded in the Report, and skipped.
package scan

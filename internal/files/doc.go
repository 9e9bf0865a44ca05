// Package files models the entries under review and performs the filesystem
// actions a review decision triggers.
//
// Entry carries the path, size, and creation time captured at scan time; the
// creation time comes from the platform's birth-time source where one exists.
// Operator sends files to the platform trash or moves them into a chosen
// destination, reporting failures as *ActionError values whose Kind callers
// can branch on (not found, permission denied, already exists, other).
package files

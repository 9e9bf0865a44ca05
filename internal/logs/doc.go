// Package logs reads sift's own log file for the "sift logs" command.
//
// Last returns the final lines of the file with a bounded ring buffer and
// the byte offset just past them. Follow polls from an offset and hands
// each new line to a callback until the context ends. A file that shrinks
// below the offset is read again from the start.
package logs

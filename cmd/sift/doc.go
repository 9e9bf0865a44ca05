// Command sift triages recently downloaded files.
//
// "sift review" walks the files created in the watch folder within the
// lookback window, newest first, showing metadata and a preview for each
// and asking whether to delete, keep or move it. "sift scan", "sift preview"
// and "sift deps" expose the scanner, the preview dispatcher and the decoder
// capability check on their own.
package main

// Package deps checks for the external tools sift's optional preview
// decoders need and turns the result into a capability set.
//
// ResolveDecoders runs once at startup. A decoder is available only when
// every binary it needs resolves on PATH and it is not disabled in config.
package deps

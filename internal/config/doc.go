// Package config loads, normalizes, and validates sift configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts),
// reads TOML files, and honours the SIFT_WATCH_DIR and SIFT_LOOKBACK_HOURS
// environment overrides. An empty watch_dir resolves to the platform's
// downloads folder.
package config

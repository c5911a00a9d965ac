// Package version exposes build metadata for the version endpoint and
// diagnostics.
package version

// Overridden at build time via -ldflags; the defaults identify local
// development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

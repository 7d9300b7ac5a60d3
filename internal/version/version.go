// Package version holds build metadata set with -ldflags.
package version

var (
	// Version is the release version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = ""
	// BuildDate is when the binary was built.
	BuildDate = ""
)

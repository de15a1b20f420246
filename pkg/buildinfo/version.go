// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/cratesbot/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/cratesbot/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/cratesbot/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Name is the program name reported by /about and --version.
const Name = "cratesbot"

// Homepage is the project page linked from /about.
const Homepage = "https://github.com/matzehuels/cratesbot"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/matzehuels/cratesbot/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/cratesbot/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/cratesbot/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// About returns the reply to the /about command: name, version and homepage.
func About() string {
	return fmt.Sprintf("%s %s\n%s", Name, Version, Homepage)
}

// UserAgent returns the User-Agent sent to crates.io, which requires one
// identifying the client and a way to contact its maintainers.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s)", Name, Version, Homepage)
}

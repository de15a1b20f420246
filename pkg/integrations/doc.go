// Package integrations provides the shared HTTP layer for package registry APIs.
//
// # Overview
//
// Registry-specific clients live in subpackages and embed [Client]:
//
//   - [crates]: Rust crates.io
//
// # Client Pattern
//
//	client := crates.NewClient(crates.DefaultBaseURL, 10*time.Second)
//	list, err := client.Fetch(ctx, crates.Search("tokio"))
//
// [Client] handles:
//   - Default request headers (crates.io requires a User-Agent)
//   - Status code mapping to [ErrNotFound] and [ErrNetwork]
//   - JSON decoding, with failures reported as [ErrDecode]
//   - HTTP hooks from the observability package
//
// Every call issues exactly one request. Callers decide how failures are
// presented; the sentinels let them tell "not found" apart from everything else.
//
// [crates]: github.com/matzehuels/cratesbot/pkg/integrations/crates
package integrations

// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches crate records from crates.io (https://crates.io),
// the Rust community's package registry. All request shapes decode into the
// same [Crate] record.
//
// # Usage
//
//	client := crates.NewClient(crates.DefaultBaseURL, 10*time.Second)
//
//	// Trending: most recently downloaded crates
//	list, err := client.Fetch(ctx, crates.Trending())
//
//	// Search: relevance-sorted, one page of 50
//	list, err = client.Fetch(ctx, crates.Search("serde"))
//
//	// Single crate
//	c, err := client.FetchCrate(ctx, "serde")
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // no such crate
//	}
//
// # Modes
//
// [ModeFor] maps inline query text to a [Mode]: empty text selects
// [Trending] (GET /summary, field most_recently_downloaded), anything else
// selects [Search] (GET /crates?q=...&sort=relevance&per_page=50, field crates).
//
// # Links
//
// [Crate.PageURL], [Crate.LibRSURL] and [Crate.DocsURL] build the public
// links shown next to a crate. Documentation and repository URLs supplied by
// the registry are passed through verbatim.
//
// # User-Agent
//
// The client includes a User-Agent header as required by crates.io policy.
package crates

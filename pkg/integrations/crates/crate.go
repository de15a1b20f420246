package crates

import "strings"

// Crate is a crate record as returned by the crates.io API.
//
// It is shared by every request shape: the summary and search endpoints
// return lists of it, the single-crate endpoint returns one. Optional fields
// are nil when the registry omits them or sends null.
type Crate struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Version       string  `json:"max_version"`
	Documentation *string `json:"documentation"`
	Repository    *string `json:"repository"`
}

// DescriptionText returns the description with whitespace runs collapsed to
// single spaces. ok is false when the description is absent or blank.
func (c Crate) DescriptionText() (text string, ok bool) {
	if c.Description == nil {
		return "", false
	}
	text = strings.Join(strings.Fields(*c.Description), " ")
	return text, text != ""
}

// DocumentationURL returns the documentation link supplied by the registry.
// ok is false when it is absent or blank.
func (c Crate) DocumentationURL() (string, bool) { return optional(c.Documentation) }

// RepositoryURL returns the repository link supplied by the registry.
// ok is false when it is absent or blank.
func (c Crate) RepositoryURL() (string, bool) { return optional(c.Repository) }

// optional yields *p unchanged; blank values count as absent since an empty
// URL would be rejected by the platform.
func optional(p *string) (string, bool) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return "", false
	}
	return *p, true
}

// Links to the public pages of a crate. Crate names are restricted to ASCII
// alphanumerics, '-' and '_', so they are used in paths without escaping.
const (
	siteURL  = "https://crates.io/crates/"
	libRSURL = "https://lib.rs/crates/"
	docsURL  = "https://docs.rs/crate/"
)

// PageURL returns the crates.io page of the crate.
func (c Crate) PageURL() string { return siteURL + c.Name }

// LibRSURL returns the lib.rs mirror page of the crate.
func (c Crate) LibRSURL() string { return libRSURL + c.Name }

// DocsURL returns the documentation link, falling back to docs.rs when the
// registry has none.
func (c Crate) DocsURL() string {
	if doc, ok := c.DocumentationURL(); ok {
		return doc
	}
	return docsURL + c.Name
}

package render

import (
	"strings"

	"github.com/matzehuels/cratesbot/pkg/integrations/crates"
)

// Button labels, in the order they appear under an inline result.
const (
	LabelInfo  = "info"
	LabelLibRS = "lib.rs"
	LabelDoc   = "doc"
	LabelRepo  = "repo"
)

// Button is a labelled link attached to a result.
type Button struct {
	Label string
	URL   string
}

// Result is a crate rendered for an inline answer.
//
// Zero values: Description is empty when the crate has none. Buttons always
// holds info, lib.rs and doc, followed by repo when the crate has a repository.
type Result struct {
	ID              string   // Crate id, echoed back by the platform on selection
	Title           string   // "{name} {version}", plain text
	Description     string   // Collapsed description, plain text (may be empty)
	Body            string   // HTML message sent when the result is chosen
	Buttons         []Button // Single row of link buttons, fixed order
	PreviewDisabled bool     // Always true: the body links several pages
}

// Inline renders c as an inline result. It is pure and never fails; absent
// optional fields omit their part of the output.
func Inline(c crates.Crate) Result {
	var body strings.Builder
	writeHeading(&body, c)

	desc, hasDesc := c.DescriptionText()
	if hasDesc {
		body.WriteByte('\n')
		WriteCode(&body, desc)
	}

	buttons := []Button{
		{Label: LabelInfo, URL: c.PageURL()},
		{Label: LabelLibRS, URL: c.LibRSURL()},
		{Label: LabelDoc, URL: c.DocsURL()},
	}
	if repo, ok := c.RepositoryURL(); ok {
		buttons = append(buttons, Button{Label: LabelRepo, URL: repo})
	}

	return Result{
		ID:              c.ID,
		Title:           c.Name + " " + c.Version,
		Description:     desc,
		Body:            body.String(),
		Buttons:         buttons,
		PreviewDisabled: true,
	}
}

// InlineAll renders every crate, preserving the registry's order.
func InlineAll(list []crates.Crate) []Result {
	results := make([]Result, 0, len(list))
	for _, c := range list {
		results = append(results, Inline(c))
	}
	return results
}

// writeHeading writes "<b>{name}</b> ({version})".
func writeHeading(b *strings.Builder, c crates.Crate) {
	b.WriteString("<b>")
	b.WriteString(Escape(c.Name))
	b.WriteString("</b> (")
	b.WriteString(Escape(c.Version))
	b.WriteString(")")
}

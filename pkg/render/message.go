package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cratesbot/pkg/integrations/crates"
)

// Message renders c as the reply to a /crate command: the heading followed by
// inline links and the description on one line,
//
//	<b>serde</b> (1.0.0) - <a href="...">info</a> - <a href="...">doc</a> - <a href="...">repo</a> - description
//
// The repo link and the description are omitted when absent.
func Message(c crates.Crate) string {
	var b strings.Builder
	writeHeading(&b, c)
	writeLink(&b, LabelInfo, c.PageURL())
	writeLink(&b, LabelDoc, c.DocsURL())
	if repo, ok := c.RepositoryURL(); ok {
		writeLink(&b, LabelRepo, repo)
	}
	if desc, ok := c.DescriptionText(); ok {
		b.WriteString(" - ")
		b.WriteString(Escape(desc))
	}
	return b.String()
}

// NotFound renders the reply for a crate that does not exist.
func NotFound(name string) string {
	return fmt.Sprintf("<b>%s</b> - not found", Escape(name))
}

func writeLink(b *strings.Builder, label, url string) {
	fmt.Fprintf(b, ` - <a href="%s">%s</a>`, EscapeAttr(url), label)
}

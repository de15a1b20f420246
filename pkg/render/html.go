package render

import (
	"html"
	"io"
	"strings"
)

// escaper covers the three characters the platform's HTML parse mode
// requires escaped in text. Quotes are left alone so prose stays readable.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape escapes s for use as HTML text.
func Escape(s string) string {
	return escaper.Replace(s)
}

// EscapeAttr escapes s for use inside a double-quoted HTML attribute.
func EscapeAttr(s string) string {
	return html.EscapeString(s)
}

// WriteCode writes s to w as HTML text, turning each backtick-delimited span
// into a <code> element.
//
// Spans pair left to right. The text inside a span is escaped like prose; no
// markup nests inside it. A backtick without a partner and an empty pair
// (two adjacent backticks) are written as literal text.
func WriteCode(w io.StringWriter, s string) {
	for {
		open := strings.IndexByte(s, '`')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open+1:], '`')
		if end < 0 {
			break
		}
		end += open + 1

		if end == open+1 {
			w.WriteString(Escape(s[:end+1]))
		} else {
			w.WriteString(Escape(s[:open]))
			w.WriteString("<code>")
			w.WriteString(Escape(s[open+1 : end]))
			w.WriteString("</code>")
		}
		s = s[end+1:]
	}
	w.WriteString(Escape(s))
}

// Code returns s rendered by [WriteCode].
func Code(s string) string {
	var b strings.Builder
	WriteCode(&b, s)
	return b.String()
}

// Package render turns crate records into chat messages.
//
// # Inline Results
//
// [Inline] converts one [crates.Crate] into a [Result]: a plain-text title,
// an HTML body and a fixed row of link buttons (info, lib.rs, doc, and repo
// when the crate has a repository). [InlineAll] maps a whole page, keeping
// the registry's order.
//
//	results := render.InlineAll(list)
//
// The body is the bold name and version, then on a second line the
// description with whitespace collapsed:
//
//	<b>serde</b> (1.0.0)
//	A <code>no_std</code> serialization framework
//
// # Command Replies
//
// [Message] renders the single-line reply used by the /crate command and
// [NotFound] the reply for a missing crate.
//
// # Escaping
//
// All registry and user text goes through [Escape] (or [EscapeAttr] inside
// href attributes). Descriptions go through [WriteCode], which escapes prose
// and turns backtick pairs into <code> elements, so code delimiters are
// emitted as markup exactly once and never as escaped backticks.
//
// [crates.Crate]: github.com/matzehuels/cratesbot/pkg/integrations/crates.Crate
package render

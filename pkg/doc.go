// Package pkg holds the libraries behind cratesbot, a Telegram inline bot
// that searches crates.io.
//
// # Architecture
//
// An inline query flows through the packages in one direction:
//
//	Telegram update
//	     ↓
//	[bot] (classify update, pick fetch mode)
//	     ↓
//	[integrations/crates] (one GET against crates.io)
//	     ↓
//	[render] (one result per crate, registry order)
//	     ↓
//	[telegram] (answerInlineQuery)
//
// # Main Packages
//
//   - [bot]: update dispatcher, worker runner, long-polling and webhook delivery
//   - [telegram]: Bot API types and client
//   - [integrations] and [integrations/crates]: registry HTTP client and record
//   - [render]: inline results and command replies as Telegram HTML
//   - [config]: defaults, TOML file and environment settings
//   - [errors]: coded errors and input validation
//   - [observability]: hooks for dispatcher and HTTP events
//   - [buildinfo]: version metadata
//
// [bot]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/bot
// [telegram]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/telegram
// [integrations]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/integrations
// [integrations/crates]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/integrations/crates
// [render]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cratesbot/pkg/buildinfo
package pkg

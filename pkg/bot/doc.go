// Package bot implements the cratesbot update dispatcher.
//
// # Inline Queries
//
// For each inline query, [Bot.HandleUpdate] picks a fetch mode from the query
// text (empty text shows trending crates, anything else searches), fetches
// one page from the registry, renders every crate in registry order and
// answers the query. Fetch failures are logged and the query is left
// unanswered; the user sees no results rather than an error.
//
// # Commands
//
// Text messages starting with a command are answered with a single reply:
//
//   - /start, /help: usage
//   - /about: name, version and homepage
//   - /crate name: details of one crate, "not found" when it does not exist,
//     or a short failure notice when the registry cannot be reached
//
// # Delivery
//
// Updates reach the bot by long polling ([Poller]) or webhook
// ([NewWebhookHandler]). Both hand updates to a [Runner], which handles each
// on its own goroutine with a bound on concurrency and recovers panics so a
// single update can never take the process down.
package bot

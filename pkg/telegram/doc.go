// Package telegram is a small Telegram Bot API client and the update and
// result types cratesbot exchanges with it.
//
// Only the calls the bot needs are covered: getMe, getUpdates,
// answerInlineQuery, sendMessage, setWebhook and deleteWebhook. Requests are
// JSON-encoded POSTs made with resty; a response with "ok": false becomes an
// [*APIError].
//
// # Updates
//
// [Update.Content] exposes the update as a closed set of variants so callers
// can switch exhaustively:
//
//	switch c := update.Content().(type) {
//	case *telegram.InlineQuery:
//	    // answer it
//	case *telegram.Message:
//	    // maybe a command
//	default:
//	    // ignore
//	}
package telegram

package bot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cratesbot/pkg/integrations/crates"
	"github.com/matzehuels/cratesbot/pkg/observability"
	"github.com/matzehuels/cratesbot/pkg/render"
	"github.com/matzehuels/cratesbot/pkg/telegram"
)

// Registry is the crate registry the bot queries.
// *crates.Client satisfies it.
type Registry interface {
	Fetch(ctx context.Context, mode crates.Mode) ([]crates.Crate, error)
	FetchCrate(ctx context.Context, name string) (*crates.Crate, error)
}

// Platform is the chat platform the bot answers through.
// *telegram.Client satisfies it.
type Platform interface {
	AnswerInlineQuery(ctx context.Context, queryID string, results []telegram.InlineQueryResultArticle) error
	SendMessage(ctx context.Context, params telegram.SendMessageParams) error
}

// Outcome is the terminal state of handling one update.
type Outcome int

const (
	// Ignored: the update carried nothing the bot responds to.
	Ignored Outcome = iota
	// Failed: the registry fetch failed and nothing was sent.
	Failed
	// Done: a reply was submitted (whether or not the platform accepted it).
	Done
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Failed:
		return "failed"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Bot dispatches updates: inline queries are answered with crate results,
// text commands with single replies.
//
// Bot holds no per-update state; HandleUpdate is safe to call from many
// goroutines at once.
type Bot struct {
	registry Registry
	platform Platform
	logger   *log.Logger
	username string
}

// New creates a Bot. username is the bot's own username, used to tell
// "/crate@thisbot" from commands addressed to other bots in groups.
func New(registry Registry, platform Platform, logger *log.Logger, username string) *Bot {
	if logger == nil {
		logger = log.Default()
	}
	return &Bot{
		registry: registry,
		platform: platform,
		logger:   logger,
		username: username,
	}
}

// HandleUpdate processes one update to completion and reports how it ended.
// Failures are logged, never returned: one bad update must not affect others.
func (b *Bot) HandleUpdate(ctx context.Context, u telegram.Update) Outcome {
	logger := b.logger.With("update", u.UpdateID, "trace", uuid.NewString())
	hooks := observability.Dispatch()

	switch c := u.Content().(type) {
	case *telegram.InlineQuery:
		hooks.OnUpdate(ctx, "inline_query")
		return b.handleInlineQuery(ctx, logger, c)
	case *telegram.Message:
		cmd, ok := parseCommand(c.Text, b.username)
		if !ok {
			hooks.OnUpdate(ctx, "ignored")
			return Ignored
		}
		hooks.OnUpdate(ctx, "command")
		return b.handleCommand(ctx, logger, c, cmd)
	default:
		hooks.OnUpdate(ctx, "ignored")
		return Ignored
	}
}

// handleInlineQuery runs fetch, render and answer strictly in sequence.
// Fetch errors end the update silently: the user just sees no results.
func (b *Bot) handleInlineQuery(ctx context.Context, logger *log.Logger, q *telegram.InlineQuery) Outcome {
	hooks := observability.Dispatch()
	mode := crates.ModeFor(q.Query)
	logger = logger.With("query", q.ID, "mode", mode)

	start := time.Now()
	list, err := b.registry.Fetch(ctx, mode)
	hooks.OnFetch(ctx, mode.String(), len(list), time.Since(start), err)
	if err != nil {
		logger.Warn("failed to get results", "err", err)
		return Failed
	}

	results := render.InlineAll(list)
	logger.Debug("replying", "results", len(results))

	start = time.Now()
	err = b.platform.AnswerInlineQuery(ctx, q.ID, Articles(results))
	hooks.OnAnswer(ctx, "inline_query", len(results), time.Since(start), err)
	if err != nil {
		logger.Warn("failed to answer query", "err", err)
	}
	return Done
}

// Articles converts rendered results into platform articles, keeping order.
func Articles(results []render.Result) []telegram.InlineQueryResultArticle {
	articles := make([]telegram.InlineQueryResultArticle, 0, len(results))
	for _, r := range results {
		articles = append(articles, Article(r))
	}
	return articles
}

// Article converts one rendered result: an HTML message with previews
// disabled and a single row of URL buttons.
func Article(r render.Result) telegram.InlineQueryResultArticle {
	content := telegram.InputTextMessageContent{
		MessageText: r.Body,
		ParseMode:   telegram.ParseModeHTML,
	}
	if r.PreviewDisabled {
		content.LinkPreviewOptions = &telegram.LinkPreviewOptions{IsDisabled: true}
	}

	row := make([]telegram.InlineKeyboardButton, 0, len(r.Buttons))
	for _, btn := range r.Buttons {
		row = append(row, telegram.InlineKeyboardButton{Text: btn.Label, URL: btn.URL})
	}

	a := telegram.NewArticle(r.ID, r.Title, content)
	a.Description = r.Description
	a.ReplyMarkup = &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{row}}
	return a
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratesbot/pkg/buildinfo"
	apperrors "github.com/matzehuels/cratesbot/pkg/errors"
	"github.com/matzehuels/cratesbot/pkg/integrations"
	"github.com/matzehuels/cratesbot/pkg/observability"
	"github.com/matzehuels/cratesbot/pkg/render"
	"github.com/matzehuels/cratesbot/pkg/telegram"
)

// Replies for the text commands.
const (
	helpText = "Type <code>@%s query</code> in any chat to search crates.io, " +
		"or leave the query empty to see what is trending.\n\n" +
		"/crate <i>name</i> - look up a single crate\n" +
		"/about - version and source"
	crateUsage   = "Usage: /crate <i>name</i>"
	fetchFailure = "Failed to fetch crate information, please try again later."
)

// command is a parsed "/name[@bot] arg" message.
type command struct {
	name string
	arg  string
}

// parseCommand extracts the command from a message text. ok is false for
// plain text and for commands addressed to a different bot.
func parseCommand(text, username string) (cmd command, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return command{}, false
	}
	head, arg, _ := strings.Cut(text[1:], " ")
	name, target, addressed := strings.Cut(head, "@")
	if addressed && !strings.EqualFold(target, username) {
		return command{}, false
	}
	if name == "" {
		return command{}, false
	}
	return command{name: strings.ToLower(name), arg: strings.TrimSpace(arg)}, true
}

func (b *Bot) handleCommand(ctx context.Context, logger *log.Logger, m *telegram.Message, cmd command) Outcome {
	logger = logger.With("chat", m.Chat.ID, "command", cmd.name)

	var text string
	switch cmd.name {
	case "start", "help":
		text = fmt.Sprintf(helpText, render.Escape(b.username))
	case "about":
		text = render.Escape(buildinfo.About())
	case "crate", "crates":
		text = b.lookup(ctx, logger, cmd.arg)
	default:
		return Ignored
	}

	b.reply(ctx, logger, m, text)
	return Done
}

// Lookup renders the reply /crate gives for name without sending it.
func (b *Bot) Lookup(ctx context.Context, name string) string {
	return b.lookup(ctx, b.logger, strings.TrimSpace(name))
}

// lookup renders the reply to /crate. Unlike inline queries, the user asked
// for one specific crate, so a missing crate and a failed request both get
// an explicit answer.
func (b *Bot) lookup(ctx context.Context, logger *log.Logger, name string) string {
	if name == "" {
		return crateUsage
	}
	if err := apperrors.ValidateCratesPackageName(name); err != nil {
		logger.Debug("rejected crate name", "name", name, "err", apperrors.UserMessage(err))
		return render.NotFound(name)
	}

	start := time.Now()
	c, err := b.registry.FetchCrate(ctx, name)
	observability.Dispatch().OnFetch(ctx, "crate", boolToCount(err == nil), time.Since(start), err)
	switch {
	case err == nil:
		return render.Message(*c)
	case errors.Is(err, integrations.ErrNotFound):
		return render.NotFound(name)
	default:
		logger.Warn("failed to fetch crate", "name", name, "err", err)
		return fetchFailure
	}
}

func (b *Bot) reply(ctx context.Context, logger *log.Logger, m *telegram.Message, text string) {
	params := telegram.SendMessageParams{
		ChatID:             m.Chat.ID,
		Text:               text,
		ParseMode:          telegram.ParseModeHTML,
		LinkPreviewOptions: &telegram.LinkPreviewOptions{IsDisabled: true},
		ReplyParameters:    &telegram.ReplyParameters{MessageID: m.MessageID},
	}

	start := time.Now()
	err := b.platform.SendMessage(ctx, params)
	observability.Dispatch().OnAnswer(ctx, "command", 1, time.Since(start), err)
	if err != nil {
		logger.Warn("failed to send reply", "err", err)
	}
}

func boolToCount(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

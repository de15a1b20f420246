package telegram

// Update is an incoming update from the Bot API. At most one of the optional
// fields is set; use [Update.Content] to switch on the variant.
type Update struct {
	UpdateID    int64        `json:"update_id"`
	Message     *Message     `json:"message,omitempty"`
	InlineQuery *InlineQuery `json:"inline_query,omitempty"`
}

// Content is the payload of an update: *InlineQuery, *Message or Unknown.
type Content interface {
	isContent()
}

// Unknown is the content of updates this bot does not consume (edited
// messages, callback queries, chat member changes, ...).
type Unknown struct{}

func (*InlineQuery) isContent() {}
func (*Message) isContent()     {}
func (Unknown) isContent()      {}

// Content returns the update's payload. Updates without an inline query or
// message yield Unknown.
func (u Update) Content() Content {
	switch {
	case u.InlineQuery != nil:
		return u.InlineQuery
	case u.Message != nil:
		return u.Message
	default:
		return Unknown{}
	}
}

// User is a Telegram user or bot.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Chat is the conversation a message belongs to.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Message is an incoming chat message. Only text messages are of interest.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// InlineQuery is an incoming inline query: the text typed after the bot's
// username in any chat.
type InlineQuery struct {
	ID     string `json:"id"`
	From   User   `json:"from"`
	Query  string `json:"query"`
	Offset string `json:"offset"`
}

// ParseModeHTML selects the HTML subset for message formatting.
const ParseModeHTML = "HTML"

// InlineKeyboardButton is a button under a message. Only URL buttons are used.
type InlineKeyboardButton struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// InlineKeyboardMarkup is an inline keyboard: rows of buttons.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// LinkPreviewOptions controls the link preview of a sent message.
type LinkPreviewOptions struct {
	IsDisabled bool `json:"is_disabled,omitempty"`
}

// InputTextMessageContent is the message sent when an inline result is chosen.
type InputTextMessageContent struct {
	MessageText        string              `json:"message_text"`
	ParseMode          string              `json:"parse_mode,omitempty"`
	LinkPreviewOptions *LinkPreviewOptions `json:"link_preview_options,omitempty"`
}

// InlineQueryResultArticle is an "article" inline result.
type InlineQueryResultArticle struct {
	Type                string                  `json:"type"`
	ID                  string                  `json:"id"`
	Title               string                  `json:"title"`
	InputMessageContent InputTextMessageContent `json:"input_message_content"`
	ReplyMarkup         *InlineKeyboardMarkup   `json:"reply_markup,omitempty"`
	Description         string                  `json:"description,omitempty"`
}

// NewArticle returns an article result with the type field set.
func NewArticle(id, title string, content InputTextMessageContent) InlineQueryResultArticle {
	return InlineQueryResultArticle{
		Type:                "article",
		ID:                  id,
		Title:               title,
		InputMessageContent: content,
	}
}

// ReplyParameters marks a sent message as a reply.
type ReplyParameters struct {
	MessageID int64 `json:"message_id"`
}

// SendMessageParams are the parameters of sendMessage.
type SendMessageParams struct {
	ChatID             int64               `json:"chat_id"`
	Text               string              `json:"text"`
	ParseMode          string              `json:"parse_mode,omitempty"`
	LinkPreviewOptions *LinkPreviewOptions `json:"link_preview_options,omitempty"`
	ReplyParameters    *ReplyParameters    `json:"reply_parameters,omitempty"`
}

// AllowedUpdates lists the update types requested from getUpdates and setWebhook.
var AllowedUpdates = []string{"message", "inline_query"}

type answerInlineQueryParams struct {
	InlineQueryID string                     `json:"inline_query_id"`
	Results       []InlineQueryResultArticle `json:"results"`
}

type getUpdatesParams struct {
	Offset         int64    `json:"offset,omitempty"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// SetWebhookParams are the parameters of setWebhook.
type SetWebhookParams struct {
	URL            string   `json:"url"`
	SecretToken    string   `json:"secret_token,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

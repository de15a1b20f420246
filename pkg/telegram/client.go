package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "github.com/matzehuels/cratesbot/pkg/errors"
	"github.com/matzehuels/cratesbot/pkg/observability"
)

// DefaultAPIURL is the public Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// DefaultTimeout bounds a single Bot API call other than long polling.
const DefaultTimeout = 10 * time.Second

// APIError is a failed Bot API call: the response had "ok": false or a
// non-JSON error status.
type APIError struct {
	Method      string
	Code        int    // error_code, or the HTTP status when the body had none
	Description string // Human-readable description from the API
	RetryAfter  int    // Seconds to wait before retrying after flood control (0 if none)
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// Client is a minimal Bot API client covering the calls cratesbot makes.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	rc      *resty.Client
	token   string
	host    string
	timeout time.Duration
}

// NewClient creates a client for the bot identified by token. apiURL is the
// Bot API root ([DefaultAPIURL] when empty). timeout bounds each call; long
// polls add their own poll duration on top.
func NewClient(token, apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	apiURL = strings.TrimRight(apiURL, "/")
	host := apiURL
	if u, err := url.Parse(apiURL); err == nil {
		host = u.Host
	}
	rc := resty.New().
		SetBaseURL(apiURL+"/bot"+token).
		SetHeader("Content-Type", "application/json")
	return &Client{rc: rc, token: token, host: host, timeout: timeout}
}

// GetMe returns the bot's own user.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.call(ctx, c.timeout, "getMe", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// GetUpdates long-polls for updates with ids >= offset, waiting up to
// pollTimeout for one to arrive.
func (c *Client) GetUpdates(ctx context.Context, offset int64, pollTimeout time.Duration) ([]Update, error) {
	params := getUpdatesParams{
		Offset:         offset,
		Timeout:        int(pollTimeout / time.Second),
		AllowedUpdates: AllowedUpdates,
	}
	var updates []Update
	if err := c.call(ctx, c.timeout+pollTimeout, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// AnswerInlineQuery answers an inline query with results, in order.
// An empty list is sent as an empty answer.
func (c *Client) AnswerInlineQuery(ctx context.Context, queryID string, results []InlineQueryResultArticle) error {
	if results == nil {
		results = []InlineQueryResultArticle{}
	}
	params := answerInlineQueryParams{InlineQueryID: queryID, Results: results}
	return c.call(ctx, c.timeout, "answerInlineQuery", params, nil)
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) error {
	return c.call(ctx, c.timeout, "sendMessage", params, nil)
}

// SetWebhook registers the URL the Bot API delivers updates to.
func (c *Client) SetWebhook(ctx context.Context, params SetWebhookParams) error {
	return c.call(ctx, c.timeout, "setWebhook", params, nil)
}

// DeleteWebhook removes any registered webhook so getUpdates can be used.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, c.timeout, "deleteWebhook", nil, nil)
}

type response struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func (c *Client) call(ctx context.Context, timeout time.Duration, method string, params, result any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var env response
	req := c.rc.R().SetContext(ctx).SetResult(&env).SetError(&env)
	if params != nil {
		req.SetBody(params)
	}

	path := "/" + method
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, "POST", c.host, path)
	start := time.Now()

	resp, err := req.Post(path)
	if err != nil {
		err = c.redact(err)
		hooks.OnError(ctx, "POST", c.host, path, err)
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "telegram %s", method)
	}
	hooks.OnResponse(ctx, "POST", c.host, path, resp.StatusCode(), time.Since(start))

	if !env.OK {
		apiErr := &APIError{Method: method, Code: env.ErrorCode, Description: env.Description}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode()
			apiErr.Description = resp.Status()
		}
		if env.Parameters != nil {
			apiErr.RetryAfter = env.Parameters.RetryAfter
		}
		return apiErr
	}
	if result != nil {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, err, "telegram %s: decode result", method)
		}
	}
	return nil
}

// redact strips the bot token from transport errors, which quote the
// request URL.
func (c *Client) redact(err error) error {
	if c.token == "" || !strings.Contains(err.Error(), c.token) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), c.token, "<token>"))
}

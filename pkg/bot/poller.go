package bot

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratesbot/pkg/telegram"
)

// DefaultPollTimeout is how long one getUpdates call waits for updates.
const DefaultPollTimeout = 30 * time.Second

// retryDelay is the pause after a failed getUpdates call.
const retryDelay = 3 * time.Second

// Updater fetches updates by long polling. *telegram.Client satisfies it.
type Updater interface {
	GetUpdates(ctx context.Context, offset int64, pollTimeout time.Duration) ([]telegram.Update, error)
}

// Poller receives updates by long polling and hands them to a Runner.
type Poller struct {
	api     Updater
	runner  *Runner
	logger  *log.Logger
	timeout time.Duration
	retry   time.Duration
}

// NewPoller creates a Poller. A non-positive timeout selects [DefaultPollTimeout].
func NewPoller(api Updater, runner *Runner, logger *log.Logger, timeout time.Duration) *Poller {
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{api: api, runner: runner, logger: logger, timeout: timeout, retry: retryDelay}
}

// Run polls until ctx is cancelled, then waits for in-flight updates.
//
// Transient failures are logged and retried after a pause (or the delay the
// API asks for). An invalid token or a competing webhook ends Run with an
// error since polling can never succeed.
func (p *Poller) Run(ctx context.Context) error {
	defer p.runner.Wait()

	var offset int64
	for ctx.Err() == nil {
		updates, err := p.api.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if fatal(err) {
				return err
			}
			wait := retryAfter(err, p.retry)
			p.logger.Warn("failed to get updates", "err", err, "retry_in", wait)
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			p.runner.Submit(u)
		}
	}
	return nil
}

func fatal(err error) bool {
	var apiErr *telegram.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusConflict
}

func retryAfter(err error, fallback time.Duration) time.Duration {
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return fallback
}

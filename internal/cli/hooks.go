package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratesbot/pkg/observability"
)

// logHooks reports dispatcher and HTTP events as debug logs.
type logHooks struct {
	logger *log.Logger
}

// registerHooks routes observability events to logger and, when non-nil,
// to metrics.
func registerHooks(logger *log.Logger, metrics *observability.Metrics) {
	h := logHooks{logger: logger}
	if metrics == nil {
		observability.SetDispatchHooks(h)
		observability.SetHTTPHooks(h)
		return
	}
	observability.SetDispatchHooks(observability.MultiDispatchHooks{h, metrics})
	observability.SetHTTPHooks(observability.MultiHTTPHooks{h, metrics})
}

func (h logHooks) OnUpdate(_ context.Context, kind string) {
	h.logger.Debug("update received", "kind", kind)
}

func (h logHooks) OnFetch(_ context.Context, mode string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "mode", mode, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetched", "mode", mode, "count", count, "duration", d)
}

func (h logHooks) OnAnswer(_ context.Context, kind string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("answer failed", "kind", kind, "duration", d, "err", err)
		return
	}
	h.logger.Debug("answered", "kind", kind, "count", count, "duration", d)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

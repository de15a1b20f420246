package bot

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cratesbot/pkg/telegram"
)

// SecretHeader carries the secret token set with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// maxUpdateSize bounds the size of a webhook request body.
const maxUpdateSize = 1 << 20

// NewWebhookHandler returns the HTTP handler for webhook delivery: POST path
// accepts one JSON update and submits it to runner; GET /healthz reports
// liveness. When secret is non-empty, requests must carry it in [SecretHeader].
//
// The update is acknowledged as soon as it is decoded; handling continues in
// the background so the platform never waits on the registry.
func NewWebhookHandler(runner *Runner, path, secret string, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &webhook{runner: runner, secret: secret, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post(path, h.receive)
	return r
}

type webhook struct {
	runner *Runner
	secret string
	logger *log.Logger
}

func (h *webhook) receive(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(SecretHeader)), []byte(h.secret)) != 1 {
		h.logger.Warn("rejected webhook request", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var u telegram.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateSize)).Decode(&u); err != nil {
		h.logger.Warn("malformed webhook update", "err", err)
		http.Error(w, "malformed update", http.StatusBadRequest)
		return
	}

	h.runner.Submit(u)
	w.WriteHeader(http.StatusOK)
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// the server down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

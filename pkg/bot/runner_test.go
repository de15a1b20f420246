package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/cratesbot/pkg/telegram"
)

// handlerFunc adapts a function to Handler.
type handlerFunc func(ctx context.Context, u telegram.Update) Outcome

func (f handlerFunc) HandleUpdate(ctx context.Context, u telegram.Update) Outcome { return f(ctx, u) }

// recorder collects the ids of handled updates.
type recorder struct {
	mu  sync.Mutex
	ids []int64
}

func (r *recorder) HandleUpdate(ctx context.Context, u telegram.Update) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, u.UpdateID)
	return Done
}

func (r *recorder) handled() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.ids...)
}

func TestRunner_RecoversPanics(t *testing.T) {
	var handled atomic.Int32
	h := handlerFunc(func(ctx context.Context, u telegram.Update) Outcome {
		if u.UpdateID == 1 {
			panic("boom")
		}
		handled.Add(1)
		return Done
	})

	r := NewRunner(context.Background(), h, testLogger(), 2)
	r.Submit(telegram.Update{UpdateID: 1})
	r.Submit(telegram.Update{UpdateID: 2})
	r.Submit(telegram.Update{UpdateID: 3})
	r.Wait()

	if got := handled.Load(); got != 2 {
		t.Errorf("handled = %d, want 2", got)
	}
}

func TestRunner_BoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	h := handlerFunc(func(ctx context.Context, u telegram.Update) Outcome {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		running.Add(-1)
		return Done
	})

	r := NewRunner(context.Background(), h, testLogger(), 3)
	for i := range 12 {
		r.Submit(telegram.Update{UpdateID: int64(i)})
	}
	r.Wait()

	if got := peak.Load(); got > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", got)
	}
}

func TestRunner_OutlivesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var sawCancel atomic.Bool
	h := handlerFunc(func(hctx context.Context, u telegram.Update) Outcome {
		cancel()
		sawCancel.Store(hctx.Err() != nil)
		return Done
	})

	r := NewRunner(ctx, h, testLogger(), 1)
	r.Submit(telegram.Update{UpdateID: 1})
	r.Wait()

	if sawCancel.Load() {
		t.Error("in-flight updates should not see the runner's parent cancellation")
	}
}

// fakeUpdater returns queued batches, then blocks until ctx is done.
type fakeUpdater struct {
	mu      sync.Mutex
	batches [][]telegram.Update
	errs    []error
	offsets []int64
}

func (f *fakeUpdater) GetUpdates(ctx context.Context, offset int64, pollTimeout time.Duration) ([]telegram.Update, error) {
	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		f.mu.Unlock()
		return nil, err
	}
	if len(f.batches) > 0 {
		b := f.batches[0]
		f.batches = f.batches[1:]
		f.mu.Unlock()
		return b, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestPoller_TracksOffset(t *testing.T) {
	api := &fakeUpdater{batches: [][]telegram.Update{
		{{UpdateID: 10}, {UpdateID: 11}},
		{{UpdateID: 12}},
	}}
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	p := NewPoller(api, NewRunner(ctx, rec, testLogger(), 4), testLogger(), time.Second)
	go func() { done <- p.Run(ctx) }()

	waitFor(t, func() bool { return len(rec.handled()) == 3 })
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.offsets) < 3 || api.offsets[0] != 0 || api.offsets[1] != 12 || api.offsets[2] != 13 {
		t.Errorf("offsets = %v, want [0 12 13 ...]", api.offsets)
	}
}

func TestPoller_FatalErrors(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusConflict} {
		api := &fakeUpdater{errs: []error{&telegram.APIError{Method: "getUpdates", Code: code}}}
		p := NewPoller(api, NewRunner(context.Background(), &recorder{}, testLogger(), 1), testLogger(), time.Second)

		if err := p.Run(context.Background()); err == nil {
			t.Errorf("code %d: expected Run to fail", code)
		}
	}
}

func TestPoller_RetriesTransientErrors(t *testing.T) {
	api := &fakeUpdater{
		errs:    []error{&telegram.APIError{Method: "getUpdates", Code: http.StatusTooManyRequests, RetryAfter: 0}},
		batches: [][]telegram.Update{{{UpdateID: 1}}},
	}
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	p := NewPoller(api, NewRunner(ctx, rec, testLogger(), 1), testLogger(), time.Second)
	p.retry = 10 * time.Millisecond
	go func() { done <- p.Run(ctx) }()

	waitFor(t, func() bool { return len(rec.handled()) == 1 })
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRetryAfter(t *testing.T) {
	if got := retryAfter(&telegram.APIError{Code: 429, RetryAfter: 7}, time.Second); got != 7*time.Second {
		t.Errorf("retryAfter = %v, want 7s", got)
	}
	if got := retryAfter(context.DeadlineExceeded, time.Second); got != time.Second {
		t.Errorf("retryAfter = %v, want 1s", got)
	}
}

func TestWebhook(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		header     string
		body       string
		wantStatus int
		wantIDs    []int64
	}{
		{"accepted", "s3cret", "s3cret", `{"update_id": 5, "inline_query": {"id": "q", "query": ""}}`, http.StatusOK, []int64{5}},
		{"no secret configured", "", "", `{"update_id": 6}`, http.StatusOK, []int64{6}},
		{"wrong secret", "s3cret", "nope", `{"update_id": 7}`, http.StatusUnauthorized, nil},
		{"missing secret", "s3cret", "", `{"update_id": 8}`, http.StatusUnauthorized, nil},
		{"malformed", "", "", `{"update_id": `, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			runner := NewRunner(context.Background(), rec, testLogger(), 1)
			h := NewWebhookHandler(runner, "/hook", tt.secret, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set(SecretHeader, tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			runner.Wait()

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := rec.handled(); len(got) != len(tt.wantIDs) || (len(got) == 1 && got[0] != tt.wantIDs[0]) {
				t.Errorf("handled = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestWebhook_Healthz(t *testing.T) {
	h := NewWebhookHandler(NewRunner(context.Background(), &recorder{}, testLogger(), 1), "/hook", "", testLogger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hook", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on the update path = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

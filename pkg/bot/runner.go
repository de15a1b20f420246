package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cratesbot/pkg/telegram"
)

// DefaultWorkers is the default number of updates handled concurrently.
const DefaultWorkers = 32

// Handler handles one update. *Bot satisfies it.
type Handler interface {
	HandleUpdate(ctx context.Context, u telegram.Update) Outcome
}

// Runner runs each submitted update on its own goroutine, at most workers at
// a time. Updates share nothing, so they complete in any order.
type Runner struct {
	handler Handler
	logger  *log.Logger
	ctx     context.Context
	group   *errgroup.Group
}

// NewRunner creates a Runner handling updates with h. Updates run under a
// context derived from ctx that is not cancelled with it, so in-flight
// updates finish during shutdown; call [Runner.Wait] to drain them.
func NewRunner(ctx context.Context, h Handler, logger *log.Logger, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = log.Default()
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	return &Runner{
		handler: h,
		logger:  logger,
		ctx:     context.WithoutCancel(ctx),
		group:   g,
	}
}

// Submit starts handling u. It blocks while all workers are busy.
func (r *Runner) Submit(u telegram.Update) {
	r.group.Go(func() error {
		r.run(u)
		return nil
	})
}

// Wait blocks until every submitted update has been handled.
func (r *Runner) Wait() {
	_ = r.group.Wait()
}

// run isolates a panic in one update from the rest of the process.
func (r *Runner) run(u telegram.Update) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("panic while handling update", "update", u.UpdateID, "panic", fmt.Sprint(v), "stack", string(debug.Stack()))
		}
	}()
	outcome := r.handler.HandleUpdate(r.ctx, u)
	r.logger.Debug("update handled", "update", u.UpdateID, "outcome", outcome)
}

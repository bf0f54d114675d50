package common

import (
	"context"
	"sync"
	"time"

	"github.com/browsercore/xk6-frame/log"
)

// Progress is the per-operation handle every caller-facing Frame
// operation is run under. It carries a deadline, a cancellation context,
// a log sink and a set of cleanup callbacks that run exactly once, on
// either successful completion or abort (timeout, page disconnect, frame
// detach) — callers register one per disposable resource they acquire
// (element handles, Frame Task registrations, signal-barrier membership).
type Progress struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	mu       sync.Mutex
	cleanups []func()
	aborted  bool
	abortErr error
}

func newProgress(ctx context.Context, timeout time.Duration, logger *log.Logger) *Progress {
	var cctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		cctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		cctx, cancel = context.WithCancel(ctx)
	}
	return &Progress{ctx: cctx, cancel: cancel, logger: logger}
}

// IsRunning reports whether the operation has neither completed nor been
// aborted yet; the retry-with-selector loop (§4.4.1) polls this.
func (p *Progress) IsRunning() bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
		return true
	}
}

// Context returns the progress's cancellation context, to be threaded
// through every delegate/ExecutionContext/SelectorEngine call it makes.
func (p *Progress) Context() context.Context { return p.ctx }

// Log writes category-tagged progress to the operation's log sink.
func (p *Progress) Log(category, msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debugf(category, msg, args...)
	}
}

// CleanupWhenAborted registers fn to run when the operation is aborted
// (deadline, page disconnect, frame detach) or completes, whichever
// comes first. Cleanups run in LIFO order, each exactly once.
func (p *Progress) CleanupWhenAborted(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleanups = append(p.cleanups, fn)
}

// abort runs every registered cleanup (LIFO) and cancels the progress's
// context, recording err as the reason if one isn't already recorded.
func (p *Progress) abort(err error) {
	p.mu.Lock()
	if p.aborted {
		p.mu.Unlock()
		return
	}
	p.aborted = true
	p.abortErr = err
	cleanups := p.cleanups
	p.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	p.cancel()
}

// done runs cleanups on the successful-completion path without forcing
// an abort error; subsequent IsRunning() calls report false.
func (p *Progress) done() {
	p.abort(nil)
}

// ProgressController wraps an operation with a timeout/abort/cleanup
// Progress and a log sink, and exposes the runAbortableTask entry point
// used by operations that don't receive a caller-supplied Progress.
type ProgressController struct {
	logger *log.Logger
}

// NewProgressController returns a ProgressController that logs through
// logger.
func NewProgressController(logger *log.Logger) *ProgressController {
	return &ProgressController{logger: logger}
}

// Abortable is anything a ProgressController can race a Progress's
// deadline against: a page or frame whose disconnect/detach should abort
// every operation running against it.
type Abortable interface {
	// Done returns a channel that is closed when this collaborator is
	// gone (page disconnected or frame detached).
	Done() <-chan struct{}
	// Err returns the reason Done() closed, valid only after it has.
	Err() error
}

// RunAbortableTask is the entry point for operations without a
// caller-supplied Progress: it builds one bounded by timeout, additionally
// aborted by every abortable's Done() channel, runs fn, and always tears
// the Progress down (running every registered cleanup) before returning.
func (c *ProgressController) RunAbortableTask(
	ctx context.Context, timeout time.Duration, abortables []Abortable,
	fn func(p *Progress) (interface{}, error),
) (interface{}, error) {
	progress := newProgress(ctx, timeout, c.logger)
	defer progress.done()

	watchCtx, cancelWatch := context.WithCancel(progress.ctx)
	defer cancelWatch()
	for _, a := range abortables {
		a := a
		go func() {
			select {
			case <-a.Done():
				progress.abort(a.Err())
			case <-watchCtx.Done():
			}
		}()
	}

	resCh := make(chan struct {
		v   interface{}
		err error
	}, 1)
	go func() {
		v, err := fn(progress)
		resCh <- struct {
			v   interface{}
			err error
		}{v, err}
	}()

	select {
	case r := <-resCh:
		return r.v, r.err
	case <-progress.ctx.Done():
		if progress.abortErr != nil {
			return nil, progress.abortErr
		}
		return nil, NewTimeoutError(timeout.String())
	}
}

package common

import (
	"context"
	"sync"
)

// rerunnableTask is a long-lived task bound to one (frame, world) that
// re-executes itself each time a fresh execution context appears, until
// it succeeds, is cancelled, or errors fatally. It is the mechanism every
// selector wait, element action, and waitForFunction is built on, so that
// an execution-context recycle (navigation, process crash recovery)
// never surfaces as a caller-visible error.
type rerunnableTask struct {
	frame   *Frame
	world   World
	builder SchedulableTask

	result *waiter

	// runMu serializes rerun invocations: at most one rerun may be in
	// flight per task, matching the single-threaded scheduling model the
	// algorithm assumes (§5).
	runMu sync.Mutex

	mu          sync.Mutex
	currentPoll InjectedScriptPollHandle
	terminated  bool
}

// newRerunnableTask registers the task in the world's task set and
// starts its first run: immediately, if the world already has a live
// context, or implicitly later, when _setContext broadcasts the next
// context transition to every registered task.
func newRerunnableTask(frame *Frame, world World, builder SchedulableTask) *rerunnableTask {
	t := &rerunnableTask{
		frame:   frame,
		world:   world,
		builder: builder,
		result:  newWaiter(),
	}
	current := frame.registerRerunnableTask(world, t)
	if current != nil {
		go t.rerun(current)
	}
	return t
}

// Result blocks until the task resolves, is terminated, or ctx is done.
func (t *rerunnableTask) Result(ctx context.Context) (interface{}, error) {
	return t.result.wait(ctx)
}

// rerun invokes the builder against ctx, awaits the resulting poll's
// result, and resolves the task's external promise. An
// execution-context-destroyed error is swallowed: the frame's next
// _setContext broadcast will call rerun again.
func (t *rerunnableTask) rerun(execCtx ExecutionContext) {
	t.runMu.Lock()
	defer t.runMu.Unlock()

	t.mu.Lock()
	if t.terminated {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	poll, err := t.builder(context.Background(), execCtx)
	if err != nil {
		if isExecutionContextDestroyedMessage(err) {
			return
		}
		t.result.resolve(nil, err)
		return
	}

	t.mu.Lock()
	if t.terminated {
		t.mu.Unlock()
		poll.Cancel(context.Background())
		return
	}
	t.currentPoll = poll
	t.mu.Unlock()

	value, err := poll.Result(context.Background())
	if err != nil {
		if isExecutionContextDestroyedMessage(err) {
			return
		}
		t.result.resolve(nil, err)
		return
	}
	t.result.resolve(value, nil)
}

// terminate rejects the task's external promise with err and cancels any
// poll currently in flight. Used when the frame detaches.
func (t *rerunnableTask) terminate(err error) {
	t.mu.Lock()
	if t.terminated {
		t.mu.Unlock()
		return
	}
	t.terminated = true
	poll := t.currentPoll
	t.mu.Unlock()

	t.result.resolve(nil, err)
	if poll != nil {
		poll.Cancel(context.Background())
	}
}

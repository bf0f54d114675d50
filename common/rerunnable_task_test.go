package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRerunnableTaskRunsImmediatelyWhenContextAlreadyLive(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	execCtx := &fakeExecutionContext{frame: f, world: MainWorld}
	f.contextCreated(MainWorld, execCtx)

	builder := func(ctx context.Context, ec ExecutionContext) (InjectedScriptPollHandle, error) {
		assert.Same(t, execCtx, ec)
		return &immediatePoll{handle: &fakeElementHandle{}}, nil
	}
	task := newRerunnableTask(f, MainWorld, builder)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := task.Result(ctx)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestRerunnableTaskWaitsForContextThenRuns(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	want := &fakeElementHandle{}
	builder := func(ctx context.Context, ec ExecutionContext) (InjectedScriptPollHandle, error) {
		return &immediatePoll{handle: want}, nil
	}
	task := newRerunnableTask(f, MainWorld, builder)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	select {
	case <-task.result.done():
		t.Fatal("task resolved before any execution context was installed")
	case <-time.After(20 * time.Millisecond):
	}

	f.contextCreated(MainWorld, &fakeExecutionContext{frame: f, world: MainWorld})

	v, err := task.Result(ctx)
	require.NoError(t, err)
	assert.Same(t, want, v)
}

func TestRerunnableTaskSwallowsExecutionContextDestroyedAndRerunsOnNextContext(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	want := &fakeElementHandle{}
	calls := 0
	builder := func(ctx context.Context, ec ExecutionContext) (InjectedScriptPollHandle, error) {
		calls++
		if calls == 1 {
			return nil, NewExecutionContextDestroyedError(assertErr("Execution context was destroyed"))
		}
		return &immediatePoll{handle: want}, nil
	}

	execCtx1 := &fakeExecutionContext{frame: f, world: MainWorld}
	f.contextCreated(MainWorld, execCtx1)
	task := newRerunnableTask(f, MainWorld, builder)

	// The first run's destroyed-context error must not reach Result.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	_, err := task.Result(ctx)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// A context recycle (navigation) reruns the builder, which now succeeds.
	f.contextCreated(MainWorld, &fakeExecutionContext{frame: f, world: MainWorld})

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	v, err := task.Result(ctx2)
	require.NoError(t, err)
	assert.Same(t, want, v)
	assert.Equal(t, 2, calls)
}

func TestRerunnableTaskTerminateCancelsInFlightPollAndRejects(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	poll := newBlockingPoll()
	builder := func(ctx context.Context, ec ExecutionContext) (InjectedScriptPollHandle, error) {
		return poll, nil
	}
	f.contextCreated(MainWorld, &fakeExecutionContext{frame: f, world: MainWorld})
	task := newRerunnableTask(f, MainWorld, builder)

	assert.Eventually(t, poll.resultCalled, time.Second, time.Millisecond)

	terminateErr := NewFrameDetachedError(f.URL())
	task.terminate(terminateErr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := task.Result(ctx)
	assert.Equal(t, terminateErr, err)
	assert.True(t, poll.cancelled())
}

// blockingPoll never resolves on its own; it only unblocks once Cancel is
// called, mirroring predicatePoll's own internal-cancellation shape.
type blockingPoll struct {
	ctx    context.Context
	cancel context.CancelFunc
	called chan struct{}
}

func newBlockingPoll() *blockingPoll {
	ctx, cancel := context.WithCancel(context.Background())
	return &blockingPoll{ctx: ctx, cancel: cancel, called: make(chan struct{})}
}

func (p *blockingPoll) resultCalled() bool {
	select {
	case <-p.called:
		return true
	default:
		return false
	}
}

func (p *blockingPoll) Result(ctx context.Context) (JSHandle, error) {
	select {
	case <-p.called:
	default:
		close(p.called)
	}
	<-p.ctx.Done()
	return nil, p.ctx.Err()
}

func (p *blockingPoll) Cancel(ctx context.Context) { p.cancel() }

func (p *blockingPoll) cancelled() bool {
	select {
	case <-p.ctx.Done():
		return true
	default:
		return false
	}
}

// assertErr is a trivial error value for building destroyed-context errors
// in tests without reaching for errors.New at the call site.
type assertErr string

func (e assertErr) Error() string { return string(e) }

package common

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameGotoWaitsForNewDocumentThenLifecycle(t *testing.T) {
	t.Parallel()

	delegate := &fakePageDelegate{
		navigateFn: func(ctx context.Context, frame *Frame, url, referer string) (string, error) {
			return "doc-1", nil
		},
	}
	f, fm := newTestFrame(t, delegate, nil)

	done := make(chan struct{})
	var resp *NetworkResponse
	var gotoErr error
	go func() {
		resp, gotoErr = f.Goto(context.Background(), "http://example.com", GotoOptions{Timeout: time.Second})
		close(done)
	}()

	require.Eventually(t, func() bool {
		tasks := f.tasksSnapshot()
		if len(tasks) == 0 {
			return false
		}
		tasks[0].mu.Lock()
		defer tasks[0].mu.Unlock()
		return tasks[0].specificDocWaiter != nil
	}, time.Second, time.Millisecond, "Goto never registered its specific-document wait")
	fm.FrameCommittedNewDocumentNavigation(f.ID(), "http://example.com", "", "doc-1", false)
	fm.FrameLifecycleEvent(f.ID(), "load")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Goto never returned")
	}
	require.NoError(t, gotoErr)
	assert.Nil(t, resp) // no top-level request was recorded for doc-1 in this test
}

func TestFrameGotoRejectsConflictingReferer(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	f.page.mu.Lock()
	f.page.extraHTTPHeaders["referer"] = "http://a.example"
	f.page.mu.Unlock()

	_, err := f.Goto(context.Background(), "http://example.com", GotoOptions{Referer: "http://b.example"})
	require.Error(t, err)
	_, ok := err.(*InvalidArgumentError)
	assert.True(t, ok)
}

func TestFrameGotoRejectsUnknownLifecycleValue(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	_, err := f.Goto(context.Background(), "http://example.com", GotoOptions{WaitUntil: "bogus"})
	require.Error(t, err)
	_, ok := err.(*InvalidArgumentError)
	assert.True(t, ok)
}

func TestFrameWaitForLoadStateAcceptsNetworkidle0Alias(t *testing.T) {
	t.Parallel()

	f, fm := newTestFrame(t, nil, nil)
	fm.FrameLifecycleEvent(f.ID(), "networkidle")

	err := f.WaitForLoadState(context.Background(), "networkidle0", time.Second)
	assert.NoError(t, err)
}

func TestFrameNetworkIdleFiresOnlyAfterQuietPeriod(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	req := &NetworkRequest{RequestID: "r1", DocumentID: "doc-1"}

	f.onRequestStarted(req)
	assert.False(t, f.hasLifecycleEventInSubtree("networkidle"))

	f.onRequestSettled(req.RequestID)

	// Immediately after the last request settles, the event must not have
	// fired yet: it waits out the full quiet period first.
	assert.False(t, f.hasLifecycleEventInSubtree("networkidle"))

	assert.Eventually(t, func() bool {
		return f.hasLifecycleEventInSubtree("networkidle")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFrameNetworkIdleTimerResetsOnNewInFlightRequest(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	req1 := &NetworkRequest{RequestID: "r1", DocumentID: "doc-1"}
	f.onRequestStarted(req1)
	f.onRequestSettled(req1.RequestID)

	time.Sleep(networkIdleTimeout / 2)

	req2 := &NetworkRequest{RequestID: "r2", DocumentID: "doc-1"}
	f.onRequestStarted(req2)
	assert.False(t, f.hasLifecycleEventInSubtree("networkidle"))

	f.onRequestSettled(req2.RequestID)
	assert.Eventually(t, func() bool {
		return f.hasLifecycleEventInSubtree("networkidle")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFrameClickRetriesOnDetachedElementThenSucceeds(t *testing.T) {
	t.Parallel()

	stale := &fakeElementHandle{clickErr: NewNotConnectedError()}
	fresh := &fakeElementHandle{}
	engine := &fakeSelectorEngine{waitResults: []ElementHandle{stale, fresh}}
	delegate := &fakePageDelegate{}
	f, _ := newTestFrame(t, delegate, engine)
	f.contextCreated(MainWorld, &fakeExecutionContext{frame: f, world: MainWorld})

	err := f.Click(context.Background(), "#btn", time.Second)
	require.NoError(t, err)

	assert.Equal(t, 1, stale.clickCalls)
	assert.Equal(t, 1, fresh.clickCalls)
	assert.Equal(t, 1, stale.disposeCalls)
	assert.Equal(t, 1, fresh.disposeCalls)
	assert.Equal(t, 1, delegate.inputEpilogueCalls, "a successful input action must run the epilogue exactly once")
}

func TestFrameClickPropagatesNonDetachedError(t *testing.T) {
	t.Parallel()

	boom := NewInvalidArgumentError("boom")
	failing := &fakeElementHandle{clickErr: boom}
	engine := &fakeSelectorEngine{waitResults: []ElementHandle{failing}}
	f, _ := newTestFrame(t, nil, engine)
	f.contextCreated(MainWorld, &fakeExecutionContext{frame: f, world: MainWorld})

	err := f.Click(context.Background(), "#btn", time.Second)
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, failing.clickCalls)
}

func TestFrameSetContentRoutesThroughConsoleTagBeforeAwaitingLifecycle(t *testing.T) {
	t.Parallel()

	f, fm := newTestFrame(t, nil, nil)
	execCtx := &fakeExecutionContext{frame: f, world: UtilityWorld}
	execCtx.evalFn = func(ctx context.Context, fn string, arg interface{}) (interface{}, error) {
		args, ok := arg.([]interface{})
		require.True(t, ok)
		require.Len(t, args, 2)
		tag, ok := args[1].(string)
		require.True(t, ok)

		// interceptConsoleMessage's handler blocks inside SetContent's
		// lifecycle wait, so the lifecycle event must fire from a second,
		// independent goroutine rather than after the intercept call.
		go func() {
			suppressed := fm.interceptConsoleMessage(context.Background(), "debug", tag)
			assert.True(t, suppressed)
		}()
		go func() {
			time.Sleep(10 * time.Millisecond)
			fm.FrameLifecycleEvent(f.ID(), "load")
		}()
		return nil, nil
	}
	f.contextCreated(UtilityWorld, execCtx)

	err := f.SetContent(context.Background(), "<html></html>", SetContentOptions{Timeout: time.Second})
	require.NoError(t, err)
}

func TestFrameSetContentRejectsUnknownLifecycleValue(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	err := f.SetContent(context.Background(), "<html></html>", SetContentOptions{WaitUntil: "bogus"})
	require.Error(t, err)
	_, ok := err.(*InvalidArgumentError)
	assert.True(t, ok)
}

func TestFrameDetachTerminatesTasksAndClosesDetachedCh(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	task := newFrameTask(f)
	w := task.waitForLifecycle("load")

	detachErr := NewFrameDetachedError(f.URL())
	f.detach(detachErr)

	select {
	case <-f.Done():
	default:
		t.Fatal("detach must close the frame's Done channel")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := w.wait(ctx)
	assert.Equal(t, detachErr, err)

	// detach must be idempotent.
	assert.NotPanics(t, func() { f.detach(detachErr) })
}

func TestAddScriptTagRequiresExactlyOneOfURLPathContent(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	err := f.AddScriptTag(context.Background(), AddScriptTagOptions{})
	require.Error(t, err)
	_, ok := err.(*InvalidArgumentError)
	assert.True(t, ok)

	err = f.AddScriptTag(context.Background(), AddScriptTagOptions{URL: "http://a", Content: "b"})
	require.Error(t, err)
	_, ok = err.(*InvalidArgumentError)
	assert.True(t, ok)
}

func TestAddScriptTagReadsPathAndAppendsSourceURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/lib.js"
	require.NoError(t, os.WriteFile(path, []byte("console.log('hi')\n"), 0o600))

	f, _ := newTestFrame(t, nil, nil)
	execCtx := &fakeExecutionContext{frame: f, world: MainWorld}
	var seenContent string
	execCtx.evalFn = func(ctx context.Context, fn string, arg interface{}) (interface{}, error) {
		params, ok := arg.(map[string]interface{})
		require.True(t, ok)
		seenContent, _ = params["content"].(string)
		return nil, nil
	}
	f.contextCreated(MainWorld, execCtx)

	err := f.AddScriptTag(context.Background(), AddScriptTagOptions{Path: path, Timeout: time.Second})
	require.NoError(t, err)
	assert.Contains(t, seenContent, "console.log('hi')")
	assert.Contains(t, seenContent, "//# sourceURL="+path)
}

package common

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameManagerFrameAttachedBuildsTree(t *testing.T) {
	t.Parallel()

	_, fm := newTestFrame(t, nil, nil)
	main := fm.MainFrame()
	require.NotNil(t, main)

	fm.FrameAttached("child-1", main.ID())
	child := fm.Frame("child-1")
	require.NotNil(t, child)
	assert.Same(t, main, child.ParentFrame())
	assert.Contains(t, main.ChildFrames(), child)
}

func TestFrameManagerFrameDetachedRemovesSubtreeAndTerminatesTasks(t *testing.T) {
	t.Parallel()

	main, fm := newTestFrame(t, nil, nil)
	fm.FrameAttached("child-1", main.ID())
	child := fm.Frame("child-1")

	task := newFrameTask(child)
	w := task.waitForLifecycle("load")

	fm.FrameDetached("child-1")

	assert.Nil(t, fm.Frame("child-1"))
	assert.Empty(t, main.ChildFrames())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := w.wait(ctx)
	require.Error(t, err)
	_, ok := err.(*FrameDetachedError)
	assert.True(t, ok)
}

func TestFrameManagerCommittedNewDocumentNavigationDropsChildrenAndClearsLifecycle(t *testing.T) {
	t.Parallel()

	main, fm := newTestFrame(t, nil, nil)
	fm.FrameAttached("child-1", main.ID())
	main.fireLifecycleEvent("load")

	task := newFrameTask(main)
	notified := task.waitForNewDocument(nil)

	fm.FrameCommittedNewDocumentNavigation(main.ID(), "http://example.com", "", "doc-1", false)

	assert.Empty(t, main.ChildFrames(), "a new document must drop the frame's old subtree")
	assert.Nil(t, fm.Frame("child-1"))
	assert.False(t, main.hasLifecycleEventInSubtree("load"), "clearLifecycle must reset fired lifecycle events")
	assert.Equal(t, "http://example.com", main.URL())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := notified.wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", v)
}

func TestFrameManagerRequestFailedInterruptsPendingDocument(t *testing.T) {
	t.Parallel()

	main, fm := newTestFrame(t, nil, nil)
	main.mu.Lock()
	main.pendingDocID = "doc-1"
	main.mu.Unlock()

	task := newFrameTask(main)
	w := task.waitForSpecificDocument("doc-1")

	req := &NetworkRequest{RequestID: "r1", DocumentID: "doc-1", frameIDValue: main.ID()}
	fm.RequestFailed(req, "net::ERR_ABORTED", true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := w.wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maybe frame was detached?")
}

func TestFrameManagerNextConsoleTagFormat(t *testing.T) {
	t.Parallel()

	_, fm := newTestFrame(t, nil, nil)
	tag := fm.nextConsoleTag("frame-42")

	re := regexp.MustCompile(`^--playwright--set--content--frame-42--\d+--$`)
	assert.Regexp(t, re, tag)

	second := fm.nextConsoleTag("frame-42")
	assert.NotEqual(t, tag, second, "every mint must be unique")
}

func TestFrameManagerInterceptConsoleMessageRoutesTagToHandlerAndSuppresses(t *testing.T) {
	t.Parallel()

	_, fm := newTestFrame(t, nil, nil)
	tag := fm.nextConsoleTag("main")

	handled := make(chan struct{})
	fm.registerConsoleTagHandler(tag, func() { close(handled) })

	var fannedOut []string
	unsubscribe := fm.onConsoleMessage(func(msgType, text string) { fannedOut = append(fannedOut, text) })
	defer unsubscribe()

	suppressed := fm.interceptConsoleMessage(context.Background(), "debug", tag)
	assert.True(t, suppressed)

	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("tag handler was never invoked")
	}
	assert.Empty(t, fannedOut, "a routed tag message must not be fanned out as a normal console message")

	suppressed = fm.interceptConsoleMessage(context.Background(), "log", "hello")
	assert.False(t, suppressed)
	assert.Equal(t, []string{"hello"}, fannedOut)
}

func TestFrameManagerInterceptConsoleMessageIgnoresNonDebugMatchingText(t *testing.T) {
	t.Parallel()

	_, fm := newTestFrame(t, nil, nil)
	tag := fm.nextConsoleTag("main")

	called := false
	fm.registerConsoleTagHandler(tag, func() { called = true })

	// The tag text happens to match but the message type isn't "debug": the
	// routing table must not consume it, and it must be suppressed only if
	// handled. It falls through to normal fan-out instead.
	suppressed := fm.interceptConsoleMessage(context.Background(), "log", tag)
	assert.False(t, suppressed)
	assert.False(t, called)
}

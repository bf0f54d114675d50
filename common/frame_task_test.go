package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameTaskWaitForSpecificDocumentInterruptedByAnotherDocument(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	task := newFrameTask(f)
	t.Cleanup(func() { f.removeTask(task) })

	w := task.waitForSpecificDocument("doc-expected")

	// A different document commits first: the wait must reject with
	// NavigationInterruptedError rather than resolving or hanging.
	task.onNewDocument("doc-other", "http://example.com/other", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := w.wait(ctx)
	require.Error(t, err)
	assert.Nil(t, v)
	_, ok := err.(*NavigationInterruptedError)
	assert.True(t, ok, "expected a NavigationInterruptedError, got %T: %v", err, err)
}

func TestFrameTaskWaitForSpecificDocumentResolvesOnExpectedCommit(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	task := newFrameTask(f)
	t.Cleanup(func() { f.removeTask(task) })

	w := task.waitForSpecificDocument("doc-1")
	req := &NetworkRequest{RequestID: "r1", DocumentID: "doc-1"}
	task.onRequest(req)
	task.onNewDocument("doc-1", "http://example.com", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := w.wait(ctx)
	require.NoError(t, err)
	assert.Same(t, req, v)
}

func TestFrameTaskWaitForSpecificDocumentRejectsOnNavigationError(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	task := newFrameTask(f)
	t.Cleanup(func() { f.removeTask(task) })

	w := task.waitForSpecificDocument("doc-1")
	navErr := NewNavigationError("net::ERR_FAILED", false)
	task.onNewDocument("doc-1", "", navErr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := w.wait(ctx)
	assert.Equal(t, navErr, err)
}

func TestFrameTaskOnRequestSkipsRedirectHopsAndEmptyDocumentID(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	task := newFrameTask(f)
	t.Cleanup(func() { f.removeTask(task) })

	noDocID := &NetworkRequest{RequestID: "r0"}
	task.onRequest(noDocID)

	redirected := &NetworkRequest{RequestID: "r1", DocumentID: "doc-1"}
	hop := &NetworkRequest{RequestID: "r2", DocumentID: "doc-1", redirectOf: redirected}
	task.onRequest(hop)

	task.mu.Lock()
	_, hasEmpty := task.requestsByDocID[""]
	_, hasDoc1 := task.requestsByDocID["doc-1"]
	task.mu.Unlock()

	assert.False(t, hasEmpty)
	assert.False(t, hasDoc1, "a redirect hop must not be recorded as the document's request")
}

func TestFrameTaskWaitForLifecycleResolvesImmediatelyIfAlreadyFired(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	f.fireLifecycleEvent("load")

	task := newFrameTask(f)
	t.Cleanup(func() { f.removeTask(task) })
	w := task.waitForLifecycle("load")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := w.wait(ctx)
	assert.NoError(t, err)
}

func TestFrameTaskTerminateRejectsEveryPendingWaiter(t *testing.T) {
	t.Parallel()

	f, _ := newTestFrame(t, nil, nil)
	task := newFrameTask(f)

	sameDoc := task.waitForSameDocumentNavigation(nil)
	newDoc := task.waitForNewDocument(nil)
	specific := task.waitForSpecificDocument("doc-1")
	lifecycle := task.waitForLifecycle("load")

	detachErr := NewFrameDetachedError(f.URL())
	task.terminate(detachErr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, w := range []*waiter{sameDoc, newDoc, specific, lifecycle} {
		_, err := w.wait(ctx)
		assert.Equal(t, detachErr, err)
	}
}

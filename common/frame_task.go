package common

import (
	"context"
	"sync"
)

// waiter is a one-shot outcome (value or error) that frameTask and
// rerunnableTask hand back to their caller.
type waiter struct {
	once   sync.Once
	doneCh chan struct{}
	value  interface{}
	err    error
}

func newWaiter() *waiter {
	return &waiter{doneCh: make(chan struct{})}
}

func (w *waiter) resolve(value interface{}, err error) {
	w.once.Do(func() {
		w.value = value
		w.err = err
		close(w.doneCh)
	})
}

func (w *waiter) done() <-chan struct{} { return w.doneCh }

// wait blocks until the waiter resolves or ctx is done, whichever comes
// first.
func (w *waiter) wait(ctx context.Context) (interface{}, error) {
	select {
	case <-w.doneCh:
		return w.value, w.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// frameTask is a one-shot observer for a single caller operation,
// attached to exactly one frame for its lifetime. It holds at most one
// waiter of each kind; the Frame Manager notifies every frameTask
// attached to the frames it touches via the onXxx hooks below.
type frameTask struct {
	frame *Frame

	mu sync.Mutex

	sameDocWaiter  *waiter
	sameDocMatcher URLMatcher

	specificDocWaiter     *waiter
	specificDocExpectedID string

	newDocWaiter  *waiter
	newDocMatcher URLMatcher

	lifecycleWaiter *waiter
	lifecycleEvent  string

	requestsByDocID map[string]*NetworkRequest
}

// newFrameTask creates a task and registers it on frame.
func newFrameTask(frame *Frame) *frameTask {
	t := &frameTask{frame: frame, requestsByDocID: make(map[string]*NetworkRequest)}
	frame.addTask(t)
	return t
}

// waitForSameDocumentNavigation resolves on the next same-document
// commit whose URL matches matcher (nil matches everything).
func (t *frameTask) waitForSameDocumentNavigation(matcher URLMatcher) *waiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sameDocWaiter = newWaiter()
	t.sameDocMatcher = matcher
	return t.sameDocWaiter
}

// waitForSpecificDocument resolves on commit of expectedID (with the
// top-level request recorded for it, if any); rejects on navigation
// error for that id, or with NavigationInterruptedError if a different
// document id commits first.
func (t *frameTask) waitForSpecificDocument(expectedID string) *waiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.specificDocWaiter = newWaiter()
	t.specificDocExpectedID = expectedID
	return t.specificDocWaiter
}

// waitForNewDocument resolves with the committing document's id on any
// new-document commit whose URL matches matcher; rejects on navigation
// error.
func (t *frameTask) waitForNewDocument(matcher URLMatcher) *waiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.newDocWaiter = newWaiter()
	t.newDocMatcher = matcher
	return t.newDocWaiter
}

// waitForLifecycle resolves when event has fired on t.frame and
// recursively on every descendant, recomputed on every lifecycle event
// anywhere in the page.
func (t *frameTask) waitForLifecycle(event string) *waiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lifecycleWaiter = newWaiter()
	t.lifecycleEvent = event
	if t.frame.hasLifecycleEventInSubtree(event) {
		w := t.lifecycleWaiter
		go w.resolve(nil, nil)
	}
	return t.lifecycleWaiter
}

// onRequest records req by document id so a later waitForSpecificDocument
// resolution can hand back the top-level request for that document.
// Redirect hops are not recorded: only the final request for a document
// id should be visible to the caller.
func (t *frameTask) onRequest(req *NetworkRequest) {
	if req.DocumentID == "" || req.IsRedirectHop() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requestsByDocID[req.DocumentID] = req
}

// onSameDocument notifies the task of a same-document commit at url.
func (t *frameTask) onSameDocument(url string) {
	t.mu.Lock()
	w, matcher := t.sameDocWaiter, t.sameDocMatcher
	t.mu.Unlock()
	if w != nil && matchesURL(matcher, url) {
		w.resolve(nil, nil)
	}
}

// onNewDocument notifies the task of a new-document outcome for docID:
// url and err are mutually exclusive (url on commit, err on failure).
func (t *frameTask) onNewDocument(docID, url string, navErr error) {
	t.mu.Lock()
	specWaiter, expectedID := t.specificDocWaiter, t.specificDocExpectedID
	newWaiter_, newMatcher := t.newDocWaiter, t.newDocMatcher
	req := t.requestsByDocID[docID]
	t.mu.Unlock()

	if specWaiter != nil {
		switch {
		case docID == expectedID && navErr != nil:
			specWaiter.resolve(nil, navErr)
		case docID == expectedID:
			specWaiter.resolve(req, nil)
		case navErr == nil:
			// A different document committed before the expected one.
			specWaiter.resolve(nil, NewNavigationInterruptedError(expectedID, docID))
		}
	}

	if newWaiter_ != nil {
		switch {
		case navErr != nil:
			newWaiter_.resolve(nil, navErr)
		case matchesURL(newMatcher, url):
			newWaiter_.resolve(docID, nil)
		}
	}
}

// onLifecycle notifies the task that event fired somewhere in the page;
// the task recomputes its own subtree predicate (rooted at t.frame) and
// resolves if satisfied.
func (t *frameTask) onLifecycle(event string) {
	t.mu.Lock()
	w, want := t.lifecycleWaiter, t.lifecycleEvent
	frame := t.frame
	t.mu.Unlock()
	if w == nil || event != want {
		return
	}
	if frame.hasLifecycleEventInSubtree(want) {
		w.resolve(nil, nil)
	}
}

// terminate rejects every still-pending waiter with err, used when the
// frame detaches while this task is alive.
func (t *frameTask) terminate(err error) {
	t.mu.Lock()
	waiters := []*waiter{t.sameDocWaiter, t.specificDocWaiter, t.newDocWaiter, t.lifecycleWaiter}
	t.mu.Unlock()
	for _, w := range waiters {
		if w != nil {
			w.resolve(nil, err)
		}
	}
}

package common

import (
	"context"
	"sync"

	"github.com/browsercore/xk6-frame/log"
)

// signalBarrier lets an input action (click/type/press/...) wait for
// every navigation it might have triggered before returning control to
// the caller. It is a reference-counted latch: protectCount starts at 1
// (a self-retain released by waitFor), every observed navigation retains
// for the duration of its own Frame Task, and the latch resolves exactly
// once, the first time protectCount returns to zero after at least one
// release.
type signalBarrier struct {
	logger *log.Logger

	mu           sync.Mutex
	protectCount int
	resolved     bool
	releasedOnce bool
	doneCh       chan struct{}
}

// newSignalBarrier creates a barrier with protectCount = 1.
func newSignalBarrier(logger *log.Logger) *signalBarrier {
	return &signalBarrier{
		logger:       logger,
		protectCount: 1,
		doneCh:       make(chan struct{}),
	}
}

// retain increments the protect count, e.g. in response to a "frame will
// potentially request navigation" announcement from the PageDelegate.
func (b *signalBarrier) retain() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.protectCount++
}

// release decrements the protect count and fires the latch if it has
// returned to zero after at least one release.
func (b *signalBarrier) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.protectCount--
	b.releasedOnce = true
	b.maybeResolve()
}

func (b *signalBarrier) maybeResolve() {
	if b.resolved || !b.releasedOnce || b.protectCount > 0 {
		return
	}
	b.resolved = true
	close(b.doneCh)
}

// addFrameNavigation is called by the Frame Manager when it observes a
// navigation request while this barrier is active: it retains, spawns a
// Frame Task on frame racing pageDisconnected/frameDetached/any-settled,
// then releases once any of those settle.
func (b *signalBarrier) addFrameNavigation(ctx context.Context, frame *Frame) {
	b.retain()

	task := newFrameTask(frame)
	anyNewDoc := task.waitForNewDocument(nil)
	anySameDoc := task.waitForSameDocumentNavigation(nil)

	go func() {
		defer b.release()
		defer frame.removeTask(task)
		select {
		case <-anyNewDoc.done():
		case <-anySameDoc.done():
		case <-frame.detachedCh():
		case <-ctx.Done():
		}
	}()
}

// waitFor releases the self-retain and returns a channel that is closed
// once protectCount has returned to zero.
func (b *signalBarrier) waitFor() <-chan struct{} {
	b.release()
	return b.doneCh
}

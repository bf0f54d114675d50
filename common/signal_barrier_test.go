package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalBarrierResolvesAfterAllReleased(t *testing.T) {
	t.Parallel()

	b := newSignalBarrier(nil)
	b.retain()
	b.retain()

	done := b.waitFor() // releases the self-retain; protectCount is now 2

	select {
	case <-done:
		t.Fatal("barrier resolved before every retain was released")
	case <-time.After(20 * time.Millisecond):
	}

	b.release()
	select {
	case <-done:
		t.Fatal("barrier resolved with one retain still outstanding")
	case <-time.After(20 * time.Millisecond):
	}

	b.release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("barrier never resolved once every retain was released")
	}
}

func TestSignalBarrierResolvesOnlyOnce(t *testing.T) {
	t.Parallel()

	b := newSignalBarrier(nil)
	done := b.waitFor()
	<-done

	assert.True(t, b.resolved)
	assert.NotPanics(t, func() { b.release() }, "a late release must not double-close doneCh")
}

func TestSignalBarrierAddFrameNavigationTracksUntilSettled(t *testing.T) {
	t.Parallel()

	f, fm := newTestFrame(t, nil, nil)
	b := newSignalBarrier(nil)
	fm.registerBarrier(b)
	t.Cleanup(func() { fm.unregisterBarrier(b) })

	fm.FrameRequestedNavigation(f.ID(), "doc-1")
	done := b.waitFor()

	select {
	case <-done:
		t.Fatal("barrier resolved before the navigation it is tracking settled")
	case <-time.After(20 * time.Millisecond):
	}

	fm.FrameCommittedNewDocumentNavigation(f.ID(), "http://example.com", "", "doc-1", false)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("barrier never resolved after the tracked navigation committed")
	}
}

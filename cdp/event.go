package cdp

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
)

// Event is a decoded CDP event, tagged with the session and frame it was
// scoped to (if any) so subscribers can filter without re-parsing params.
type Event struct {
	Name      cdproto.MethodType
	Data      interface{}
	sessionID target.SessionID
	frameID   cdp.FrameID
}

type subscription struct {
	sessionID target.SessionID
	frameID   cdp.FrameID
	ch        chan *Event
}

type eventWatcher struct {
	ctx context.Context

	subsMu sync.RWMutex
	subs   map[cdproto.MethodType][]*subscription
}

func newEventWatcher(ctx context.Context) *eventWatcher {
	return &eventWatcher{
		ctx:  ctx,
		subs: make(map[cdproto.MethodType][]*subscription),
	}
}

// subscribe returns a channel fed with events matching any of the given
// method names. If sessionID is non-empty, only events scoped to that
// session match; same for frameID. The returned func unsubscribes and
// closes the channel.
func (w *eventWatcher) subscribe(
	sessionID, frameID string, events ...cdproto.MethodType,
) (<-chan *Event, func()) {
	sub := &subscription{
		sessionID: target.SessionID(sessionID),
		frameID:   cdp.FrameID(frameID),
		ch:        make(chan *Event, 64),
	}

	w.subsMu.Lock()
	for _, evt := range events {
		w.subs[evt] = append(w.subs[evt], sub)
	}
	w.subsMu.Unlock()

	cancel := func() {
		w.subsMu.Lock()
		defer w.subsMu.Unlock()
		for _, evt := range events {
			subs := w.subs[evt]
			for i, s := range subs {
				if s == sub {
					w.subs[evt] = append(subs[:i], subs[i+1:]...)
					break
				}
			}
		}
		close(sub.ch)
	}

	return sub.ch, cancel
}

// notify dispatches evt to every subscription whose session/frame filters
// match it.
func (w *eventWatcher) notify(evt *Event) {
	w.subsMu.RLock()
	subs, ok := w.subs[evt.Name]
	if !ok {
		w.subsMu.RUnlock()
		return
	}
	matched := make([]*subscription, 0, len(subs))
	for _, s := range subs {
		if s.sessionID != "" && s.sessionID != evt.sessionID {
			continue
		}
		if s.frameID != "" && s.frameID != evt.frameID {
			continue
		}
		matched = append(matched, s)
	}
	w.subsMu.RUnlock()

	for _, s := range matched {
		select {
		case s.ch <- evt:
		case <-w.ctx.Done():
			return
		default:
			// Subscriber isn't keeping up; drop rather than block the
			// single-threaded event pump.
		}
	}
}

package common

import (
	"context"
	"sync"
)

// Page-level event names, part of the public contract emitted to the
// embedder's event bus.
const (
	EventFrameAttached       string = "frameattached"
	EventFrameDetached       string = "framedetached"
	EventFrameNavigated      string = "framenavigated"
	EventPageDOMContentLoaded string = "domcontentloaded"
	EventPageLoad            string = "load"
	EventPageRequest         string = "request"
	EventPageResponse        string = "response"
	EventPageRequestFinished string = "requestfinished"
	EventPageRequestFailed   string = "requestfailed"
	EventPageConsole         string = "console"

	EventBrowserDisconnected string = "disconnected"
)

// Event as emitted by an EventEmitter.
type Event struct {
	typ  string
	data any
}

// NavigationEvent is emitted when a frame commits a navigation, either
// same-document or new-document.
type NavigationEvent struct {
	NewDocument *DocumentInfo
	URL         string
	Name        string
	Err         error
}

type queue struct {
	writeMutex sync.Mutex
	write      []Event
	readMutex  sync.Mutex
	read       []Event
}

type eventHandler struct {
	ctx   context.Context
	ch    chan Event
	queue *queue
}

// EventEmitter that all event emitters need to implement.
type EventEmitter interface {
	emit(event string, data any)
	on(ctx context.Context, events []string, ch chan Event)
	onAll(ctx context.Context, ch chan Event)
}

// syncFunc functions are passed through the syncCh for synchronously
// handling eventHandler requests.
type syncFunc func() (done chan struct{})

// BaseEventEmitter emits events to registered handlers. All access to its
// internal state is funneled through a single goroutine (syncAll) so the
// coordination core's single-threaded scheduling model holds even though
// emit/on/onAll may be called from multiple goroutines (browser transport
// callbacks, caller-facing API calls).
type BaseEventEmitter struct {
	handlers    map[string][]*eventHandler
	handlersAll []*eventHandler

	queues map[chan Event]*queue

	syncCh chan syncFunc
	ctx    context.Context
}

// NewBaseEventEmitter creates a new instance of a base event emitter.
func NewBaseEventEmitter(ctx context.Context) BaseEventEmitter {
	bem := BaseEventEmitter{
		handlers: make(map[string][]*eventHandler),
		syncCh:   make(chan syncFunc),
		ctx:      ctx,
		queues:   make(map[chan Event]*queue),
	}
	go bem.syncAll(ctx)
	return bem
}

// syncAll receives work requests from BaseEventEmitter methods and
// processes them one at a time for synchronization. It returns when the
// BaseEventEmitter context is done.
func (e *BaseEventEmitter) syncAll(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-e.syncCh:
			done := fn()
			done <- struct{}{}
		}
	}
}

// sync is a helper for synchronized access to the BaseEventEmitter.
func (e *BaseEventEmitter) sync(fn func()) {
	done := make(chan struct{})
	select {
	case <-e.ctx.Done():
		return
	case e.syncCh <- func() chan struct{} {
		fn()
		return done
	}:
	}
	<-done
}

func (e *BaseEventEmitter) emit(event string, data any) {
	emitEvent := func(eh *eventHandler) {
		eh.queue.readMutex.Lock()
		defer eh.queue.readMutex.Unlock()

		if len(eh.queue.read) == 0 {
			eh.queue.writeMutex.Lock()
			eh.queue.read, eh.queue.write = eh.queue.write, eh.queue.read
			eh.queue.writeMutex.Unlock()
		}

		select {
		case eh.ch <- eh.queue.read[0]:
			eh.queue.read = eh.queue.read[1:]
		case <-eh.ctx.Done():
		}
	}
	emitTo := func(handlers []*eventHandler) (updated []*eventHandler) {
		for i := 0; i < len(handlers); {
			handler := handlers[i]
			select {
			case <-handler.ctx.Done():
				handlers = append(handlers[:i], handlers[i+1:]...)
				continue
			default:
				handler.queue.writeMutex.Lock()
				handler.queue.write = append(handler.queue.write, Event{typ: event, data: data})
				handler.queue.writeMutex.Unlock()

				go emitEvent(handler)
				i++
			}
		}
		return handlers
	}
	e.sync(func() {
		e.handlers[event] = emitTo(e.handlers[event])
		e.handlersAll = emitTo(e.handlersAll)
	})
}

// on registers a handler for specific events.
func (e *BaseEventEmitter) on(ctx context.Context, events []string, ch chan Event) {
	e.sync(func() {
		q, ok := e.queues[ch]
		if !ok {
			q = &queue{}
			e.queues[ch] = q
		}
		for _, event := range events {
			e.handlers[event] = append(e.handlers[event], &eventHandler{ctx: ctx, ch: ch, queue: q})
		}
	})
}

// onAll registers a handler for all events.
func (e *BaseEventEmitter) onAll(ctx context.Context, ch chan Event) {
	e.sync(func() {
		q, ok := e.queues[ch]
		if !ok {
			q = &queue{}
			e.queues[ch] = q
		}
		e.handlersAll = append(e.handlersAll, &eventHandler{ctx: ctx, ch: ch, queue: q})
	})
}

// On registers ch to be fed with each Event matching the given events,
// exported for callers outside the package
// (Page, BrowserContext, and their JS-facing wrappers).
func (e *BaseEventEmitter) On(ctx context.Context, events []string, ch chan Event) {
	e.on(ctx, events, ch)
}

// OnAll registers a handler for every event this emitter ever emits.
func (e *BaseEventEmitter) OnAll(ctx context.Context, ch chan Event) {
	e.onAll(ctx, ch)
}

// Emit publishes event with the given payload to every matching handler.
func (e *BaseEventEmitter) Emit(event string, data any) {
	e.emit(event, data)
}

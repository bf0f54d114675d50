package common

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/browsercore/xk6-frame/log"
)

// FrameManager owns a page's frame tree and is the single point through
// which every browser-reported frame/navigation/network event is fed into
// the coordination core (§4.5). It also hosts the active Signal Barriers,
// the console-tag-handler table used by setContent's back-channel, and the
// selector engine every Frame delegates resolution to.
type FrameManager struct {
	page     *Page
	delegate PageDelegate
	logger   *log.Logger

	selectorEngine SelectorEngine

	mu          sync.RWMutex
	frames      map[string]*Frame
	mainFrame   *Frame
	barriersMu  sync.Mutex
	barriers    map[*signalBarrier]struct{}

	consoleMu       sync.Mutex
	consoleHandlers map[string]func()
	consoleListeners map[int]func(msgType, text string)
	nextListenerID  int

	consoleTagCounter int64
}

// NewFrameManager returns a FrameManager for page, resolving selectors via
// engine and turning caller intent into CDP calls via delegate.
func NewFrameManager(page *Page, delegate PageDelegate, engine SelectorEngine, logger *log.Logger) *FrameManager {
	return &FrameManager{
		page:             page,
		delegate:         delegate,
		logger:           logger,
		selectorEngine:   engine,
		frames:           make(map[string]*Frame),
		barriers:         make(map[*signalBarrier]struct{}),
		consoleHandlers:  make(map[string]func()),
		consoleListeners: make(map[int]func(msgType, text string)),
	}
}

// MainFrame returns the page's current main frame.
func (m *FrameManager) MainFrame() *Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mainFrame
}

// Frame returns the frame tracked under id, if any.
func (m *FrameManager) Frame(id string) *Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frames[id]
}

func (m *FrameManager) emit(event string, data interface{}) {
	m.page.Emit(event, data)
}

// FrameAttached implements the frameAttached row of §4.5.
func (m *FrameManager) FrameAttached(id string, parentID string) {
	m.mu.Lock()
	if parentID == "" {
		if m.mainFrame != nil {
			old := m.mainFrame
			delete(m.frames, old.id)
			old.id = id
			m.mainFrame = old
			m.frames[id] = old
			m.mu.Unlock()
			return
		}
		f := newFrame(id, m.page, m, nil, m.delegate, m.logger)
		m.mainFrame = f
		m.frames[id] = f
		m.mu.Unlock()
		return
	}

	parent, ok := m.frames[parentID]
	if !ok {
		m.mu.Unlock()
		return
	}
	f := newFrame(id, m.page, m, parent, m.delegate, m.logger)
	parent.mu.Lock()
	parent.children[id] = f
	parent.mu.Unlock()
	m.frames[id] = f
	m.mu.Unlock()

	m.emit(EventFrameAttached, f)
}

// FrameRequestedNavigation implements frameRequestedNavigation: §4.5.
func (m *FrameManager) FrameRequestedNavigation(id, docID string) {
	f := m.Frame(id)
	if f == nil {
		return
	}
	f.mu.Lock()
	f.pendingDocID = docID
	f.mu.Unlock()

	m.barriersMu.Lock()
	barriers := make([]*signalBarrier, 0, len(m.barriers))
	for b := range m.barriers {
		barriers = append(barriers, b)
	}
	m.barriersMu.Unlock()
	for _, b := range barriers {
		b.addFrameNavigation(m.page.ctx, f)
	}
}

// FrameUpdatedDocumentIdForNavigation overwrites the frame's pending doc id.
func (m *FrameManager) FrameUpdatedDocumentIdForNavigation(id, docID string) {
	f := m.Frame(id)
	if f == nil {
		return
	}
	f.mu.Lock()
	f.pendingDocID = docID
	f.mu.Unlock()
}

// FrameCommittedNewDocumentNavigation implements §4.5's row of the same
// name: it drops the frame's old subtree (a new document means a new
// subtree), commits url/name/lastDocumentId, clears lifecycle state, and
// notifies every attached Frame Task.
func (m *FrameManager) FrameCommittedNewDocumentNavigation(id, url, name, docID string, initial bool) {
	f := m.Frame(id)
	if f == nil {
		return
	}

	f.mu.Lock()
	children := make([]*Frame, 0, len(f.children))
	for _, c := range f.children {
		children = append(children, c)
	}
	f.children = make(map[string]*Frame)
	f.url = url
	f.name = name
	f.lastDocumentID = docID
	f.pendingDocID = ""
	f.mu.Unlock()

	for _, c := range children {
		m.removeFrameSubtree(c, NewFrameDetachedError(c.URL()))
	}

	for _, t := range f.tasksSnapshot() {
		t.onNewDocument(docID, url, nil)
	}
	f.clearLifecycle()

	if !initial {
		m.emit(EventFrameNavigated, f)
	}
}

// FrameCommittedSameDocumentNavigation implements the same-document row.
func (m *FrameManager) FrameCommittedSameDocumentNavigation(id, url string) {
	f := m.Frame(id)
	if f == nil {
		return
	}
	f.mu.Lock()
	f.url = url
	f.mu.Unlock()

	for _, t := range f.tasksSnapshot() {
		t.onSameDocument(url)
	}
	m.emit(EventFrameNavigated, f)
}

// FrameDetached implements frameDetached: the whole subtree rooted at id
// is recursively removed.
func (m *FrameManager) FrameDetached(id string) {
	f := m.Frame(id)
	if f == nil {
		return
	}
	m.removeFrameSubtree(f, NewFrameDetachedError(f.URL()))
}

func (m *FrameManager) removeFrameSubtree(f *Frame, err error) {
	f.mu.Lock()
	children := make([]*Frame, 0, len(f.children))
	for _, c := range f.children {
		children = append(children, c)
	}
	parent := f.parent
	f.parent = nil
	f.mu.Unlock()

	for _, c := range children {
		m.removeFrameSubtree(c, err)
	}

	f.detach(err)

	if parent != nil {
		parent.mu.Lock()
		delete(parent.children, f.id)
		parent.mu.Unlock()
	}

	m.mu.Lock()
	delete(m.frames, f.id)
	m.mu.Unlock()

	m.emit(EventFrameDetached, f)
}

// FrameStoppedLoading fires both domcontentloaded and load (no-ops if
// already fired).
func (m *FrameManager) FrameStoppedLoading(id string) {
	f := m.Frame(id)
	if f == nil {
		return
	}
	m.FrameLifecycleEvent(id, "domcontentloaded")
	m.FrameLifecycleEvent(id, "load")
}

// FrameLifecycleEvent implements the frameLifecycleEvent row, including
// the page-level Load/DOMContentLoaded emission for the main frame.
func (m *FrameManager) FrameLifecycleEvent(id, event string) {
	f := m.Frame(id)
	if f == nil {
		return
	}
	f.fireLifecycleEvent(event)

	if f == m.MainFrame() {
		switch event {
		case "load":
			m.emit(EventPageLoad, nil)
		case "domcontentloaded":
			m.emit(EventPageDOMContentLoaded, nil)
		}
	}
}

// RequestStarted implements requestStarted: bookkeeping plus the page
// Request event. Favicon requests return early: they get no bookkeeping
// and no Request event.
func (m *FrameManager) RequestStarted(req *NetworkRequest) {
	if req.IsFavicon {
		return
	}
	if f := m.Frame(req.frameID()); f != nil {
		f.onRequestStarted(req)
	}
	m.emit(EventPageRequest, req)
}

// RequestReceivedResponse implements requestReceivedResponse.
func (m *FrameManager) RequestReceivedResponse(resp *NetworkResponse, isFavicon bool) {
	if isFavicon {
		return
	}
	m.emit(EventPageResponse, resp)
}

// RequestFinished implements requestFinished.
func (m *FrameManager) RequestFinished(req *NetworkRequest) {
	if f := m.Frame(req.frameID()); f != nil {
		f.onRequestSettled(req.RequestID)
	}
	if req.IsFavicon {
		return
	}
	m.emit(EventPageRequestFinished, req)
}

// RequestFailed implements requestFailed: it additionally resolves any
// Frame Task waiting on req's document id as a failed navigation when the
// failed request carried the frame's pending document.
func (m *FrameManager) RequestFailed(req *NetworkRequest, errorText string, canceled bool) {
	f := m.Frame(req.frameID())
	if f != nil {
		f.onRequestSettled(req.RequestID)
	}
	if req.IsFavicon {
		return
	}
	m.emit(EventPageRequestFailed, req)

	if f == nil {
		return
	}
	f.mu.Lock()
	pending := f.pendingDocID
	f.mu.Unlock()
	if pending != "" && pending == req.DocumentID {
		f.mu.Lock()
		f.pendingDocID = ""
		f.mu.Unlock()
		navErr := NewNavigationError(errorText, canceled)
		for _, t := range f.tasksSnapshot() {
			t.onNewDocument(req.DocumentID, "", navErr)
		}
	}
}

// ProvisionalLoadFailed implements provisionalLoadFailed.
func (m *FrameManager) ProvisionalLoadFailed(frameID, docID, msg string) {
	f := m.Frame(frameID)
	if f == nil {
		return
	}
	navErr := NewNavigationError(msg, false)
	for _, t := range f.tasksSnapshot() {
		t.onNewDocument(docID, "", navErr)
	}
}

// registerBarrier/unregisterBarrier keep the active Signal Barrier set
// FrameRequestedNavigation notifies on every request.
func (m *FrameManager) registerBarrier(b *signalBarrier) {
	m.barriersMu.Lock()
	defer m.barriersMu.Unlock()
	m.barriers[b] = struct{}{}
}

func (m *FrameManager) unregisterBarrier(b *signalBarrier) {
	m.barriersMu.Lock()
	defer m.barriersMu.Unlock()
	delete(m.barriers, b)
}

// nextConsoleTag mints a unique tag for setContent's console back-channel,
// in the wire format documented by spec.md §6.
func (m *FrameManager) nextConsoleTag(frameID string) string {
	n := atomic.AddInt64(&m.consoleTagCounter, 1)
	return fmt.Sprintf("--playwright--set--content--%s--%d--", frameID, n)
}

// registerConsoleTagHandler registers a one-shot handler for tag,
// consumed by the next matching console.debug message.
func (m *FrameManager) registerConsoleTagHandler(tag string, handler func()) {
	m.consoleMu.Lock()
	defer m.consoleMu.Unlock()
	m.consoleHandlers[tag] = handler
}

// onConsoleMessage subscribes fn to every console message the page
// reports and returns a func to unsubscribe, used by addScriptTag's CSP
// race.
func (m *FrameManager) onConsoleMessage(fn func(msgType, text string)) func() {
	m.consoleMu.Lock()
	id := m.nextListenerID
	m.nextListenerID++
	m.consoleListeners[id] = fn
	m.consoleMu.Unlock()
	return func() {
		m.consoleMu.Lock()
		delete(m.consoleListeners, id)
		m.consoleMu.Unlock()
	}
}

// interceptConsoleMessage implements §4.5's console tag routing: iff msg
// is a debug message whose text matches a registered one-shot tag, the
// tag is consumed and its handler invoked, and the caller should suppress
// normal emission. Every other console message is fanned out to
// onConsoleMessage listeners and emitted as a page Console event.
func (m *FrameManager) interceptConsoleMessage(ctx context.Context, msgType, text string) (suppressed bool) {
	m.consoleMu.Lock()
	handler, ok := m.consoleHandlers[text]
	ok = ok && msgType == "debug"
	if ok {
		delete(m.consoleHandlers, text)
	}
	listeners := make([]func(string, string), 0, len(m.consoleListeners))
	for _, l := range m.consoleListeners {
		listeners = append(listeners, l)
	}
	m.consoleMu.Unlock()

	if ok && msgType == "debug" {
		handler()
		return true
	}

	for _, l := range listeners {
		l(msgType, text)
	}
	m.emit(EventPageConsole, text)
	return false
}

// frameID is a bookkeeping accessor used by request dispatch to find the
// owning frame; the concrete request/response transport mapping lives
// outside the coordination core (§1 non-goal).
func (r *NetworkRequest) frameID() string {
	return r.frameIDValue
}

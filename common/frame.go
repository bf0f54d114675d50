package common

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/browsercore/xk6-frame/log"

	"github.com/spf13/afero"
)

// networkIdleTimeout is the quiet period (§4.4.3) a frame must see with no
// in-flight requests before the networkidle lifecycle event fires.
const networkIdleTimeout = 500 * time.Millisecond

// contextSlot holds one of a frame's two worlds' execution context,
// following the context slot protocol (§4.4.2): readers block on
// contextPromise until a context is installed, and every RerunnableTask
// registered in this world is rerun whenever a fresh context replaces the
// slot's contents.
type contextSlot struct {
	mu              sync.Mutex
	current         ExecutionContext
	contextPromise  *waiter
	rerunnableTasks map[*rerunnableTask]struct{}
}

func newContextSlot() *contextSlot {
	return &contextSlot{contextPromise: newWaiter(), rerunnableTasks: make(map[*rerunnableTask]struct{})}
}

// Frame is one node of a page's frame tree. It owns the two context slots
// (main/utility), the set of Frame Tasks and Rerunnable Tasks currently
// observing it, lifecycle and in-flight-request bookkeeping, and the
// network-idle timer (§4.4.3).
type Frame struct {
	id       string
	page     *Page
	manager  *FrameManager
	delegate PageDelegate
	logger   *log.Logger

	mu             sync.RWMutex
	parent         *Frame
	children       map[string]*Frame
	url            string
	name           string
	lastDocumentID string
	pendingDocID   string
	detached       bool

	firedLifecycleEvents map[string]struct{}
	inflightRequests     map[string]*NetworkRequest
	networkIdleTimer     *time.Timer
	networkIdleFired     bool

	tasks map[*frameTask]struct{}

	contextsMu sync.Mutex
	contexts   map[World]*contextSlot

	detachedOnce sync.Once
	detachedCh_  chan struct{}
	detachErr    error
}

// newFrame creates a Frame with id belonging to page, parented under
// parent (nil for a main frame).
func newFrame(id string, page *Page, manager *FrameManager, parent *Frame, delegate PageDelegate, logger *log.Logger) *Frame {
	f := &Frame{
		id:                   id,
		page:                 page,
		manager:              manager,
		delegate:             delegate,
		logger:               logger,
		parent:               parent,
		children:             make(map[string]*Frame),
		firedLifecycleEvents: make(map[string]struct{}),
		inflightRequests:     make(map[string]*NetworkRequest),
		tasks:                make(map[*frameTask]struct{}),
		contexts:             map[World]*contextSlot{MainWorld: newContextSlot(), UtilityWorld: newContextSlot()},
		detachedCh_:          make(chan struct{}),
	}
	return f
}

// ID returns the frame's transport-assigned id.
func (f *Frame) ID() string {
	return f.id
}

// URL returns the frame's last-committed URL.
func (f *Frame) URL() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.url
}

// ParentFrame returns the frame embedding this one, or nil for a main frame.
func (f *Frame) ParentFrame() *Frame {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.parent
}

// ChildFrames returns a snapshot of this frame's current children.
func (f *Frame) ChildFrames() []*Frame {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*Frame, 0, len(f.children))
	for _, c := range f.children {
		out = append(out, c)
	}
	return out
}

// detachedCh is closed once the frame detaches; every caller-facing
// operation and the Signal Barrier race it as an abort source.
func (f *Frame) detachedCh() <-chan struct{} {
	return f.detachedCh_
}

// Done implements Abortable.
func (f *Frame) Done() <-chan struct{} { return f.detachedCh_ }

// Err implements Abortable.
func (f *Frame) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.detachErr
}

// addTask registers t as observing this frame; removed on detach or when
// the task's owning operation completes.
func (f *Frame) addTask(t *frameTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t] = struct{}{}
}

// removeTask unregisters t.
func (f *Frame) removeTask(t *frameTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, t)
}

func (f *Frame) tasksSnapshot() []*frameTask {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*frameTask, 0, len(f.tasks))
	for t := range f.tasks {
		out = append(out, t)
	}
	return out
}

// hasLifecycleEventInSubtree reports whether event has fired on this frame
// and recursively on every descendant — the predicate waitForLifecycle and
// frameLifecycleEvent's ancestor notification recompute on every call.
func (f *Frame) hasLifecycleEventInSubtree(event string) bool {
	f.mu.RLock()
	_, fired := f.firedLifecycleEvents[event]
	children := make([]*Frame, 0, len(f.children))
	for _, c := range f.children {
		children = append(children, c)
	}
	f.mu.RUnlock()

	if !fired {
		return false
	}
	for _, c := range children {
		if !c.hasLifecycleEventInSubtree(event) {
			return false
		}
	}
	return true
}

// fireLifecycleEvent marks event as fired on this frame (idempotent) and
// notifies this frame's own Frame Tasks plus every ancestor's, per
// frameLifecycleEvent's "walk from this frame up to the root" rule.
func (f *Frame) fireLifecycleEvent(event string) {
	f.mu.Lock()
	if _, ok := f.firedLifecycleEvents[event]; ok {
		f.mu.Unlock()
		return
	}
	f.firedLifecycleEvents[event] = struct{}{}
	f.mu.Unlock()

	for cur := f; cur != nil; cur = cur.ParentFrame() {
		for _, t := range cur.tasksSnapshot() {
			t.onLifecycle(event)
		}
	}
}

// clearLifecycle resets fired-lifecycle bookkeeping and prunes
// inflightRequests down to the committed document, per the Frame
// Manager's clearFrameLifecycle (§4.5), invoked on new-document commit and
// on setContent.
func (f *Frame) clearLifecycle() {
	f.mu.Lock()
	f.firedLifecycleEvents = make(map[string]struct{})
	lastDoc := f.lastDocumentID
	kept := make(map[string]*NetworkRequest, len(f.inflightRequests))
	for id, req := range f.inflightRequests {
		if req.DocumentID == lastDoc {
			kept[id] = req
		}
	}
	f.inflightRequests = kept
	empty := len(kept) == 0
	f.mu.Unlock()

	f.stopNetworkIdleTimer()
	if empty {
		f.startNetworkIdleTimer()
	}
}

// onRequestStarted records req as in flight and notifies attached Frame
// Tasks; stops the network-idle timer if the set just transitioned 0→1.
func (f *Frame) onRequestStarted(req *NetworkRequest) {
	f.mu.Lock()
	wasEmpty := len(f.inflightRequests) == 0
	f.inflightRequests[req.RequestID] = req
	f.mu.Unlock()

	if wasEmpty {
		f.stopNetworkIdleTimer()
	}
	for _, t := range f.tasksSnapshot() {
		t.onRequest(req)
	}
}

// onRequestSettled removes req from the in-flight set, starting the
// network-idle timer if it drops to zero. Shared by requestFinished and
// requestFailed bookkeeping.
func (f *Frame) onRequestSettled(requestID string) {
	f.mu.Lock()
	delete(f.inflightRequests, requestID)
	empty := len(f.inflightRequests) == 0
	f.mu.Unlock()

	if empty {
		f.startNetworkIdleTimer()
	}
}

func (f *Frame) startNetworkIdleTimer() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.networkIdleTimer != nil || f.networkIdleFired {
		return
	}
	f.networkIdleTimer = time.AfterFunc(networkIdleTimeout, func() {
		f.mu.Lock()
		f.networkIdleFired = true
		f.networkIdleTimer = nil
		f.mu.Unlock()
		f.fireLifecycleEvent("networkidle")
	})
}

func (f *Frame) stopNetworkIdleTimer() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.networkIdleTimer != nil {
		f.networkIdleTimer.Stop()
		f.networkIdleTimer = nil
	}
	f.networkIdleFired = false
}

// context returns the current execution context for world, failing if the
// frame has detached (§4.4.2).
func (f *Frame) context(ctx context.Context, world World) (ExecutionContext, error) {
	f.mu.RLock()
	detached := f.detached
	url := f.url
	f.mu.RUnlock()
	if detached {
		return nil, fmt.Errorf("execution context is not available in detached frame %q", url)
	}

	slot := f.contextSlot(world)
	slot.mu.Lock()
	promise := slot.contextPromise
	slot.mu.Unlock()

	v, err := promise.wait(ctx)
	if err != nil {
		return nil, err
	}
	return v.(ExecutionContext), nil
}

func (f *Frame) contextSlot(world World) *contextSlot {
	f.contextsMu.Lock()
	defer f.contextsMu.Unlock()
	return f.contexts[world]
}

// contextCreated installs execCtx into world's slot, tearing down any
// context already occupying it first (a racey duplicate creation on
// reconnected sessions).
func (f *Frame) contextCreated(world World, execCtx ExecutionContext) {
	slot := f.contextSlot(world)
	slot.mu.Lock()
	hadOne := slot.current != nil
	slot.mu.Unlock()
	if hadOne {
		f.setContext(world, nil)
	}
	f.setContext(world, execCtx)
}

// setContext implements §4.4.2's _setContext: installing a context
// fulfills the slot's promise and reruns every RerunnableTask registered
// in that world; clearing it replaces the promise with a fresh unresolved
// one.
func (f *Frame) setContext(world World, execCtx ExecutionContext) {
	slot := f.contextSlot(world)

	slot.mu.Lock()
	if execCtx != nil {
		slot.current = execCtx
		promise := slot.contextPromise
		tasks := make([]*rerunnableTask, 0, len(slot.rerunnableTasks))
		for t := range slot.rerunnableTasks {
			tasks = append(tasks, t)
		}
		slot.mu.Unlock()

		promise.resolve(execCtx, nil)
		for _, t := range tasks {
			go t.rerun(execCtx)
		}
		return
	}

	slot.current = nil
	slot.contextPromise = newWaiter()
	slot.mu.Unlock()
}

// contextDestroyed implements _contextDestroyed: clears whichever world
// slot currently holds execCtx.
func (f *Frame) contextDestroyed(execCtx ExecutionContext) {
	for _, world := range []World{MainWorld, UtilityWorld} {
		slot := f.contextSlot(world)
		slot.mu.Lock()
		match := slot.current == execCtx
		slot.mu.Unlock()
		if match {
			f.setContext(world, nil)
		}
	}
}

// registerRerunnableTask adds t to world's task set and returns the slot's
// current context, if one is already installed, so the caller can start
// the task's first run immediately rather than waiting for the next
// _setContext broadcast.
func (f *Frame) registerRerunnableTask(world World, t *rerunnableTask) ExecutionContext {
	slot := f.contextSlot(world)
	slot.mu.Lock()
	defer slot.mu.Unlock()
	slot.rerunnableTasks[t] = struct{}{}
	return slot.current
}

func (f *Frame) unregisterRerunnableTask(world World, t *rerunnableTask) {
	slot := f.contextSlot(world)
	slot.mu.Lock()
	defer slot.mu.Unlock()
	delete(slot.rerunnableTasks, t)
}

// detach tears the frame down: every Frame Task and RerunnableTask
// attached to it is rejected with err, its context slots are cleared, and
// detachedCh is closed so in-flight operations racing it abort.
func (f *Frame) detach(err error) {
	f.detachedOnce.Do(func() {
		f.mu.Lock()
		f.detached = true
		f.detachErr = err
		tasks := make([]*frameTask, 0, len(f.tasks))
		for t := range f.tasks {
			tasks = append(tasks, t)
		}
		f.mu.Unlock()

		for _, t := range tasks {
			t.terminate(err)
		}
		for _, world := range []World{MainWorld, UtilityWorld} {
			slot := f.contextSlot(world)
			slot.mu.Lock()
			rts := make([]*rerunnableTask, 0, len(slot.rerunnableTasks))
			for t := range slot.rerunnableTasks {
				rts = append(rts, t)
			}
			slot.mu.Unlock()
			for _, t := range rts {
				t.terminate(err)
			}
		}
		f.stopNetworkIdleTimer()
		close(f.detachedCh_)
	})
}

// operationTimeout is the per-operation timeout every caller-facing method
// below is run under: the caller-supplied value if positive, else the
// page's default timeout.
func (f *Frame) operationTimeout(caller time.Duration) time.Duration {
	if caller > 0 {
		return caller
	}
	return f.page.defaultTimeoutValue()
}

func (f *Frame) abortables() []Abortable {
	return []Abortable{f, f.page}
}

// GotoOptions configures Goto.
type GotoOptions struct {
	WaitUntil string        `js:"waitUntil"`
	Referer   string        `js:"referer"`
	Timeout   time.Duration `js:"timeout"`
}

// Goto navigates the frame to url per §4.4's goto row: it reconciles any
// caller-supplied referer against the page's extraHTTPHeaders, races the
// delegate's navigation outcome against a pre-registered same-document
// wait, and finally waits for the requested lifecycle event.
func (f *Frame) Goto(ctx context.Context, url string, opts GotoOptions) (*NetworkResponse, error) {
	if pageReferer, ok := f.page.extraHeaderReferer(); ok && opts.Referer != "" && pageReferer != opts.Referer {
		return nil, NewInvalidArgumentError("conflicting referer: extraHTTPHeaders['referer'] and the referer option disagree")
	}
	waitUntil, err := normalizeLifecycleEvent(opts.WaitUntil)
	if err != nil {
		return nil, err
	}
	if waitUntil == "" {
		waitUntil = "load"
	}

	controller := NewProgressController(f.logger)
	v, err := controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			task := newFrameTask(f)
			progress.CleanupWhenAborted(func() { f.removeTask(task) })

			sameDoc := task.waitForSameDocumentNavigation(nil)

			referer := opts.Referer
			if referer == "" {
				referer, _ = f.page.extraHeaderReferer()
			}
			newDocID, err := f.delegate.NavigateFrame(progress.Context(), f, url, referer)
			if err != nil {
				return nil, err
			}

			var req *NetworkRequest
			if newDocID != "" {
				v, err := task.waitForSpecificDocument(newDocID).wait(progress.Context())
				if err != nil {
					return nil, err
				}
				req, _ = v.(*NetworkRequest)
			} else if _, err := sameDoc.wait(progress.Context()); err != nil {
				return nil, err
			}

			if _, err := task.waitForLifecycle(waitUntil).wait(progress.Context()); err != nil {
				return nil, err
			}
			return req.finalResponse(), nil
		})
	if err != nil {
		return nil, err
	}
	resp, _ := v.(*NetworkResponse)
	return resp, nil
}

// WaitForNavigationOptions configures WaitForNavigation.
type WaitForNavigationOptions struct {
	URLMatch  interface{}   `js:"url"`
	WaitUntil string        `js:"waitUntil"`
	Timeout   time.Duration `js:"timeout"`
}

// WaitForNavigation races a new-document outcome against a same-document
// one, whichever settles first, then awaits the requested lifecycle event.
func (f *Frame) WaitForNavigation(ctx context.Context, opts WaitForNavigationOptions) (*NetworkResponse, error) {
	waitUntil, err := normalizeLifecycleEvent(opts.WaitUntil)
	if err != nil {
		return nil, err
	}
	if waitUntil == "" {
		waitUntil = "load"
	}
	matcher := NewURLMatcher(opts.URLMatch)

	controller := NewProgressController(f.logger)
	v, err := controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			task := newFrameTask(f)
			progress.CleanupWhenAborted(func() { f.removeTask(task) })

			newDoc := task.waitForNewDocument(matcher)
			sameDoc := task.waitForSameDocumentNavigation(matcher)

			var docID interface{}
			select {
			case <-newDoc.done():
				docID = newDoc.value
				if newDoc.err != nil {
					return nil, newDoc.err
				}
			case <-sameDoc.done():
				if sameDoc.err != nil {
					return nil, sameDoc.err
				}
			case <-progress.Context().Done():
				return nil, progress.Context().Err()
			}

			if _, err := task.waitForLifecycle(waitUntil).wait(progress.Context()); err != nil {
				return nil, err
			}

			if id, ok := docID.(string); ok {
				task.mu.Lock()
				req := task.requestsByDocID[id]
				task.mu.Unlock()
				return req.finalResponse(), nil
			}
			return nil, nil
		})
	if err != nil {
		return nil, err
	}
	resp, _ := v.(*NetworkResponse)
	return resp, nil
}

// WaitForLoadState waits for state to have fired across this frame's
// subtree.
func (f *Frame) WaitForLoadState(ctx context.Context, state string, timeout time.Duration) error {
	state, err := normalizeLifecycleEvent(state)
	if err != nil {
		return err
	}
	if state == "" {
		state = "load"
	}
	controller := NewProgressController(f.logger)
	_, err = controller.RunAbortableTask(ctx, f.operationTimeout(timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			task := newFrameTask(f)
			progress.CleanupWhenAborted(func() { f.removeTask(task) })
			return task.waitForLifecycle(state).wait(progress.Context())
		})
	return err
}

// Evaluate runs fn(arg) in the frame's main world and returns its value.
func (f *Frame) Evaluate(ctx context.Context, fn string, arg interface{}) (interface{}, error) {
	execCtx, err := f.context(ctx, MainWorld)
	if err != nil {
		return nil, err
	}
	return execCtx.EvaluateInternal(ctx, fn, arg)
}

// EvaluateHandle runs fn(arg) in the frame's main world and returns a
// handle to its result.
func (f *Frame) EvaluateHandle(ctx context.Context, fn string, arg interface{}) (JSHandle, error) {
	execCtx, err := f.context(ctx, MainWorld)
	if err != nil {
		return nil, err
	}
	return execCtx.EvaluateHandleInternal(ctx, fn, arg)
}

// Content serializes the frame's current document (doctype + documentElement
// outerHTML), evaluated in the utility world.
func (f *Frame) Content(ctx context.Context) (string, error) {
	execCtx, err := f.context(ctx, UtilityWorld)
	if err != nil {
		return "", err
	}
	v, err := execCtx.EvaluateInternal(ctx, `() => {
		let doctype = '';
		if (document.doctype) doctype = new XMLSerializer().serializeToString(document.doctype);
		return doctype + document.documentElement.outerHTML;
	}`, nil)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// SetContentOptions configures SetContent.
type SetContentOptions struct {
	WaitUntil string        `js:"waitUntil"`
	Timeout   time.Duration `js:"timeout"`
}

// SetContent replaces the frame's document with html, using the
// console-tag back-channel (§4.5 "Console tag routing") to learn when the
// browser has flushed the write before awaiting the requested lifecycle
// event.
func (f *Frame) SetContent(ctx context.Context, html string, opts SetContentOptions) error {
	waitUntil, err := normalizeLifecycleEvent(opts.WaitUntil)
	if err != nil {
		return err
	}
	if waitUntil == "" {
		waitUntil = "load"
	}

	controller := NewProgressController(f.logger)
	_, err = controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			tag := f.manager.nextConsoleTag(f.ID())

			lifecycleCh := make(chan error, 1)
			f.manager.registerConsoleTagHandler(tag, func() {
				f.clearLifecycle()
				task := newFrameTask(f)
				defer f.removeTask(task)
				_, err := task.waitForLifecycle(waitUntil).wait(progress.Context())
				lifecycleCh <- err
			})

			execCtx, err := f.context(progress.Context(), UtilityWorld)
			if err != nil {
				return nil, err
			}
			_, err = execCtx.EvaluateInternal(progress.Context(), `(html, tag) => {
				window.stop();
				document.open();
				console.debug(tag);
				document.write(html);
				document.close();
			}`, []interface{}{html, tag})
			if err != nil {
				return nil, err
			}

			select {
			case err := <-lifecycleCh:
				return nil, err
			case <-progress.Context().Done():
				return nil, progress.Context().Err()
			}
		})
	return err
}

// AddScriptTagOptions configures AddScriptTag.
type AddScriptTagOptions struct {
	URL     string        `js:"url"`
	Path    string        `js:"path"`
	Content string        `js:"content"`
	Type    string        `js:"type"`
	Timeout time.Duration `js:"timeout"`
}

// AddScriptTag appends a <script> element built from exactly one of
// opts.URL/opts.Path/opts.Content, racing it against a CSP console-message
// error per §4.4's addScriptTag row. When Path is given, its contents are
// read from disk as UTF-8 and a //# sourceURL=... comment naming the path
// (newlines stripped) is appended, so the script shows up under its own
// name in the page's devtools.
func (f *Frame) AddScriptTag(ctx context.Context, opts AddScriptTagOptions) error {
	if err := resolveTagContent(&opts.URL, &opts.Path, &opts.Content, "//# sourceURL=%s"); err != nil {
		return err
	}
	controller := NewProgressController(f.logger)
	_, err := controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			execCtx, err := f.context(progress.Context(), MainWorld)
			if err != nil {
				return nil, err
			}

			cspCh := make(chan error, 1)
			if f.delegate.CSPErrorsAsynchronousForInlineScripts() && opts.Content != "" {
				unsubscribe := f.manager.onConsoleMessage(func(msgType, text string) {
					if msgType == "error" && containsCSPHint(text) {
						select {
						case cspCh <- NewCSPError(text):
						default:
						}
					}
				})
				progress.CleanupWhenAborted(unsubscribe)
			}

			resultCh := make(chan error, 1)
			go func() {
				_, err := execCtx.EvaluateInternal(progress.Context(), `({url, content, type}) => new Promise((resolve, reject) => {
					const script = document.createElement('script');
					if (url) { script.src = url; script.onload = resolve; script.onerror = reject; }
					if (content) { script.textContent = content; }
					if (type) { script.type = type; }
					document.head.appendChild(script);
					if (content) resolve();
				})`, map[string]interface{}{"url": opts.URL, "content": opts.Content, "type": opts.Type})
				resultCh <- err
			}()

			select {
			case err := <-resultCh:
				return nil, err
			case err := <-cspCh:
				return nil, err
			case <-progress.Context().Done():
				return nil, progress.Context().Err()
			}
		})
	return err
}

// AddStyleTagOptions configures AddStyleTag.
type AddStyleTagOptions struct {
	URL     string        `js:"url"`
	Path    string        `js:"path"`
	Content string        `js:"content"`
	Timeout time.Duration `js:"timeout"`
}

// AddStyleTag appends a <link>/<style> element analogous to AddScriptTag,
// using /*# sourceURL=...*/ for the Path case.
func (f *Frame) AddStyleTag(ctx context.Context, opts AddStyleTagOptions) error {
	if err := resolveTagContent(&opts.URL, &opts.Path, &opts.Content, "/*# sourceURL=%s */"); err != nil {
		return err
	}
	controller := NewProgressController(f.logger)
	_, err := controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			execCtx, err := f.context(progress.Context(), MainWorld)
			if err != nil {
				return nil, err
			}
			_, err = execCtx.EvaluateInternal(progress.Context(), `({url, content}) => new Promise((resolve, reject) => {
				if (url) {
					const link = document.createElement('link');
					link.rel = 'stylesheet';
					link.href = url;
					link.onload = resolve;
					link.onerror = reject;
					document.head.appendChild(link);
				} else {
					const style = document.createElement('style');
					style.textContent = content;
					document.head.appendChild(style);
					resolve();
				}
			})`, map[string]interface{}{"url": opts.URL, "content": opts.Content})
			return nil, err
		})
	return err
}

func containsCSPHint(text string) bool {
	return strings.Contains(text, "Content Security Policy")
}

// resolveTagContent implements the exactly-one-of-url/path/content check
// shared by AddScriptTag/AddStyleTag (§4.4/§6/§7's InvalidArgumentError
// case) and, when path is given, resolves it into content: reads the file
// from disk as UTF-8 and appends a sourceURL annotation built from
// sourceURLFormat with any newlines stripped from path.
func resolveTagContent(url, path, content *string, sourceURLFormat string) error {
	provided := 0
	for _, v := range []string{*url, *path, *content} {
		if v != "" {
			provided++
		}
	}
	if provided != 1 {
		return NewInvalidArgumentError("exactly one of url, path, or content must be provided")
	}
	if *path == "" {
		return nil
	}
	data, err := afero.ReadFile(afero.NewOsFs(), *path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *path, err)
	}
	strippedPath := strings.NewReplacer("\r\n", "", "\n", "").Replace(*path)
	*content = string(data) + "\n" + fmt.Sprintf(sourceURLFormat, strippedPath)
	return nil
}

// WaitForTimeout sleeps the calling coroutine for ms milliseconds, per
// §4.4's documented anti-pattern: callers reaching for a fixed sleep
// instead of a proper wait condition.
func (f *Frame) WaitForTimeout(ctx context.Context, ms int64) {
	f.page.markUsedWaitForTimeout()
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
	case <-ctx.Done():
	}
}

// FrameElement delegates to the PageDelegate to find the <iframe>/<frame>
// element embedding this frame in its parent.
func (f *Frame) FrameElement(ctx context.Context) (ElementHandle, error) {
	return f.delegate.GetFrameElement(ctx, f)
}

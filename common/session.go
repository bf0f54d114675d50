package common

import (
	"context"

	"github.com/browsercore/xk6-frame/cdp"
	"github.com/browsercore/xk6-frame/log"

	"github.com/mailru/easyjson"
)

// Session is the coordination core's handle to one CDP session: a
// (sessionID, targetID) pair plus the context-scoping helper every
// PageDelegate call threads through to route a command at the right
// target, per the client's WithSessionID convention. It also satisfies
// chromedp/cdproto's cdp.Executor directly, so callers that issue
// cdproto actions without going through a domains.* wrapper (Keyboard,
// Mouse) can pass a Session as the executor.
type Session struct {
	ctx      context.Context
	id       string
	targetID string
	client   *cdp.Client
	logger   *log.Logger
}

// NewSession returns a Session for sessionID/targetID, scoped to client.
func NewSession(ctx context.Context, sessionID, targetID string, client *cdp.Client, logger *log.Logger) *Session {
	return &Session{ctx: ctx, id: sessionID, targetID: targetID, client: client, logger: logger}
}

// Execute implements chromedp/cdproto's cdp.Executor by delegating to the
// session's client with this session's id scoped into ctx.
func (s *Session) Execute(ctx context.Context, method string, params easyjson.Marshaler, res easyjson.Unmarshaler) error {
	return s.client.Execute(cdp.WithSessionID(ctx, s.id), method, params, res)
}

// ID returns the CDP session id.
func (s *Session) ID() string { return s.id }

// TargetID returns the CDP target id this session is attached to.
func (s *Session) TargetID() string { return s.targetID }

// ExecutorContext returns ctx scoped to this session, so any cdpClient
// domain call made with it routes to this session's target.
func (s *Session) ExecutorContext(ctx context.Context) context.Context {
	return cdp.WithSessionID(ctx, s.id)
}

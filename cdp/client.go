package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/chromedp/cdproto"
	cdpext "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/browsercore/xk6-frame/cdp/domains"
	"github.com/browsercore/xk6-frame/log"
	"github.com/mailru/easyjson"
)

var _ cdpext.Executor = &Client{}

// Client manages CDP communication with the browser.
type Client struct {
	ctx    context.Context
	logger *log.Logger

	Browser domains.Browser
	Page    domains.Page
	Target  domains.Target
	Network domains.Network
	Runtime domains.Runtime
	Input   domains.Input
	DOM     domains.DOM

	conn      *connection
	msgID     int64
	recvCh    chan *cdproto.Message
	sendCh    chan *cdproto.Message
	msgSubsMu sync.RWMutex
	msgSubs   map[int64]chan *cdproto.Message
	errorCh   chan error
	done      chan struct{}

	watcher *eventWatcher
	wsURL   string
}

// NewClient returns a new Client that is unusable until a CDP connection is
// established with Connect().
func NewClient(ctx context.Context, logger *log.Logger) *Client {
	c := &Client{
		ctx:     ctx,
		logger:  logger,
		recvCh:  make(chan *cdproto.Message),
		sendCh:  make(chan *cdproto.Message, 32), // Buffered to avoid blocking in Execute
		msgSubs: make(map[int64]chan *cdproto.Message),
		errorCh: make(chan error, 1),
		done:    make(chan struct{}),
		watcher: newEventWatcher(ctx),
	}

	c.Page = domains.NewPage(c)
	c.Target = domains.NewTarget(c)
	c.Browser = domains.NewBrowser(c)
	c.Network = domains.NewNetwork(c)
	c.Runtime = domains.NewRuntime(c)
	c.Input = domains.NewInput(c)
	c.DOM = domains.NewDOM(c)

	return c
}

// Connect to the browser that exposes a CDP API at wsURL.
func (c *Client) Connect(wsURL string) (err error) {
	if c.wsURL != "" {
		return fmt.Errorf("CDP connection already established to %q", c.wsURL)
	}

	if c.conn, err = newConnection(c.ctx, wsURL, c.logger); err != nil {
		return
	}
	c.logger.Infof("cdp", "established CDP connection to %q", wsURL)
	c.wsURL = wsURL

	go c.recvLoop()
	go c.recvMsgLoop()
	go c.sendLoop()

	return nil
}

// Disconnect from the browser's CDP API.
func (c *Client) Disconnect() {
	c.conn.Close()
}

// Execute implements cdproto.Executor and performs a synchronous send and
// receive.
func (c *Client) Execute(ctx context.Context, method string, params easyjson.Marshaler, res easyjson.Unmarshaler) error {
	c.logger.Debugf("connection:Execute", "wsURL:%q method:%q", c.wsURL, method)
	id := atomic.AddInt64(&c.msgID, 1)

	// Setup event handler used to block for response to message being sent.
	recvCh := make(chan *cdproto.Message, 1)
	evCancelCtx, evCancelFn := context.WithCancel(ctx)
	msgCh := make(chan *cdproto.Message, 1)
	c.msgSubsMu.Lock()
	c.msgSubs[id] = msgCh
	c.msgSubsMu.Unlock()
	go func() {
		for {
			select {
			case <-evCancelCtx.Done():
				c.logger.Debugf("Connection:Execute:<-evCancelCtx.Done()", "wsURL:%q err:%v", c.wsURL, evCancelCtx.Err())
				return
			case msg := <-msgCh:
				select {
				case <-evCancelCtx.Done():
					c.logger.Debugf("Client:Execute:<-evCancelCtx.Done()#2", "wsURL:%q err:%v", c.wsURL, evCancelCtx.Err())
				case recvCh <- msg:
					// We expect only one response with the matching message ID,
					// then remove event handler by cancelling context and stopping goroutine.
					evCancelFn()
					return
				}
			}
		}
	}()
	// c.onAll(evCancelCtx, chEvHandler)
	defer evCancelFn() // Remove event handler

	// Send the message
	var buf []byte
	if params != nil {
		var err error
		buf, err = easyjson.Marshal(params)
		if err != nil {
			return err
		}
	}
	msg := &cdproto.Message{
		ID:     id,
		Method: cdproto.MethodType(method),
		Params: buf,
	}

	// We use different sessions to send messages to "targets"
	// (browser, page, frame etc.) in CDP.
	//
	// If we don't specify a session (a session ID in the JSON message),
	// it will be a message for the browser target.
	//
	// With a session ID set in the context (WithSessionID(ctx)),
	// it will properly route the CDP message to the correct target
	// (page, frame, etc.).
	if sid := GetSessionID(ctx); sid != "" {
		msg.SessionID = target.SessionID(sid)
	}

	return c.send(ctx, msg, recvCh, res)
}

// ExecuteWithoutExpectationOnReply sends a CDP command without waiting for
// a reply, for fire-and-forget calls where the caller doesn't need the
// round trip (e.g. closing a session that's already going away).
func (c *Client) ExecuteWithoutExpectationOnReply(ctx context.Context, method string, params easyjson.Marshaler, res easyjson.Unmarshaler) error {
	sid := GetSessionID(ctx)
	// Certain methods aren't available to the user directly.
	if method == target.CommandCloseTarget {
		return errors.New("to close the target, cancel its context")
	}

	var buf []byte
	if params != nil {
		var err error
		buf, err = easyjson.Marshal(params)
		if err != nil {
			return err
		}
	}
	msg := &cdproto.Message{
		ID:        atomic.AddInt64(&c.msgID, 1),
		SessionID: target.SessionID(sid),
		Method:    cdproto.MethodType(method),
		Params:    buf,
	}

	return c.send(withDoneChan(ctx, c.done), msg, nil, res)
}

// Subscribe returns a channel that will be notified when the provided CDP
// events are received for the given session and frame IDs, and a cancellation
// function that will unsubscribe and close the channel.
func (c *Client) Subscribe(
	ctx context.Context, frameID string, events ...cdproto.MethodType,
) (<-chan *Event, func()) {
	sessionID := GetSessionID(ctx)
	return c.watcher.subscribe(sessionID, frameID, events...)
}

func (c *Client) send(ctx context.Context, msg *cdproto.Message, recvCh chan *cdproto.Message, res easyjson.Unmarshaler) error {
	select {
	case c.sendCh <- msg:
	case err := <-c.errorCh:
		c.logger.Debugf("Connection:send:<-c.errorCh", "wsURL:%q sid:%v, err:%v", c.wsURL, msg.SessionID, err)
		var wsErr wsIOError
		if errors.As(err, &wsErr) {
			return c.conn.handleIOError(wsErr.Unwrap())
		}
		return err
	case <-ctx.Done():
		c.logger.Errorf("Connection:send:<-ctx.Done()", "wsURL:%q sid:%v err:%v", c.wsURL, msg.SessionID, c.ctx.Err())
		return ctx.Err()
	case <-c.ctx.Done():
		c.logger.Errorf("Connection:send:<-c.ctx.Done()", "wsURL:%q sid:%v err:%v", c.wsURL, msg.SessionID, c.ctx.Err())
		return ctx.Err()
	}

	// Block waiting for response.
	if recvCh == nil {
		return nil
	}
	select {
	case msg := <-recvCh:
		switch {
		case msg == nil:
			c.logger.Debugf("Connection:send", "wsURL:%q, err:ErrChannelClosed", c.wsURL)
			return errors.New("msg is nil")
		case msg.Error != nil:
			return msg.Error
		case res != nil:
			return easyjson.Unmarshal(msg.Result, res)
		}
	case err := <-c.errorCh:
		var wsErr wsIOError
		if errors.As(err, &wsErr) {
			return c.conn.handleIOError(wsErr.Unwrap())
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	}

	return nil
}

func (c *Client) recvLoop() {
	for {
		msg, err := c.conn.readMessage()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				c.logger.Errorf("Client:recvLoop", "wsURL:%q ioErr:%v", c.wsURL, err)
				c.conn.handleIOError(err)
			}
			return
		}

		switch {
		case msg.Method != "":
			evt, err := cdproto.UnmarshalMessage(msg)
			if err != nil {
				c.logger.Errorf("cdp", "unmarshalling CDP message: %v", err)
				continue
			}
			// Try to extract the frame ID if it exists so the watcher can
			// filter by frame without every subscriber re-parsing params.
			var p struct {
				FrameID cdpext.FrameID `json:"frameId"`
			}
			if msg.Params != nil {
				msgParams, _ := msg.Params.MarshalJSON()
				_ = json.Unmarshal(msgParams, &p)
			}
			c.watcher.notify(&Event{
				Name:      msg.Method,
				Data:      evt,
				sessionID: msg.SessionID,
				frameID:   p.FrameID,
			})
		case msg.ID > 0:
			c.msgSubsMu.Lock()
			ch := c.recvCh
			if idCh, ok := c.msgSubs[msg.ID]; ok {
				ch = idCh
				delete(c.msgSubs, msg.ID)
			}
			c.msgSubsMu.Unlock()
			select {
			case ch <- msg:
			case <-c.ctx.Done():
				c.logger.Errorf("cdp", "receiving CDP messages from %q: %v", c.wsURL, c.ctx.Err())
				return
			}
		default:
			c.logger.Errorf("cdp", "ignoring malformed incoming CDP message (missing id or method): %#v", msg)
		}
	}
}

func (c *Client) recvMsgLoop() {
	for {
		select {
		case msg := <-c.recvCh:
			c.logger.Debugf("Client:recvMsgLoop", "wsURL:%q id:%d sid:%v method:%q", c.wsURL, msg.ID, msg.SessionID, msg.Method)
		case <-c.ctx.Done():
			c.logger.Debugf("Client:recvMsgLoop", "returning, ctx.Err: %q", c.ctx.Err())
			return
		}
	}
}

func (c *Client) sendLoop() {
	for {
		select {
		case msg := <-c.sendCh:
			if err := c.conn.writeMessage(msg); err != nil {
				c.errorCh <- err
			}
		case <-c.done:
			c.logger.Debugf("Client:sendLoop", "wsURL:%q, stopped", c.wsURL)
			return
		case <-c.ctx.Done():
			c.logger.Debugf("Client:sendLoop", "returning, ctx.Err: %q", c.ctx.Err())
			c.conn.Close()
			return
		}
	}
}

package cdp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/cdproto"
	"github.com/gorilla/websocket"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"

	"github.com/browsercore/xk6-frame/log"
)

// wsIOError wraps a websocket I/O failure so callers can distinguish a
// transport-level disconnect from a CDP protocol error.
type wsIOError struct {
	err error
}

func (e wsIOError) Error() string { return fmt.Sprintf("websocket I/O error: %v", e.err) }
func (e wsIOError) Unwrap() error { return e.err }

// connection is the websocket transport underneath Client.
type connection struct {
	ws     *websocket.Conn
	logger *log.Logger
}

func newConnection(ctx context.Context, wsURL string, logger *log.Logger) (*connection, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   1 << 20,
		WriteBufferSize:  1 << 20,
		Proxy:            http.ProxyFromEnvironment,
	}
	ws, _, err := dialer.DialContext(ctx, wsURL, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("dialing %q: %w", wsURL, err)
	}
	return &connection{ws: ws, logger: logger}, nil
}

// readMessage blocks until the next CDP message arrives on the socket.
func (c *connection) readMessage() (*cdproto.Message, error) {
	_, buf, err := c.ws.ReadMessage()
	if err != nil {
		return nil, wsIOError{err}
	}

	msg := new(cdproto.Message)
	lexer := &jlexer.Lexer{Data: buf}
	msg.UnmarshalEasyJSON(lexer)
	if err := lexer.Error(); err != nil {
		return nil, fmt.Errorf("unmarshalling CDP message: %w", err)
	}
	return msg, nil
}

// writeMessage encodes and sends a single CDP message.
func (c *connection) writeMessage(msg *cdproto.Message) error {
	var enc jwriter.Writer
	msg.MarshalEasyJSON(&enc)
	if enc.Error != nil {
		return fmt.Errorf("marshalling CDP message: %w", enc.Error)
	}
	buf, err := enc.BuildBytes()
	if err != nil {
		return fmt.Errorf("building CDP message bytes: %w", err)
	}

	w, err := c.ws.NextWriter(websocket.TextMessage)
	if err != nil {
		return wsIOError{err}
	}
	if _, err := w.Write(buf); err != nil {
		return wsIOError{err}
	}
	if err := w.Close(); err != nil {
		return wsIOError{err}
	}
	return nil
}

// handleIOError logs a transport failure and returns it unchanged, giving
// callers a single choke point to add reconnection logic later.
func (c *connection) handleIOError(err error) error {
	c.logger.Debugf("cdp:connection", "websocket I/O error: %v", err)
	return err
}

// Close terminates the underlying websocket connection.
func (c *connection) Close() {
	_ = c.ws.Close()
}

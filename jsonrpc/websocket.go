package jsonrpc

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/NethermindEth/starkevents/utils"
	"github.com/coder/websocket"
)

// Close reasons longer than this are rejected by the websocket protocol.
const closeReasonMaxBytes = 125

type WebsocketConnParams struct {
	// Maximum message size allowed.
	ReadLimit int64
	// Maximum time to write a message.
	WriteDuration time.Duration
	// Hosts allowed to open cross-origin connections.
	OriginPatterns []string
}

func DefaultWebsocketConnParams() *WebsocketConnParams {
	return &WebsocketConnParams{
		ReadLimit:     32 * utils.Megabyte,
		WriteDuration: 5 * time.Second,
	}
}

// Websocket serves JSON-RPC over websocket connections, one request per text
// message. Every request on a connection runs against the connection's context.
type Websocket struct {
	rpc        *Server
	log        utils.SimpleLogger
	connParams *WebsocketConnParams
	listener   NewRequestListener
}

func NewWebsocket(rpc *Server, log utils.SimpleLogger) *Websocket {
	return &Websocket{
		rpc:        rpc,
		log:        log,
		connParams: DefaultWebsocketConnParams(),
		listener:   &SelectiveListener{},
	}
}

func (ws *Websocket) WithConnParams(p *WebsocketConnParams) *Websocket {
	ws.connParams = p
	return ws
}

// WithListener registers a NewRequestListener
func (ws *Websocket) WithListener(listener NewRequestListener) *Websocket {
	ws.listener = listener
	return ws
}

// ServeHTTP upgrades the request and serves the connection until either side closes it.
func (ws *Websocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: ws.connParams.OriginPatterns,
	})
	if err != nil {
		ws.log.Errorw("Failed to upgrade connection", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn.SetReadLimit(ws.connParams.ReadLimit)

	wsc := &websocketConn{conn: conn, ctx: r.Context(), writeTimeout: ws.connParams.WriteDuration}
	err = ws.serve(wsc)

	if status := websocket.CloseStatus(err); status != -1 {
		ws.log.Debugw("Client closed websocket connection", "remote", r.RemoteAddr, "status", status)
		return
	}
	ws.log.Warnw("Closing websocket connection", "remote", r.RemoteAddr, "err", err)
	if closeErr := wsc.closeWith(err); closeErr != nil && !alreadyClosed(closeErr) {
		ws.log.Errorw("Failed to close websocket connection", "remote", r.RemoteAddr, "err", closeErr)
	}
}

// serve handles messages until reading, handling or draining one fails.
func (ws *Websocket) serve(wsc *websocketConn) error {
	for {
		if err := wsc.next(); err != nil {
			return err
		}
		ws.listener.OnNewRequest("any")
		if err := ws.rpc.HandleReadWriter(wsc.ctx, wsc); err != nil {
			return err
		}
		// An unread remainder blocks the next Reader call.
		if _, err := io.Copy(io.Discard, wsc.msg); err != nil {
			return err
		}
	}
}

// alreadyClosed reports close errors that only mean the peer went away first.
func alreadyClosed(err error) bool {
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "already wrote close") || strings.Contains(msg, "WebSocket closed")
}

// websocketConn adapts the current message of a connection to io.ReadWriter.
type websocketConn struct {
	conn         *websocket.Conn
	ctx          context.Context
	msg          io.Reader
	writeTimeout time.Duration
}

func (wsc *websocketConn) next() (err error) {
	_, wsc.msg, err = wsc.conn.Reader(wsc.ctx)
	return err
}

func (wsc *websocketConn) Read(p []byte) (int, error) {
	return wsc.msg.Read(p)
}

// Write sends p as one text message and returns len(p) on success.
func (wsc *websocketConn) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(wsc.ctx, wsc.writeTimeout)
	defer cancel()
	if err := wsc.conn.Write(ctx, websocket.MessageText, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// closeWith closes the connection with an internal error status carrying a truncated reason.
func (wsc *websocketConn) closeWith(cause error) error {
	reason := cause.Error()
	if len(reason) > closeReasonMaxBytes {
		reason = reason[:closeReasonMaxBytes]
	}
	return wsc.conn.Close(websocket.StatusInternalError, reason)
}

package client

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// dialTimeout bounds connection establishment so a dead host cannot hold
// the connect task indefinitely.
const dialTimeout = 10 * time.Second

// dialStream opens the line-oriented stream for the sync channel. A ws:// or
// wss:// address is dialed as a websocket and adapted to the newline
// framing; anything else is treated as a raw host:port TCP target.
func dialStream(addr string) (io.ReadWriteCloser, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return dialWS(addr)
	}
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

func dialWS(url string) (io.ReadWriteCloser, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	ws, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return newWSStream(ws), nil
}

// wsStream adapts a websocket connection to the plain stream contract:
// every Write is one text message, and reads see the concatenation of all
// inbound messages, preserving the line framing carried inside them.
type wsStream struct {
	ws *websocket.Conn
	r  io.Reader
}

func newWSStream(ws *websocket.Conn) *wsStream {
	return &wsStream{ws: ws, r: websocket.JoinMessages(ws, "")}
}

func (s *wsStream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *wsStream) Write(p []byte) (int, error) {
	if err := s.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsStream) Close() error {
	return s.ws.Close()
}

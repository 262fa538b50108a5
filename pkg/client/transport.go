package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Transport carries whole frames. ReadFrame is only called from the read
// loop and WriteFrame only under the client's write lock.
type Transport interface {
	ReadFrame() ([]byte, error)
	WriteFrame(frame []byte) error
	Close() error
}

// wsTransport sends one frame per binary WebSocket message.
type wsTransport struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	closeOnce    sync.Once
}

// DialWebSocket connects to the backend at url.
func DialWebSocket(ctx context.Context, url string, cfg *Config) (Transport, error) {
	cfg = cfg.withDefaults()
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.HandshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewWebSocketTransport(conn, cfg), nil
}

// NewWebSocketTransport wraps an established connection.
func NewWebSocketTransport(conn *websocket.Conn, cfg *Config) Transport {
	cfg = cfg.withDefaults()
	conn.SetReadLimit(cfg.MaxMessageSize)
	return &wsTransport{conn: conn, writeTimeout: cfg.WriteTimeout}
}

func (t *wsTransport) ReadFrame() ([]byte, error) {
	for {
		typ, msg, err := t.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if typ == websocket.BinaryMessage {
			return msg, nil
		}
	}
}

func (t *wsTransport) WriteFrame(frame []byte) error {
	_ = t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	return t.conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (t *wsTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = t.conn.Close()
	})
	return err
}

package controller

import (
	"context"
	"fmt"
	"home-panel/internal/ports"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	maxMessageSize   = 4096
)

// Socket opens the controller's live event channel.
type Socket struct {
	url string
}

func NewSocket(url string) *Socket {
	return &Socket{url: url}
}

func (s *Socket) Dial(ctx context.Context) (ports.EventStream, error) {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = handshakeTimeout

	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", s.url, err)
	}
	conn.SetReadLimit(maxMessageSize)
	return &socketStream{conn: conn}, nil
}

type socketStream struct {
	conn *websocket.Conn
	once sync.Once
	err  error
}

// ReadMessage returns the next data frame. Control frames are handled by the
// connection itself.
func (s *socketStream) ReadMessage() ([]byte, error) {
	_, payload, err := s.conn.ReadMessage()
	return payload, err
}

func (s *socketStream) Close() error {
	s.once.Do(func() {
		s.err = s.conn.Close()
	})
	return s.err
}

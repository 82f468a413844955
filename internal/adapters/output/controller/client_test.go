package controller

import (
	"context"
	"home-panel/internal/domain/model"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchSensors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/dht", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"temp": 24.5, "hum": null}`)
	}))
	defer server.Close()

	c, err := NewClient(server.URL + "/")
	require.NoError(t, err)

	reading, err := c.FetchSensors(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading.Temp)
	assert.Equal(t, 24.5, *reading.Temp)
	assert.Nil(t, reading.Hum)
}

func TestClient_FetchSensorsErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "sensor fault", wantErr: "status 500"},
		{name: "malformed body", status: http.StatusOK, body: `{"temp":`, wantErr: "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			require.NoError(t, err)
			_, err = c.FetchSensors(context.Background())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestClient_SendCommand(t *testing.T) {
	paths := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		// status is never inspected
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	assert.NoError(t, c.SendCommand(context.Background(), model.DeviceLight, true))
	assert.NoError(t, c.SendCommand(context.Background(), model.DeviceDoor, false))
	assert.Equal(t, "/light/on", <-paths)
	assert.Equal(t, "/door/off", <-paths)
}

func TestClient_SendCommandUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	require.NoError(t, err)
	assert.Error(t, c.SendCommand(context.Background(), model.DeviceFan, true))

	_, err = NewClient("  ")
	assert.Error(t, err)
}

func TestSocket_DialAndRead(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws", r.URL.Path)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"motion": true}`))
		<-release
	}))
	defer server.Close()
	defer close(release)

	url, err := model.SocketURLFor(server.URL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "ws://"))

	stream, err := NewSocket(url).Dial(context.Background())
	require.NoError(t, err)

	payload, err := stream.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"motion": true}`, string(payload))

	done := make(chan error, 1)
	go func() {
		_, err := stream.ReadMessage()
		done <- err
	}()
	require.NoError(t, stream.Close())
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("ReadMessage did not unblock on Close")
	}
	assert.NoError(t, stream.Close())
}

func TestSocket_DialFailure(t *testing.T) {
	_, err := NewSocket("ws://127.0.0.1:1/ws").Dial(context.Background())
	assert.Error(t, err)
}

func TestClient_FetchSensorsTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	c.sensorTimeout = 50 * time.Millisecond

	_, err = c.FetchSensors(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_SendCommandFollowsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	c.sensorTimeout = 10 * time.Millisecond

	// a command slower than the poll bound still completes
	go func() {
		time.Sleep(100 * time.Millisecond)
		release <- struct{}{}
	}()
	assert.NoError(t, c.SendCommand(context.Background(), model.DeviceLight, true))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.SendCommand(ctx, model.DeviceLight, false), context.DeadlineExceeded)
}

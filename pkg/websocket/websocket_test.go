package websocketPkg

import (
	"FaceVerify/internal/entity"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newEncoderServer answers every binary frame with reply(frame). When
// dropFirst is set, the first connection is closed after the handshake.
func newEncoderServer(t *testing.T, reply func([]byte) string, dropFirst bool) (*httptest.Server, *int32) {
	t.Helper()
	var conns int32
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if atomic.AddInt32(&conns, 1) == 1 && dropFirst {
			return
		}

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt != websocket.BinaryMessage {
				conn.WriteMessage(websocket.TextMessage, []byte(`{"faces":[],"error":"expected binary frame"}`))
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply(data))); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &conns
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestEncode(t *testing.T) {
	srv, _ := newEncoderServer(t, func(frame []byte) string {
		if string(frame) == "two-faces" {
			return `{"faces":[{"encoding":[0.1,0.2],"location":[1,2,3,4]},{"encoding":[0.3,0.4]}]}`
		}
		return `{"faces":[]}`
	}, false)

	client := NewAIWebSocketClient(Options{URL: wsURL(srv), Lazy: true}, newTestLogger())
	defer client.Close()

	encodings, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("two-faces")})
	require.NoError(t, err)
	assert.Equal(t, []entity.FaceEncoding{{0.1, 0.2}, {0.3, 0.4}}, encodings)
	assert.True(t, client.IsConnected())

	encodings, err = client.Encode(context.Background(), entity.FaceImage{Raw: []byte("nobody")})
	require.NoError(t, err)
	assert.Empty(t, encodings)
}

func TestEncodeServiceError(t *testing.T) {
	srv, _ := newEncoderServer(t, func([]byte) string {
		return `{"faces":[],"error":"model not loaded"}`
	}, false)

	client := NewAIWebSocketClient(Options{URL: wsURL(srv), Lazy: true}, newTestLogger())
	defer client.Close()

	_, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("img")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestEncodeRetryStaleReconnectsOnce(t *testing.T) {
	srv, conns := newEncoderServer(t, func([]byte) string {
		return `{"faces":[{"encoding":[1,2,3]}]}`
	}, true)

	client := NewAIWebSocketClient(Options{URL: wsURL(srv), Lazy: true, RetryStale: true}, newTestLogger())
	defer client.Close()

	require.NoError(t, client.Reconnect())
	// let the server hang up the first connection
	time.Sleep(50 * time.Millisecond)

	encodings, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("img")})
	require.NoError(t, err)
	assert.Equal(t, []entity.FaceEncoding{{1, 2, 3}}, encodings)
	assert.Equal(t, int32(2), atomic.LoadInt32(conns))
}

func TestEncodeStaleConnectionFailsWithoutRetry(t *testing.T) {
	srv, conns := newEncoderServer(t, func([]byte) string {
		return `{"faces":[{"encoding":[1,2,3]}]}`
	}, true)

	client := NewAIWebSocketClient(Options{URL: wsURL(srv), Lazy: true}, newTestLogger())
	defer client.Close()

	require.NoError(t, client.Reconnect())
	time.Sleep(50 * time.Millisecond)

	_, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("img")})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(conns))
	assert.False(t, client.IsConnected())

	encodings, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("img")})
	require.NoError(t, err)
	assert.Equal(t, []entity.FaceEncoding{{1, 2, 3}}, encodings)
	assert.Equal(t, int32(2), atomic.LoadInt32(conns))
}

func TestEncodeUnreachable(t *testing.T) {
	client := NewAIWebSocketClient(Options{URL: "ws://127.0.0.1:1/encode", Lazy: true}, newTestLogger())
	defer client.Close()

	_, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("img")})
	assert.Error(t, err)
	assert.False(t, client.IsConnected())
}

func TestEncodeAfterClose(t *testing.T) {
	srv, _ := newEncoderServer(t, func([]byte) string { return `{"faces":[]}` }, false)

	client := NewAIWebSocketClient(Options{URL: wsURL(srv), Lazy: true}, newTestLogger())
	client.Close()

	_, err := client.Encode(context.Background(), entity.FaceImage{Raw: []byte("img")})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEncodeRespectsCanceledContext(t *testing.T) {
	srv, _ := newEncoderServer(t, func([]byte) string { return `{"faces":[]}` }, false)

	client := NewAIWebSocketClient(Options{URL: wsURL(srv), Lazy: true}, newTestLogger())
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Encode(ctx, entity.FaceImage{Raw: []byte("img")})
	assert.ErrorIs(t, err, context.Canceled)
}

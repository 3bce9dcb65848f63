package websocketPkg

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const DefaultEncoderURL = "ws://localhost:8000/api/v1/face/encode"

var ErrClosed = errors.New("face encoder client is closed")

// IWebsocket encodes faces through the AI encoding service over one
// persistent websocket connection.
type IWebsocket interface {
	Encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type Options struct {
	URL          string
	PingInterval time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Lazy skips the background dial; the first Encode connects instead.
	Lazy bool
	// RetryStale resends the frame once on a fresh connection when a reused
	// one turns out to be broken. Off, the failure is returned and the next
	// Encode dials again.
	RetryStale bool
}

type encodeResponse struct {
	Faces []entity.DetectedFace `json:"faces"`
	Error string                `json:"error"`
}

type webSocketClient struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	closed       bool
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	retryStale   bool
	log          *logrus.Logger
}

func NewAIWebSocketClient(opts Options, log *logrus.Logger) IWebsocket {
	if opts.URL == "" {
		opts.URL = DefaultEncoderURL
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	client := &webSocketClient{
		url:          opts.URL,
		pingInterval: opts.PingInterval,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
		retryStale:   opts.RetryStale,
		log:          log,
	}

	if !opts.Lazy {
		go client.connectInBackground()
	}

	return client
}

func (c *webSocketClient) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		c.log.WithFields(logrus.Fields{
			"url":   c.url,
			"error": err.Error(),
		}).Warn("Initial connection to face encoder failed, will retry on demand")
		return
	}
	c.log.WithField("url", c.url).Info("Connected to face encoder service")
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dialLocked()
}

// dialLocked replaces the current connection. c.mu must be held.
func (c *webSocketClient) dialLocked() error {
	if c.closed {
		return ErrClosed
	}
	c.dropLocked()

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("Error sending pong to face encoder")
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *webSocketClient) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *webSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.dropLocked()
}

// keepAlive pings conn until it is replaced, closed or a ping fails.
func (c *webSocketClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("Ping to face encoder failed, marking connection as dead")
			c.dropLocked()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// Encode sends the raw image bytes and waits for the reply while holding
// the connection, so concurrent callers are served one at a time. A broken
// connection is dropped; with RetryStale the request is resent once.
func (c *webSocketClient) Encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error) {
	if len(img.Raw) == 0 {
		return nil, errors.New("image has no raw bytes to send")
	}

	requestID := contextPkg.GetRequestID(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reused := c.conn != nil
	if !reused {
		if err := c.dialLocked(); err != nil {
			return nil, fmt.Errorf("cannot connect to face encoder service: %w", err)
		}
	}

	message, err := c.roundTripLocked(ctx, img.Raw)
	if err != nil && reused && c.retryStale && ctx.Err() == nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Face encoder connection broken, reconnecting")

		if dialErr := c.dialLocked(); dialErr != nil {
			return nil, fmt.Errorf("cannot reconnect to face encoder service: %w", dialErr)
		}
		message, err = c.roundTripLocked(ctx, img.Raw)
	}
	if err != nil {
		return nil, err
	}

	var result encodeResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling encoder response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("face encoder error: %s", result.Error)
	}

	encodings := make([]entity.FaceEncoding, 0, len(result.Faces))
	for _, face := range result.Faces {
		if len(face.Encoding) == 0 {
			continue
		}
		if face.Location != nil {
			c.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"location":   *face.Location,
			}).Debug("Face located")
		}
		encodings = append(encodings, face.Encoding)
	}

	c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"faces":      len(encodings),
		"bytes":      len(img.Raw),
	}).Debug("Received encodings from face encoder")

	return encodings, nil
}

// roundTripLocked writes one frame and reads one reply. Any failure drops
// the connection. c.mu must be held.
func (c *webSocketClient) roundTripLocked(ctx context.Context, frame []byte) ([]byte, error) {
	conn := c.conn
	if conn == nil {
		return nil, errors.New("not connected to face encoder service")
	}

	conn.SetWriteDeadline(deadline(ctx, c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("error sending image frame: %w", err)
	}

	conn.SetReadDeadline(deadline(ctx, c.readTimeout))
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.dropLocked()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("error reading encoder response: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	return message, nil
}

func deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

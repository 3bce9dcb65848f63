package faceHandler

import (
	"FaceVerify/internal/middleware"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/handlerUtil"
	"FaceVerify/pkg/log"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

const streamReadTimeout = 60 * time.Second

// handleVerifyWebSocket verifies every binary frame as a raw image and
// answers with one JSON message per frame.
func (h *FaceHandler) handleVerifyWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	if requestID == "" {
		requestID = "unknown"
	}
	baseCtx := contextPkg.WithRequestID(context.Background(), requestID)

	h.log.WithField("request_id", requestID).Info("Face verification WebSocket client connected")
	defer h.log.WithField("request_id", requestID).Info("Face verification WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.WithField("error", err.Error()).Warn("Error sending pong")
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(streamReadTimeout)); err != nil {
			h.log.WithField("error", err.Error()).Error("Error setting read deadline")
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Face verification WebSocket error")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.WithFields(log.Fields{
				"request_id":   requestID,
				"message_type": messageType,
			}).Warn("Received unexpected message type")
			continue
		}

		var payload interface{}
		ctx, cancel := context.WithTimeout(baseCtx, requestTimeout)
		result, err := h.faceService.VerifyImage(ctx, message)
		cancel()
		if err != nil {
			_, body := handlerUtil.Body(err)
			payload = body
		} else {
			payload = result.Response()
		}

		if err := c.SetWriteDeadline(time.Now().Add(requestTimeout)); err != nil {
			break
		}
		if err := c.WriteJSON(payload); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Error writing JSON response")
			break
		}
	}
}

package handlerUtil

import (
	"FaceVerify/pkg/log"
	"FaceVerify/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

const MessageUnexpected = "An unexpected error occurred"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Body converts err into the JSON error body and its HTTP status. The
// wrapped cause of a response.Error is surfaced as the error field.
func Body(err error) (int, ErrorResponse) {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		body := ErrorResponse{Success: false, Message: respErr.Message()}
		if respErr.Cause != nil {
			body.Error = respErr.Cause.Error()
		}
		return respErr.Code, body
	}
	return fiber.StatusInternalServerError, ErrorResponse{Success: false, Message: MessageUnexpected}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	code, body := Body(err)

	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"code":       code,
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	switch {
	case !errors.As(err, &respErr):
		log.ErrorWithTraceID(fields, "Unexpected error")
	case code >= fiber.StatusInternalServerError:
		h.logger.WithFields(fields).Error("Operation failed with error response")
	default:
		h.logger.WithFields(fields).Warn("Operation failed with error response")
	}

	return c.Status(code).JSON(body)
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(ErrorResponse{
		Success: false,
		Message: utils.StatusMessage(fiber.StatusRequestTimeout),
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}

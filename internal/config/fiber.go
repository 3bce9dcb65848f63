package config

import (
	"FaceVerify/pkg/handlerUtil"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type FiberOptions struct {
	BodyLimitMB int
}

func NewFiber(logger *logrus.Logger, opts FiberOptions) *fiber.App {
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = 10
	}

	app := fiber.New(
		fiber.Config{
			AppName:               "Face Verify",
			BodyLimit:             opts.BodyLimitMB * 1024 * 1024,
			DisableKeepalive:      false,
			StrictRouting:         true,
			CaseSensitive:         true,
			DisableStartupMessage: true,
			JSONEncoder:           jsoniter.Marshal,
			JSONDecoder:           jsoniter.Unmarshal,
			ErrorHandler:          newErrorHandler(logger),
		})

	app.Use(cors.New())

	return app
}

// newErrorHandler renders errors that escape a handler, such as unknown
// routes or an oversized body, in the same JSON shape as handled errors.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(handlerUtil.ErrorResponse{
				Success: false,
				Message: fiberErr.Message,
			})
		}

		logger.WithFields(logrus.Fields{
			"path":  c.Path(),
			"error": err.Error(),
		}).Error("Unhandled error")

		code, body := handlerUtil.Body(err)
		return c.Status(code).JSON(body)
	}
}

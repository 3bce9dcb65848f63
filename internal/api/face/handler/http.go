package faceHandler

import (
	faceService "FaceVerify/internal/api/face/service"
	"FaceVerify/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type FaceHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	faceService faceService.IFaceService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	fs faceService.IFaceService,
) *FaceHandler {
	return &FaceHandler{
		log:         log,
		validator:   validator,
		middleware:  middleware,
		faceService: fs,
	}
}

func (h *FaceHandler) Start(srv fiber.Router) {
	srv.Post("/verify-face", h.middleware.NewRateLimiter, h.VerifyFace)
	srv.Post("/register-face", h.middleware.NewRateLimiter, h.RegisterFace)

	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	face := srv.Group("/face")
	face.Use("/ws", wsMiddleware)
	face.Get("/ws", websocket.New(h.handleVerifyWebSocket))
}

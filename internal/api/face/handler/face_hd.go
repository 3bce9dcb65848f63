package faceHandler

import (
	"FaceVerify/internal/api/face"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/handlerUtil"
	"FaceVerify/pkg/log"
	"FaceVerify/pkg/response"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

var requestTimeout = 10 * time.Second

func (h *FaceHandler) VerifyFace(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing face verification request")

	var req face.VerifyFaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, response.Wrap(face.ErrMissingImage, err), ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.Handle(ctx, requestID, face.ErrMissingImage, ctx.Path(), "validate_request")
	}

	result, err := h.faceService.Verify(c, *req.Image)
	if err != nil {
		if errors.Is(c.Err(), context.DeadlineExceeded) {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "verify_face")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"recognized": result.Recognized,
		"faces":      result.FaceCount,
		"known":      result.KnownCount,
	}).Info("Face verification completed")
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, result.Response())
}

func (h *FaceHandler) RegisterFace(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing face registration request")

	var req face.RegisterFaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, response.Wrap(face.ErrMissingFields, err), ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil || req.Rollno == nil {
		return errHandler.Handle(ctx, requestID, face.ErrMissingFields, ctx.Path(), "validate_request")
	}

	if !req.Rollno.Valid {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"rollno":     req.Rollno.Raw,
		}).Warn("Rejected rollno")
		return errHandler.Handle(ctx, requestID, face.ErrInvalidRollno, ctx.Path(), "validate_rollno")
	}

	faceID, err := h.faceService.Register(c, req.Rollno.Value, *req.Image)
	if err != nil {
		if errors.Is(c.Err(), context.DeadlineExceeded) {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "register_face")
	}

	// A stored record always gets its success body, even past the deadline.
	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"face_id":    faceID,
	}).Info("Face registration completed")
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, face.RegisterFaceResponse{
		Success: true,
		FaceID:  faceID,
	})
}

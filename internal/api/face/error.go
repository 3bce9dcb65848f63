package face

import (
	"FaceVerify/pkg/response"
	"net/http"
)

var (
	ErrMissingImage    = response.NewError(http.StatusBadRequest, "No image provided")
	ErrMissingFields   = response.NewError(http.StatusBadRequest, "Missing rollno or image")
	ErrInvalidRollno   = response.NewError(http.StatusBadRequest, "Invalid rollno")
	ErrInvalidImage    = response.NewError(http.StatusBadRequest, "Invalid image data")
	ErrNoFaceFound     = response.NewError(http.StatusBadRequest, "No face found in the image")
	ErrEncodingFailure = response.NewError(http.StatusInternalServerError, "Failed to encode face")
	ErrStoreWrite      = response.NewError(http.StatusInternalServerError, "Failed to save encoding")
)

const MessageNotRecognized = "Face not recognized"

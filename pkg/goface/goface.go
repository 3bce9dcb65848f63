package goface

import (
	"FaceVerify/internal/entity"
	"context"
	"errors"
)

// ErrUnavailable is returned by New when the binary was built without the
// dlib tag.
var ErrUnavailable = errors.New("dlib face encoder not compiled in, rebuild with -tags dlib")

// IGoFace encodes faces in-process with dlib.
type IGoFace interface {
	Encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error)
	Close()
}

type Options struct {
	ModelsDir   string
	JPEGQuality int
}

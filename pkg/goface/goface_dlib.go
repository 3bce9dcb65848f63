//go:build dlib

package goface

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/utils"
	"context"
	"fmt"
	"sync"

	"github.com/Kagami/go-face"
	"github.com/sirupsen/logrus"
)

type recognizer struct {
	rec     *face.Recognizer
	mu      sync.Mutex
	utils   utils.IUtils
	quality int
	log     *logrus.Logger
}

func New(opts Options, utils utils.IUtils, log *logrus.Logger) (IGoFace, error) {
	rec, err := face.NewRecognizer(opts.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load dlib models from %s: %w", opts.ModelsDir, err)
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 95
	}

	log.WithField("models_dir", opts.ModelsDir).Info("dlib face recognizer loaded")

	return &recognizer{rec: rec, utils: utils, quality: opts.JPEGQuality, log: log}, nil
}

// Encode re-encodes the image to JPEG, the only format dlib's loader reads
// from memory, and returns one descriptor per detected face.
func (r *recognizer) Encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := img.Raw
	if img.Format != "jpeg" || len(data) == 0 {
		var err error
		data, err = r.utils.EncodeJPEG(img.Image, r.quality)
		if err != nil {
			return nil, fmt.Errorf("failed to convert image to jpeg: %w", err)
		}
	}

	r.mu.Lock()
	faces, err := r.rec.Recognize(data)
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("dlib recognition failed: %w", err)
	}

	encodings := make([]entity.FaceEncoding, 0, len(faces))
	for _, f := range faces {
		enc := make(entity.FaceEncoding, len(f.Descriptor))
		for i, v := range f.Descriptor {
			enc[i] = float64(v)
		}
		encodings = append(encodings, enc)
	}

	r.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"faces":      len(encodings),
	}).Debug("dlib encoded faces")

	return encodings, nil
}

func (r *recognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rec.Close()
}

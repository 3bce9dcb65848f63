package utils

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"FaceVerify/internal/entity"
	"github.com/oklog/ulid/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrMalformedDataURL = errors.New("malformed data URL: missing ',' separator")
	ErrEmptyImage       = errors.New("image payload is empty")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	DecodeDataURL(dataURL string) ([]byte, error)
	DecodeImage(data []byte) (entity.FaceImage, error)
	DecodeDataURLImage(dataURL string) (entity.FaceImage, error)
	EncodeJPEG(img image.Image, quality int) ([]byte, error)
}

type utils struct {
	maxImageSize int
}

func New() IUtils {
	return &utils{
		maxImageSize: 10 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// DecodeDataURL drops everything up to the first comma and base64-decodes
// the rest.
func (u *utils) DecodeDataURL(dataURL string) ([]byte, error) {
	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, ErrMalformedDataURL
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	return data, nil
}

func (u *utils) DecodeImage(data []byte) (entity.FaceImage, error) {
	if len(data) == 0 {
		return entity.FaceImage{}, ErrEmptyImage
	}
	if len(data) > u.maxImageSize {
		return entity.FaceImage{}, fmt.Errorf("image size %d exceeds limit of %d bytes", len(data), u.maxImageSize)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return entity.FaceImage{}, fmt.Errorf("cannot decode image: %w", err)
	}

	return entity.FaceImage{
		Image:  img,
		Format: format,
		Raw:    data,
	}, nil
}

func (u *utils) DecodeDataURLImage(dataURL string) (entity.FaceImage, error) {
	data, err := u.DecodeDataURL(dataURL)
	if err != nil {
		return entity.FaceImage{}, err
	}
	return u.DecodeImage(data)
}

func (u *utils) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

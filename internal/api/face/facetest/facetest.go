// Package facetest holds in-memory doubles for the face encoder and the
// encoding store, plus image fixtures, for use in tests.
package facetest

import (
	"FaceVerify/internal/entity"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sort"
	"sync"
	"testing"
)

// PNG renders a small solid image. Different shades give different bytes.
func PNG(t testing.TB, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: shade, G: 255 - shade, B: shade / 2, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func DataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// Encoding returns a 128-d vector with every value set to v.
func Encoding(v float64) entity.FaceEncoding {
	enc := make(entity.FaceEncoding, 128)
	for i := range enc {
		enc[i] = v
	}
	return enc
}

// Encoder answers with the faces registered for the exact image bytes and
// no faces for anything else.
type Encoder struct {
	mu     sync.Mutex
	faces  map[string][]entity.FaceEncoding
	Err    error
	Calls  int
	Closed bool
	// Before runs ahead of every Encode, outside the lock.
	Before func(ctx context.Context)
}

func NewEncoder() *Encoder {
	return &Encoder{faces: map[string][]entity.FaceEncoding{}}
}

func (e *Encoder) Set(raw []byte, faces ...entity.FaceEncoding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.faces[string(raw)] = faces
}

func (e *Encoder) Encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error) {
	if e.Before != nil {
		e.Before(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls++
	if e.Err != nil {
		return nil, e.Err
	}
	return e.faces[string(img.Raw)], nil
}

func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Closed = true
}

var ErrStoreDown = errors.New("store unavailable")

// Repository is an in-memory encoding store.
type Repository struct {
	mu        sync.Mutex
	records   map[int64]entity.FaceEncoding
	LoadErr   error
	UpsertErr error
	Closed    bool
	// BeforeUpsert runs ahead of every Upsert, outside the lock.
	BeforeUpsert func(ctx context.Context)
}

func NewRepository() *Repository {
	return &Repository{records: map[int64]entity.FaceEncoding{}}
}

func (r *Repository) LoadAll(ctx context.Context) ([]entity.FaceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.FaceRecord, 0, len(r.records))
	for rollno, enc := range r.records {
		out = append(out, entity.FaceRecord{Rollno: rollno, Encoding: enc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rollno < out[j].Rollno })
	return out, r.LoadErr
}

func (r *Repository) Upsert(ctx context.Context, record entity.FaceRecord) error {
	if r.BeforeUpsert != nil {
		r.BeforeUpsert(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	r.records[record.Rollno] = record.Encoding
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Closed = true
	return nil
}

func (r *Repository) Get(rollno int64) (entity.FaceEncoding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enc, ok := r.records[rollno]
	return enc, ok
}

func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

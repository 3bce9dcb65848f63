package entity

import (
	"bytes"
	"image"
	"strconv"
	"strings"
)

// FaceEncoding is the embedding vector produced by the face encoder,
// usually 128 values.
type FaceEncoding []float64

type FaceRecord struct {
	Rollno   int64        `json:"rollno" db:"rollno" bson:"rollno"`
	Encoding FaceEncoding `json:"encoding" db:"encoding" bson:"encoding"`
}

type FaceImage struct {
	Image  image.Image
	Format string
	Raw    []byte
}

// FaceLocation is a bounding box in (top, right, bottom, left) order.
type FaceLocation [4]int

type DetectedFace struct {
	Encoding FaceEncoding  `json:"encoding"`
	Location *FaceLocation `json:"location,omitempty"`
}

// Rollno accepts a JSON number or a JSON string. Valid is false when the
// value is not a non-negative integer; Raw keeps what was sent.
type Rollno struct {
	Value int64
	Raw   string
	Valid bool
}

func (r *Rollno) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	r.Raw = raw
	r.Valid = false

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return nil
		}
		raw = strings.TrimSpace(unquoted)
		r.Raw = raw
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		r.Value = v
		r.Valid = v >= 0
		return nil
	}

	// 101.0 is accepted, 101.5 is not
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		r.Value = int64(f)
		r.Valid = r.Value >= 0
	}
	return nil
}

func (r Rollno) String() string {
	return strconv.FormatInt(r.Value, 10)
}

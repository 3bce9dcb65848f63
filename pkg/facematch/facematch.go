package facematch

import (
	"math"

	"FaceVerify/internal/entity"
	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the face_recognition library default; lower is stricter.
const DefaultTolerance = 0.6

type IComparator interface {
	Compare(known []entity.FaceEncoding, candidate entity.FaceEncoding) []bool
	Distances(known []entity.FaceEncoding, candidate entity.FaceEncoding) []float64
	Tolerance() float64
}

type euclidean struct {
	tolerance float64
}

func New(tolerance float64) IComparator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &euclidean{tolerance: tolerance}
}

func (e *euclidean) Tolerance() float64 {
	return e.tolerance
}

// Distances returns one distance per known encoding. Encodings whose
// dimension differs from the candidate get +Inf.
func (e *euclidean) Distances(known []entity.FaceEncoding, candidate entity.FaceEncoding) []float64 {
	distances := make([]float64, len(known))
	for i, enc := range known {
		if len(enc) == 0 || len(enc) != len(candidate) {
			distances[i] = math.Inf(1)
			continue
		}
		distances[i] = floats.Distance(enc, candidate, 2)
	}
	return distances
}

func (e *euclidean) Compare(known []entity.FaceEncoding, candidate entity.FaceEncoding) []bool {
	distances := e.Distances(known, candidate)
	matches := make([]bool, len(distances))
	for i, d := range distances {
		matches[i] = d <= e.tolerance
	}
	return matches
}

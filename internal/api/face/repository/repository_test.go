package faceRepository

import (
	"FaceVerify/internal/entity"
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testEncoding(seed float64) entity.FaceEncoding {
	enc := make(entity.FaceEncoding, 128)
	for i := range enc {
		enc[i] = seed + float64(i)/1000
	}
	return enc
}

func mustNpy(t *testing.T, enc entity.FaceEncoding) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := encodeNpy(&buf, enc); err != nil {
		t.Fatalf("encodeNpy: %v", err)
	}
	return buf.Bytes()
}

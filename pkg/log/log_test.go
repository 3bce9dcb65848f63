package log

import (
	"bytes"
	"context"
	"testing"

	contextPkg "FaceVerify/pkg/context"
	"github.com/stretchr/testify/assert"
)

func TestErrorWithTraceIDUsesRequestID(t *testing.T) {
	NewLogger(Options{Level: "debug", AppEnv: "test"}).SetOutput(&bytes.Buffer{})

	traceID := ErrorWithTraceID(Fields{"request_id": "01HZXREQ"}, "boom")
	assert.Equal(t, "01HZXREQ", traceID)
}

func TestErrorWithTraceIDGeneratesID(t *testing.T) {
	NewLogger(Options{Level: "debug", AppEnv: "test"}).SetOutput(&bytes.Buffer{})

	traceID := ErrorWithTraceID(nil, "boom")
	assert.Len(t, traceID, 36)
}

func TestWithRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	NewLogger(Options{Level: "debug", AppEnv: "test"}).SetOutput(buf)

	ctx := contextPkg.WithRequestID(context.Background(), "req-42")
	WithRequestID(ctx).Info("hello")

	assert.Contains(t, buf.String(), "req-42")
}

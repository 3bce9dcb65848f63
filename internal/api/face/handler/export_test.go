package faceHandler

import "time"

// SetRequestTimeout shortens the per-request deadline for a test.
func SetRequestTimeout(d time.Duration) (restore func()) {
	prev := requestTimeout
	requestTimeout = d
	return func() { requestTimeout = prev }
}

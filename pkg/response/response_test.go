package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBase = NewError(http.StatusBadRequest, "Invalid image data")

func TestWrapKeepsIdentity(t *testing.T) {
	cause := errors.New("illegal base64 data at input byte 4")
	err := Wrap(errBase, cause)

	assert.True(t, errors.Is(err, errBase))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Invalid image data: illegal base64 data at input byte 4", err.Error())

	var respErr *Error
	assert.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusBadRequest, respErr.Code)
	assert.Equal(t, "Invalid image data", respErr.Message())
}

func TestWrapThroughFmt(t *testing.T) {
	err := fmt.Errorf("register: %w", Wrap(errBase, errors.New("boom")))
	assert.True(t, errors.Is(err, errBase))
}

func TestIsDiffersByCode(t *testing.T) {
	other := NewError(http.StatusInternalServerError, "Invalid image data")
	assert.False(t, errors.Is(errBase, other))
}

func TestWrapPlainError(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, Wrap(plain, errors.New("cause")))
}

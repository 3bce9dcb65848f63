package handlerUtil

import (
	"FaceVerify/pkg/response"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody(t *testing.T) {
	errBadInput := response.NewError(http.StatusBadRequest, "Bad input")

	tests := []struct {
		name    string
		err     error
		code    int
		message string
		detail  string
	}{
		{"plain response error", errBadInput, 400, "Bad input", ""},
		{"wrapped cause", response.Wrap(errBadInput, errors.New("boom")), 400, "Bad input", "boom"},
		{"unknown error", errors.New("kaboom"), 500, MessageUnexpected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := Body(tt.err)
			assert.Equal(t, tt.code, code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.detail, body.Error)
		})
	}
}

func TestHandle(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := New(log)

	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		err := response.Wrap(response.NewError(http.StatusInternalServerError, "Failed"), errors.New("disk full"))
		return h.Handle(c, "req-1", err, c.Path(), "test")
	})
	app.Get("/timeout", h.HandleRequestTimeout)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":false,"message":"Failed","error":"disk full"}`, string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/timeout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestTimeout, resp.StatusCode)
}

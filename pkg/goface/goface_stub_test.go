//go:build !dlib

package goface

import (
	"FaceVerify/pkg/utils"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWithoutDlib(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	enc, err := New(Options{ModelsDir: "models"}, utils.New(), log)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, enc)
}

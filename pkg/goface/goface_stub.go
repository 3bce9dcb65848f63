//go:build !dlib

package goface

import (
	"FaceVerify/pkg/utils"

	"github.com/sirupsen/logrus"
)

func New(opts Options, utils utils.IUtils, log *logrus.Logger) (IGoFace, error) {
	return nil, ErrUnavailable
}

package faceService

import (
	"FaceVerify/internal/api/face"
	faceRepository "FaceVerify/internal/api/face/repository"
	"FaceVerify/internal/entity"
	"FaceVerify/pkg/facematch"
	"FaceVerify/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

// IFaceEncoder is satisfied by both the websocket client and the dlib
// recognizer.
type IFaceEncoder interface {
	Encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error)
	Close()
}

type IFaceService interface {
	Verify(ctx context.Context, dataURL string) (face.VerifyResult, error)
	VerifyImage(ctx context.Context, raw []byte) (face.VerifyResult, error)
	Register(ctx context.Context, rollno int64, dataURL string) (string, error)
}

type faceService struct {
	log        *logrus.Logger
	repo       faceRepository.Repository
	encoder    IFaceEncoder
	comparator facematch.IComparator
	utils      utils.IUtils
}

func NewFaceService(
	log *logrus.Logger,
	repo faceRepository.Repository,
	encoder IFaceEncoder,
	comparator facematch.IComparator,
	utils utils.IUtils,
) IFaceService {
	return &faceService{
		log:        log,
		repo:       repo,
		encoder:    encoder,
		comparator: comparator,
		utils:      utils,
	}
}

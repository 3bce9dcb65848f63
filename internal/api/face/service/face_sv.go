package faceService

import (
	"FaceVerify/internal/api/face"
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/response"
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

func (s *faceService) Verify(ctx context.Context, dataURL string) (face.VerifyResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	img, err := s.utils.DecodeDataURLImage(dataURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to decode image")
		return face.VerifyResult{}, response.Wrap(face.ErrInvalidImage, err)
	}

	return s.verify(ctx, img)
}

func (s *faceService) VerifyImage(ctx context.Context, raw []byte) (face.VerifyResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	img, err := s.utils.DecodeImage(raw)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to decode image")
		return face.VerifyResult{}, response.Wrap(face.ErrInvalidImage, err)
	}

	return s.verify(ctx, img)
}

func (s *faceService) verify(ctx context.Context, img entity.FaceImage) (face.VerifyResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	encodings, err := s.encode(ctx, img)
	if err != nil {
		return face.VerifyResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"faces":      len(encodings),
	}).Info("Detected faces in image")

	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"loaded":     len(records),
			"error":      err.Error(),
		}).Warn("Encoding store read was incomplete, continuing with partial set")
	}

	result := face.VerifyResult{FaceCount: len(encodings), KnownCount: len(records)}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"known":      len(records),
	}).Info("Comparing against known encodings")

	if len(records) == 0 || len(encodings) == 0 {
		s.log.WithField("request_id", requestID).Info("Face not recognized")
		return result, nil
	}

	known := make([]entity.FaceEncoding, len(records))
	for i, r := range records {
		known[i] = r.Encoding
	}

	// first face with any match wins, and within it the first known record
	for _, enc := range encodings {
		matches := s.comparator.Compare(known, enc)
		for i, matched := range matches {
			if !matched {
				continue
			}
			result.Recognized = true
			result.Rollno = records[i].Rollno

			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"rollno":     result.Rollno,
			}).Info("Face recognized")
			return result, nil
		}
	}

	s.log.WithField("request_id", requestID).Info("Face not recognized")
	return result, nil
}

func (s *faceService) Register(ctx context.Context, rollno int64, dataURL string) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if rollno < 0 {
		return "", face.ErrInvalidRollno
	}

	img, err := s.utils.DecodeDataURLImage(dataURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     rollno,
			"error":      err.Error(),
		}).Warn("Failed to decode image")
		return "", response.Wrap(face.ErrInvalidImage, err)
	}

	encodings, err := s.encode(ctx, img)
	if err != nil {
		return "", err
	}

	if len(encodings) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     rollno,
		}).Warn("No face found in enrollment image")
		return "", face.ErrNoFaceFound
	}
	if len(encodings) > 1 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     rollno,
			"faces":      len(encodings),
		}).Debug("Several faces in enrollment image, keeping the first")
	}

	// Nothing is written once the caller has given up on the request.
	if err := ctx.Err(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     rollno,
			"error":      err.Error(),
		}).Warn("Registration abandoned before saving encoding")
		return "", err
	}

	record := entity.FaceRecord{Rollno: rollno, Encoding: encodings[0]}
	if err := s.repo.Upsert(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     rollno,
			"error":      err.Error(),
		}).Error("Failed to save encoding")
		return "", response.Wrap(face.ErrStoreWrite, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"rollno":     rollno,
	}).Info("Face registered")

	return strconv.FormatInt(rollno, 10), nil
}

func (s *faceService) encode(ctx context.Context, img entity.FaceImage) ([]entity.FaceEncoding, error) {
	encodings, err := s.encoder.Encode(ctx, img)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to encode face")
		return nil, response.Wrap(face.ErrEncodingFailure, err)
	}
	return encodings, nil
}

package faceRepository

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/mongo"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const MongoKeyField = "rollno"

type FaceEncodingDocument struct {
	Rollno   int64     `bson:"rollno"`
	Encoding []float64 `bson:"encoding"`
}

type mongoRepository struct {
	collection mongo.IMongo
	log        *logrus.Logger
}

func NewMongoRepository(collection mongo.IMongo, log *logrus.Logger) Repository {
	return &mongoRepository{collection: collection, log: log}
}

func (r *mongoRepository) LoadAll(ctx context.Context) ([]entity.FaceRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	docs, err := r.collection.FindAllRaw(ctx)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"read":       len(docs),
			"error":      err.Error(),
		}).Error("Failed to read encodings collection")
	}

	records := make([]entity.FaceRecord, 0, len(docs))
	errs := []error{err}
	for _, raw := range docs {
		var doc FaceEncodingDocument
		if err := bson.Unmarshal(raw, &doc); err != nil {
			errs = append(errs, err)
			continue
		}
		if doc.Rollno < 0 {
			errs = append(errs, fmt.Errorf("document has negative rollno %d", doc.Rollno))
			continue
		}
		if len(doc.Encoding) == 0 {
			errs = append(errs, fmt.Errorf("rollno %d: %w", doc.Rollno, errEmptyEncoding))
			continue
		}
		records = append(records, entity.FaceRecord{Rollno: doc.Rollno, Encoding: doc.Encoding})
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      len(records),
	}).Info("Loaded known face encodings")

	return records, errors.Join(errs...)
}

func (r *mongoRepository) Upsert(ctx context.Context, record entity.FaceRecord) error {
	requestID := contextPkg.GetRequestID(ctx)

	if len(record.Encoding) == 0 {
		return errEmptyEncoding
	}

	doc := FaceEncodingDocument{Rollno: record.Rollno, Encoding: record.Encoding}
	if err := r.collection.ReplaceByKey(ctx, record.Rollno, doc); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     record.Rollno,
			"error":      err.Error(),
		}).Error("Failed to upsert encoding document")
		return err
	}
	return nil
}

func (r *mongoRepository) Close(ctx context.Context) error {
	return r.collection.Close(ctx)
}

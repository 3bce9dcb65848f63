package faceRepository

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/s3"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

type s3Repository struct {
	client s3.ItfS3
	prefix string
	log    *logrus.Logger
}

// NewS3Repository stores one <prefix><rollno>.npy object per rollno.
func NewS3Repository(client s3.ItfS3, prefix string, log *logrus.Logger) Repository {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &s3Repository{client: client, prefix: prefix, log: log}
}

func (r *s3Repository) LoadAll(ctx context.Context) ([]entity.FaceRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	keys, err := r.client.ListKeys(ctx, r.prefix)
	errs := []error{err}
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"prefix":     r.prefix,
			"error":      err.Error(),
		}).Error("Failed to list encoding objects")
	}

	records := make([]entity.FaceRecord, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, r.prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, npyExt) {
			continue
		}

		rollno, err := rollnoFromNpyName(path.Base(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}

		data, err := r.client.GetObject(ctx, key)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Error("Failed to fetch encoding object")
			errs = append(errs, err)
			continue
		}

		enc, err := unmarshalNpy(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		records = append(records, entity.FaceRecord{Rollno: rollno, Encoding: enc})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Rollno < records[j].Rollno })

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      len(records),
	}).Info("Loaded known face encodings")

	return records, errors.Join(errs...)
}

func (r *s3Repository) Upsert(ctx context.Context, record entity.FaceRecord) error {
	data, err := marshalNpy(record.Encoding)
	if err != nil {
		return err
	}
	return r.client.PutObject(ctx, r.prefix+npyName(record.Rollno), data)
}

func (r *s3Repository) Close(ctx context.Context) error {
	return nil
}

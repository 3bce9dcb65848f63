package faceRepository

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"FaceVerify/pkg/redis"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const DefaultRedisKey = "face:encodings"

type redisRepository struct {
	client redis.IRedis
	key    string
	log    *logrus.Logger
}

// NewRedisRepository keeps every encoding in one hash: field is the rollno,
// value is the encoding as a JSON list.
func NewRedisRepository(client redis.IRedis, key string, log *logrus.Logger) Repository {
	if key == "" {
		key = DefaultRedisKey
	}
	return &redisRepository{client: client, key: key, log: log}
}

func (r *redisRepository) LoadAll(ctx context.Context) ([]entity.FaceRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	values, err := r.client.HashGetAll(ctx, r.key)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        r.key,
			"error":      err.Error(),
		}).Error("Failed to read encodings hash")
		return []entity.FaceRecord{}, err
	}

	records := make([]entity.FaceRecord, 0, len(values))
	var errs []error
	for field, value := range values {
		rollno, ok := parseRollno(field)
		if !ok {
			errs = append(errs, fmt.Errorf("field %q does not name a rollno", field))
			continue
		}

		var enc entity.FaceEncoding
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(value, &enc); err != nil {
			errs = append(errs, fmt.Errorf("rollno %d: %w", rollno, err))
			continue
		}
		if len(enc) == 0 {
			errs = append(errs, fmt.Errorf("rollno %d: %w", rollno, errEmptyEncoding))
			continue
		}
		records = append(records, entity.FaceRecord{Rollno: rollno, Encoding: enc})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Rollno < records[j].Rollno })

	if len(errs) > 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"skipped":    len(errs),
		}).Warn("Skipped unreadable encodings")
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      len(records),
	}).Info("Loaded known face encodings")

	return records, errors.Join(errs...)
}

func (r *redisRepository) Upsert(ctx context.Context, record entity.FaceRecord) error {
	if len(record.Encoding) == 0 {
		return errEmptyEncoding
	}

	value, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(record.Encoding)
	if err != nil {
		return err
	}

	return r.client.HashSet(ctx, r.key, strconv.FormatInt(record.Rollno, 10), value)
}

func (r *redisRepository) Close(ctx context.Context) error {
	return r.client.Close()
}

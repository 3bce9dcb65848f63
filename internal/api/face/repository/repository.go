package faceRepository

import (
	"FaceVerify/internal/entity"
	"context"
	"strconv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverS3       = "s3"
)

// Repository is the encoding store: one encoding per rollno.
//
// LoadAll is best-effort. Entries that cannot be read are skipped and
// reported through the returned error while the readable records are still
// returned, so callers must not discard the records when err != nil.
type Repository interface {
	LoadAll(ctx context.Context) ([]entity.FaceRecord, error)
	Upsert(ctx context.Context, record entity.FaceRecord) error
	Close(ctx context.Context) error
}

func parseRollno(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

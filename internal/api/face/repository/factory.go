package faceRepository

import (
	"FaceVerify/database/postgres"
	"FaceVerify/pkg/mongo"
	"FaceVerify/pkg/redis"
	"FaceVerify/pkg/s3"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Driver   string
	DataDir  string
	Postgres postgres.Options
	Redis    redis.Options
	RedisKey string
	Mongo    mongo.Options
	S3       s3.Options
	S3Prefix string
}

// New opens the backend named by opts.Driver. The returned Repository owns
// its connection and releases it on Close.
func New(ctx context.Context, opts Options, log *logrus.Logger) (Repository, error) {
	log.WithField("driver", opts.Driver).Info("Opening encoding store")

	switch opts.Driver {
	case DriverFile, "":
		return NewFileRepository(opts.DataDir, log)

	case DriverPostgres:
		db, err := postgres.New(ctx, opts.Postgres)
		if err != nil {
			return nil, err
		}
		repo, err := NewPostgresRepository(ctx, db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil

	case DriverRedis:
		client, err := redis.New(ctx, opts.Redis, log)
		if err != nil {
			return nil, err
		}
		return NewRedisRepository(client, opts.RedisKey, log), nil

	case DriverMongo:
		mongoOpts := opts.Mongo
		mongoOpts.KeyField = MongoKeyField
		collection, err := mongo.New(ctx, mongoOpts, log)
		if err != nil {
			return nil, err
		}
		return NewMongoRepository(collection, log), nil

	case DriverS3:
		client, err := s3.New(opts.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Repository(client, opts.S3Prefix, log), nil

	default:
		return nil, fmt.Errorf("unknown face store driver %q", opts.Driver)
	}
}

package faceRepository

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type FaceEncodingDB struct {
	Rollno   int64           `db:"rollno"`
	Encoding pq.Float64Array `db:"encoding"`
}

type postgresRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

// NewPostgresRepository takes ownership of db and creates the table if it
// does not exist yet.
func NewPostgresRepository(ctx context.Context, db *sqlx.DB, log *logrus.Logger) (Repository, error) {
	if _, err := db.ExecContext(ctx, querySchema); err != nil {
		return nil, fmt.Errorf("failed to initialize face_encodings schema: %w", err)
	}
	return &postgresRepository{db: db, log: log}, nil
}

func (r *postgresRepository) LoadAll(ctx context.Context) ([]entity.FaceRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	rows, err := r.db.QueryxContext(ctx, queryLoadEncodings)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("LoadAll query execution err")
		return []entity.FaceRecord{}, err
	}
	defer rows.Close()

	records := []entity.FaceRecord{}
	var errs []error
	for rows.Next() {
		var row FaceEncodingDB
		if err := rows.StructScan(&row); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("LoadAll row scan err")
			errs = append(errs, err)
			continue
		}
		if len(row.Encoding) == 0 {
			errs = append(errs, fmt.Errorf("rollno %d: %w", row.Rollno, errEmptyEncoding))
			continue
		}
		records = append(records, entity.FaceRecord{
			Rollno:   row.Rollno,
			Encoding: entity.FaceEncoding(row.Encoding),
		})
	}
	if err := rows.Err(); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("LoadAll rows iteration err")
		errs = append(errs, err)
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      len(records),
	}).Info("Loaded known face encodings")

	return records, errors.Join(errs...)
}

func (r *postgresRepository) Upsert(ctx context.Context, record entity.FaceRecord) error {
	requestID := contextPkg.GetRequestID(ctx)

	if len(record.Encoding) == 0 {
		return errEmptyEncoding
	}

	argsKV := map[string]interface{}{
		"rollno":     record.Rollno,
		"encoding":   pq.Float64Array(record.Encoding),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpsertEncoding, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Upsert")
		return err
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     record.Rollno,
			"error":      err.Error(),
		}).Error("Database error when upserting encoding")
		return err
	}

	return nil
}

func (r *postgresRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

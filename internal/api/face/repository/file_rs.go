package faceRepository

import (
	"FaceVerify/internal/entity"
	contextPkg "FaceVerify/pkg/context"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type fileRepository struct {
	dir string
	log *logrus.Logger
}

func NewFileRepository(dir string, log *logrus.Logger) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &fileRepository{dir: dir, log: log}, nil
}

func (r *fileRepository) LoadAll(ctx context.Context) ([]entity.FaceRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := os.Stat(r.dir); errors.Is(err, os.ErrNotExist) {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"dir":        r.dir,
		}).Warn("Data directory does not exist, creating")
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", r.dir, err)
		}
		return []entity.FaceRecord{}, nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"dir":        r.dir,
			"error":      err.Error(),
		}).Error("Failed to list data directory")
		return []entity.FaceRecord{}, err
	}

	records := make([]entity.FaceRecord, 0, len(entries))
	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, npyExt) {
			continue
		}

		record, err := r.readRecord(name)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"file":       name,
				"error":      err.Error(),
			}).Error("Failed to load encoding")
			errs = append(errs, err)
			continue
		}
		records = append(records, record)
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      len(records),
	}).Info("Loaded known face encodings")

	return records, errors.Join(errs...)
}

func (r *fileRepository) readRecord(name string) (entity.FaceRecord, error) {
	rollno, err := rollnoFromNpyName(name)
	if err != nil {
		return entity.FaceRecord{}, err
	}

	f, err := os.Open(filepath.Join(r.dir, name))
	if err != nil {
		return entity.FaceRecord{}, err
	}
	defer f.Close()

	enc, err := decodeNpy(f)
	if err != nil {
		return entity.FaceRecord{}, fmt.Errorf("%s: %w", name, err)
	}

	return entity.FaceRecord{Rollno: rollno, Encoding: enc}, nil
}

// Upsert writes to a temp file in the same directory and renames it over
// the target, so readers never see a partially written encoding.
func (r *fileRepository) Upsert(ctx context.Context, record entity.FaceRecord) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", r.dir, err)
	}

	tmp, err := os.CreateTemp(r.dir, fmt.Sprintf(".%d.npy.tmp-*", record.Rollno))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := encodeNpy(tmp, record.Encoding); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	target := filepath.Join(r.dir, npyName(record.Rollno))
	if err := os.Rename(tmpName, target); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rollno":     record.Rollno,
			"error":      err.Error(),
		}).Error("Failed to persist encoding")
		return err
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"rollno":     record.Rollno,
		"path":       target,
	}).Debug("Encoding written")

	return nil
}

func (r *fileRepository) Close(ctx context.Context) error {
	return nil
}

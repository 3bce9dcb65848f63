package faceRepository

import (
	"FaceVerify/database/postgres"
	"FaceVerify/internal/entity"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresRepositoryIntegration runs against a real Postgres container
// and is skipped in short mode or when Docker is unavailable.
func TestPostgresRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// testcontainers panics when the docker socket is missing
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("testcontainers panicked: %v", r)
			}
		}()
		cli, err := testcontainers.NewDockerClientWithOpts(ctx)
		if err != nil {
			return err
		}
		defer cli.Close()
		_, err = cli.Ping(ctx)
		return err
	}()
	if err != nil {
		t.Skipf("Docker not available: %v", err)
	}

	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("faces_test"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := postgres.New(ctx, postgres.Options{DSN: dsn})
	require.NoError(t, err)

	repo, err := NewPostgresRepository(ctx, db, newTestLogger())
	require.NoError(t, err)
	defer repo.Close(ctx)

	records, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, repo.Upsert(ctx, entity.FaceRecord{Rollno: 101, Encoding: testEncoding(1)}))
	require.NoError(t, repo.Upsert(ctx, entity.FaceRecord{Rollno: 7, Encoding: testEncoding(2)}))
	require.NoError(t, repo.Upsert(ctx, entity.FaceRecord{Rollno: 101, Encoding: testEncoding(3)}))

	records, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(7), records[0].Rollno)
	assert.Equal(t, int64(101), records[1].Rollno)
	assert.InDeltaSlice(t, testEncoding(3), records[1].Encoding, 1e-12)

	// schema creation is idempotent
	_, err = NewPostgresRepository(ctx, db, newTestLogger())
	require.NoError(t, err)
}

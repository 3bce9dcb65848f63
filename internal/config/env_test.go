package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "FACE_STORE_DRIVER", "FACE_DATA_DIR", "FACE_MATCH_TOLERANCE", "FACE_ENCODER"} {
		t.Setenv(key, "")
	}

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", env.Port)
	assert.Equal(t, "file", env.FaceStoreDriver)
	assert.Equal(t, "face_data", env.FaceDataDir)
	assert.Equal(t, 0.6, env.FaceMatchTolerance)
	assert.Equal(t, EncoderWebsocket, env.FaceEncoder)
	assert.Equal(t, 10, env.BodyLimitMB)
	assert.Equal(t, 10*time.Second, env.ShutdownTimeout)
	assert.Equal(t, "face:encodings", env.RedisFaceKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("FACE_STORE_DRIVER", "postgres")
	t.Setenv("FACE_MATCH_TOLERANCE", "0.45")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", env.Port)
	assert.Equal(t, "postgres", env.FaceStoreDriver)
	assert.Equal(t, 0.45, env.FaceMatchTolerance)
	assert.Equal(t, 3, env.RedisDB)
	assert.Equal(t, 5*time.Minute, env.DBConnMaxLifetime)
}

func TestLoadEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("FACE_MATCH_TOLERANCE", "loose")

	_, err := LoadEnv()
	assert.ErrorContains(t, err, "FaceMatchTolerance")
}

func TestLoadEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := LoadEnv()
	assert.ErrorContains(t, err, "ShutdownTimeout")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FACE_DATA_DIR=/tmp/faces_from_dotenv\n"), 0o644))
	t.Setenv("FACE_DATA_DIR", "")
	require.NoError(t, os.Unsetenv("FACE_DATA_DIR"))

	require.NoError(t, LoadDotEnv(path))
	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/faces_from_dotenv", env.FaceDataDir)

	assert.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

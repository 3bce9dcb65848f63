package redis

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func dockerAvailable(ctx context.Context) (err error) {
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
}

func TestRedisIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	if err := dockerAvailable(ctx); err != nil {
		t.Skipf("Docker not available: %v", err)
	}

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	client, err := New(ctx, Options{Address: addr}, log)
	require.NoError(t, err)
	defer client.Close()

	values, err := client.HashGetAll(ctx, "faces")
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, client.HashSet(ctx, "faces", "1", "[0.1]"))
	require.NoError(t, client.HashSet(ctx, "faces", "1", "[0.2]"))
	require.NoError(t, client.HashSet(ctx, "faces", "2", "[0.3]"))

	values, err = client.HashGetAll(ctx, "faces")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "[0.2]", "2": "[0.3]"}, values)
}

func TestNewUnreachable(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := New(context.Background(), Options{Address: "127.0.0.1:1"}, log)
	assert.Error(t, err)
}

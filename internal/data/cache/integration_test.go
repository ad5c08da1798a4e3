//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestRedisTrackingCache_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, utils.RedisConfig{Addr: endpoint})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisTrackingCache(client, time.Minute, zap.NewNop())
	entry := Entry{Kind: entity.KindCustomTourRequest, ID: uuid.New()}

	miss, err := c.Get(ctx, "CTR-20270101-0007")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.Set(ctx, "CTR-20270101-0007", entry))

	hit, err := c.Get(ctx, "CTR-20270101-0007")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, entry, *hit)

	require.NoError(t, c.Invalidate(ctx, "CTR-20270101-0007"))
	gone, err := c.Get(ctx, "CTR-20270101-0007")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

package ratelimit

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func checkDockerAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available")
	}
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	checkDockerAvailable(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	client := startRedis(t)

	start := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRedisLimiter(client, Config{Prefix: "test", Capacity: 2, Window: time.Minute})
	limiter.now = func() time.Time { return start.Add(10 * time.Second) }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(ctx, "user:1")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, 1-i, decision.Remaining)
	}

	decision, err := limiter.Allow(ctx, "user:1")
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, 50*time.Second, decision.RetryAfter)

	other, err := limiter.Allow(ctx, "user:2")
	require.NoError(t, err)
	require.True(t, other.Allowed)

	limiter.now = func() time.Time { return start.Add(time.Minute) }
	decision, err = limiter.Allow(ctx, "user:1")
	require.NoError(t, err)
	require.True(t, decision.Allowed)
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	limiter := NewRedisLimiter(client, Config{Capacity: 1})
	decision, err := limiter.Allow(context.Background(), "user:1")
	require.Error(t, err)
	require.True(t, decision.Allowed)
}

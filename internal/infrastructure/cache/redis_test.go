package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-swap/internal/config"

	"github.com/redis/go-redis/v9"
)

func TestNewRedis_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(ctx, config.RedisConfig{}, nil)

	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := r.SetJSON(ctx, "k", []string{"Go"}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be a no-op, got %v", err)
	}
	var out []string
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected close err: %v", err)
	}
}

func TestRedis_UnreachableServerReportsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisWithClient(client, time.Minute, nil)
	defer func() { _ = r.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.SetJSON(ctx, "k", "v", 0); err == nil {
		t.Fatalf("expected error from unreachable server")
	}
	var out string
	if hit, err := r.GetJSON(ctx, "k", &out); err == nil || hit {
		t.Fatalf("expected error and miss, got hit=%v err=%v", hit, err)
	}
}

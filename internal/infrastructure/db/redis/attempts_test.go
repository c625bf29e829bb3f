package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assetcare/asset-admin/internal/core/ports"
)

var _ ports.AttemptStore = (*AttemptStore)(nil)

func TestKeyFormat(t *testing.T) {
	s := NewAttemptStore(nil)
	if got := s.key("default_admin"); got != "signin_attempts:default_admin" {
		t.Fatalf("unexpected key: %q", got)
	}
}

// Fail must report the whole increment-and-expire block as failed when the
// server is unreachable, never a count from a half-applied write.
func TestFail_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	s := NewAttemptStore(client)
	n, err := s.Fail(context.Background(), "someone", time.Now(), time.Minute)
	if err == nil {
		t.Fatal("expected connection error")
	}
	if n != 0 {
		t.Fatalf("expected zero count on error, got %d", n)
	}
}

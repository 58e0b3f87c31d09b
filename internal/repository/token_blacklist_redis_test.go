package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisBlacklist(t *testing.T) (*RedisTokenBlacklist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisTokenBlacklist(client), mr
}

func TestRedisTokenBlacklist_AddAndExists(t *testing.T) {
	bl, _ := newRedisBlacklist(t)
	ctx := context.Background()

	revoked, err := bl.Exists(ctx, "unknown")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if revoked {
		t.Fatal("unknown token reported revoked")
	}

	if err := bl.Add(ctx, "tok-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	revoked, err = bl.Exists(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !revoked {
		t.Fatal("revoked token reported absent")
	}
}

func TestRedisTokenBlacklist_ExpiresWithTTL(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	ctx := context.Background()

	if err := bl.Add(ctx, "tok-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	revoked, err := bl.Exists(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if revoked {
		t.Fatal("token still revoked after TTL elapsed")
	}
}

func TestRedisTokenBlacklist_ReAddExtendsRevocation(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	ctx := context.Background()

	if err := bl.Add(ctx, "tok-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := bl.Add(ctx, "tok-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	mr.FastForward(30 * time.Minute)

	revoked, err := bl.Exists(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !revoked {
		t.Fatal("re-added token dropped before its refreshed expiry")
	}
}

func TestRedisTokenBlacklist_AddPastExpiry(t *testing.T) {
	bl, _ := newRedisBlacklist(t)
	ctx := context.Background()

	if err := bl.Add(ctx, "tok-1", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	revoked, err := bl.Exists(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if revoked {
		t.Fatal("token with past expiry stored as revoked")
	}
}

func TestRedisTokenBlacklist_DeleteExpired(t *testing.T) {
	bl, _ := newRedisBlacklist(t)

	removed, err := bl.DeleteExpired(context.Background())
	if err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}
	if removed != 0 {
		t.Fatalf("DeleteExpired = %d, want 0 (redis TTL owns eviction)", removed)
	}
}

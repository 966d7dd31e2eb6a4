package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisKVClient struct {
	lastSetKey string
	lastSetVal interface{}
	lastSetTTL time.Duration
	lastExists []string
	lastDel    []string

	setErr    error
	existsErr error
	existsN   int64
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastExists = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

func (m *mockRedisKVClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func newTestRedisStore(m *mockRedisKVClient) *redisViewerTokenStore {
	return &redisViewerTokenStore{client: m, prefix: "csvchat:viewer:", timeout: time.Second}
}

func TestRedisViewerTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("store sets prefixed key with ttl", func(t *testing.T) {
		m := &mockRedisKVClient{}
		s := newTestRedisStore(m)
		if err := s.Store(ctx, "jti-1", "viewer-1", time.Hour); err != nil {
			t.Fatalf("store: %v", err)
		}
		if m.lastSetKey != "csvchat:viewer:jti-1" || m.lastSetVal != "viewer-1" || m.lastSetTTL != time.Hour {
			t.Fatalf("unexpected set call: key=%q val=%v ttl=%v", m.lastSetKey, m.lastSetVal, m.lastSetTTL)
		}
	})

	t.Run("blank jti is a no-op", func(t *testing.T) {
		m := &mockRedisKVClient{}
		s := newTestRedisStore(m)
		if err := s.Store(ctx, "  ", "viewer-1", time.Hour); err != nil {
			t.Fatalf("store: %v", err)
		}
		if m.lastSetKey != "" {
			t.Fatalf("expected no redis call")
		}
		ok, err := s.Exists(ctx, "")
		if err != nil || ok {
			t.Fatalf("expected false,nil for blank jti, got %v,%v", ok, err)
		}
	})

	t.Run("exists reports count", func(t *testing.T) {
		m := &mockRedisKVClient{existsN: 1}
		s := newTestRedisStore(m)
		ok, err := s.Exists(ctx, "jti-1")
		if err != nil || !ok {
			t.Fatalf("expected exists, got %v,%v", ok, err)
		}
		if len(m.lastExists) != 1 || m.lastExists[0] != "csvchat:viewer:jti-1" {
			t.Fatalf("unexpected keys: %+v", m.lastExists)
		}
	})

	t.Run("exists propagates errors", func(t *testing.T) {
		boom := errors.New("redis down")
		s := newTestRedisStore(&mockRedisKVClient{existsErr: boom})
		if _, err := s.Exists(ctx, "jti-1"); !errors.Is(err, boom) {
			t.Fatalf("expected redis error, got %v", err)
		}
	})

	t.Run("revoke deletes key", func(t *testing.T) {
		m := &mockRedisKVClient{}
		s := newTestRedisStore(m)
		if err := s.Revoke(ctx, "jti-1"); err != nil {
			t.Fatalf("revoke: %v", err)
		}
		if len(m.lastDel) != 1 || m.lastDel[0] != "csvchat:viewer:jti-1" {
			t.Fatalf("unexpected del keys: %+v", m.lastDel)
		}
	})
}

func TestNewRedisViewerTokenStore_NilClient(t *testing.T) {
	if NewRedisViewerTokenStore(nil) != nil {
		t.Fatalf("expected nil store for nil client")
	}
}

func TestMemoryViewerTokenStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	s := &memoryViewerTokenStore{items: map[string]time.Time{}, now: func() time.Time { return now }}

	if err := s.Store(ctx, "jti-1", "v1", time.Minute); err != nil {
		t.Fatalf("store: %v", err)
	}
	if ok, _ := s.Exists(ctx, "jti-1"); !ok {
		t.Fatalf("expected token present")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := s.Exists(ctx, "jti-1"); ok {
		t.Fatalf("expected token expired")
	}
	if _, still := s.items["jti-1"]; still {
		t.Fatalf("expected expired entry pruned")
	}
}

func TestMemoryViewerTokenStore_Revoke(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryViewerTokenStore()
	_ = s.Store(ctx, "jti-1", "v1", time.Hour)
	_ = s.Revoke(ctx, "jti-1")
	if ok, _ := s.Exists(ctx, "jti-1"); ok {
		t.Fatalf("expected revoked token gone")
	}
}

func TestMemoryViewerTokenStore_StorePrunesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	s := &memoryViewerTokenStore{items: map[string]time.Time{}, now: func() time.Time { return now }}

	for _, jti := range []string{"a", "b", "c"} {
		_ = s.Store(ctx, jti, "v", time.Minute)
	}
	now = now.Add(2 * time.Minute)
	_ = s.Store(ctx, "d", "v", time.Minute)

	if len(s.items) != 1 {
		t.Fatalf("expected expired tokens pruned on store, got %d entries", len(s.items))
	}
}

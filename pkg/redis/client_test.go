package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.RowsKey("abc123")
	if err := client.Set(ctx, key, `[{"sale_id":"s1"}]`, 10*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `[{"sale_id":"s1"}]` {
		t.Fatalf("unexpected cached value %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestGetMissSurfacesNil(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	if _, err := client.Get(context.Background(), client.DateLimitsKey()); err != Nil {
		t.Fatalf("expected Nil sentinel on miss, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.RowsKey("fp"); got != "prato:rows:fp" {
		t.Fatalf("unexpected rows key %s", got)
	}
	if got := client.HistoryKey(); got != "prato:rows:history" {
		t.Fatalf("unexpected history key %s", got)
	}
	if got := client.DateLimitsKey(); got != "prato:date_limits" {
		t.Fatalf("unexpected date limits key %s", got)
	}
	if got := client.ReportKey("overview", "fp"); got != "prato:report:overview:fp" {
		t.Fatalf("unexpected report key %s", got)
	}
	if got := client.ReportKey("overview", ""); got != "prato:report:overview" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error for uninitialized client")
	}
	if err := client.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error for uninitialized client")
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

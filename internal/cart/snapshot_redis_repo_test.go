package cart

import (
	"context"
	"testing"
	"time"

	redispkg "github.com/harvestlink-app/harvestlink-backend/pkg/redis"
)

type fakeKV struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redispkg.Nil
	}
	return value, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeKV) SnapshotKey(sessionKey string) string {
	return "hl:cart:" + sessionKey
}

func newRedisRepo(t *testing.T, kv snapshotKV, ttl time.Duration) *RedisSnapshotRepository {
	t.Helper()
	repo, err := NewRedisSnapshotRepository(kv, ttl, nil, nil)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestRedisRepoLoadMissingReturnsEmptyCart(t *testing.T) {
	t.Parallel()

	repo := newRedisRepo(t, newFakeKV(), 0)

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestRedisRepoRoundTripWithTTL(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	repo := newRedisRepo(t, kv, time.Hour)

	c := NewCart()
	item := testItem("Tomatoes", 4, 1, 100)
	if err := c.AddItem(testSupplier("Farm"), item, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Save(context.Background(), "session-1", c); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.ttls["hl:cart:session-1"] != time.Hour {
		t.Fatalf("expected ttl forwarded, got %v", kv.ttls["hl:cart:session-1"])
	}

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != item.ProductID {
		t.Fatalf("round trip lost items: %+v", got.Items)
	}
}

func TestRedisRepoDiscardsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.values["hl:cart:session-1"] = "{not json"
	repo := newRedisRepo(t, kv, 0)

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("corrupt snapshot must fall back to empty cart, got %+v", got)
	}
}

func TestRedisRepoDelete(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	repo := newRedisRepo(t, kv, 0)

	c := NewCart()
	if err := c.AddItem(testSupplier("Farm"), testItem("Tomatoes", 4, 1, 100), 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Save(context.Background(), "session-1", c); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.Delete(context.Background(), "session-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := kv.values["hl:cart:session-1"]; ok {
		t.Fatal("expected key removed")
	}
}

package cart

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&SnapshotRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func newDBRepo(t *testing.T) *DBSnapshotRepository {
	t.Helper()
	repo, err := NewDBSnapshotRepository(newTestDB(t), nil, nil)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestDBRepoLoadMissingReturnsEmptyCart(t *testing.T) {
	repo := newDBRepo(t)

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() || got.Supplier != nil {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestDBRepoSaveLoadRoundTrip(t *testing.T) {
	repo := newDBRepo(t)

	c := NewCart()
	supplier := testSupplier("Green Valley Farm")
	item := testItem("Tomatoes", 4, 1, 100)
	if err := c.AddItem(supplier, item, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Save(context.Background(), "session-1", c); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != item.ProductID {
		t.Fatalf("round trip lost items: %+v", got.Items)
	}
	if got.Supplier == nil || got.Supplier.ID != supplier.ID {
		t.Fatalf("round trip lost supplier: %+v", got.Supplier)
	}
}

func TestDBRepoSaveUpserts(t *testing.T) {
	repo := newDBRepo(t)

	c := NewCart()
	if err := c.AddItem(testSupplier("Farm"), testItem("Tomatoes", 4, 1, 100), 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Save(context.Background(), "session-1", c); err != nil {
		t.Fatalf("first save: %v", err)
	}

	c.Clear()
	if err := repo.Save(context.Background(), "session-1", c); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("expected cleared snapshot, got %+v", got)
	}
}

func TestDBRepoDiscardsCorruptSnapshot(t *testing.T) {
	repo := newDBRepo(t)

	record := SnapshotRecord{SessionKey: "session-1", Version: SnapshotVersion, Payload: "{not json"}
	if err := repo.db.Create(&record).Error; err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("corrupt snapshot must fall back to empty cart, got %+v", got)
	}
}

func TestDBRepoDiscardsVersionMismatch(t *testing.T) {
	repo := newDBRepo(t)

	record := SnapshotRecord{
		SessionKey: "session-1",
		Version:    SnapshotVersion + 1,
		Payload:    `{"version":99,"cart":{"items":[]}}`,
	}
	if err := repo.db.Create(&record).Error; err != nil {
		t.Fatalf("seed mismatched record: %v", err)
	}

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("mismatched snapshot must fall back to empty cart, got %+v", got)
	}
}

func TestDBRepoDelete(t *testing.T) {
	repo := newDBRepo(t)

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

	got, err := repo.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("expected empty cart after delete, got %+v", got)
	}
}

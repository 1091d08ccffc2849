package pkg

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// snapshot is a collection stored as one serialized row, the layout the
// local store backend writes inside transactions.
type snapshot struct {
	Collection string `gorm:"primaryKey;size:64"`
	Body       string `gorm:"type:text"`
}

func newSnapshotDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tx.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func collections(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var names []string
	if err := db.Model(&snapshot{}).Order("collection").Pluck("collection", &names).Error; err != nil {
		t.Fatalf("list collections: %v", err)
	}
	return names
}

func TestWithTx_CommitsEveryWrite(t *testing.T) {
	db := newSnapshotDB(t)

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		for _, s := range []snapshot{
			{Collection: "tataibari_orders", Body: `[{"id":1}]`},
			{Collection: "tataibari_products", Body: `[{"id":1},{"id":2}]`},
		} {
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	got := collections(t, db)
	if len(got) != 2 || got[0] != "tataibari_orders" || got[1] != "tataibari_products" {
		t.Errorf("collections = %v", got)
	}
}

func TestWithTx_ErrorDiscardsEarlierWrites(t *testing.T) {
	db := newSnapshotDB(t)
	if err := db.Create(&snapshot{Collection: "tataibari_users", Body: `[]`}).Error; err != nil {
		t.Fatalf("seed row: %v", err)
	}

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&snapshot{Collection: "tataibari_media", Body: `[]`}).Error; err != nil {
			return err
		}
		// Duplicate primary key fails the second write.
		return tx.Create(&snapshot{Collection: "tataibari_users", Body: `[{"id":9}]`}).Error
	})
	if err == nil {
		t.Fatal("expected the duplicate write to fail")
	}

	got := collections(t, db)
	if len(got) != 1 || got[0] != "tataibari_users" {
		t.Errorf("collections = %v; want only the pre-existing row", got)
	}
	var users snapshot
	db.First(&users, "collection = ?", "tataibari_users")
	if users.Body != `[]` {
		t.Errorf("pre-existing row changed to %s", users.Body)
	}
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := newSnapshotDB(t)

	defer func() {
		if r := recover(); r != "encode pages" {
			t.Fatalf("recovered %v; want the original panic value", r)
		}
		if got := collections(t, db); len(got) != 0 {
			t.Errorf("collections = %v; want none after rollback", got)
		}
	}()

	_ = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&snapshot{Collection: "tataibari_pages", Body: `[]`}).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
		panic("encode pages")
	})
}

func TestWithTx_BeginFailure(t *testing.T) {
	db := newSnapshotDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	sqlDB.Close()

	called := false
	err = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected an error from a closed database")
	}
	if called {
		t.Error("fn must not run when the transaction cannot begin")
	}
}

func TestWithTx_ReturnsFnError(t *testing.T) {
	db := newSnapshotDB(t)
	sentinel := errors.New("collection too large")

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v; want the fn error", err)
	}
}

func TestWithTx_CancelledContext(t *testing.T) {
	db := newSnapshotDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithTx(ctx, db, func(tx *gorm.DB) error {
		return tx.Create(&snapshot{Collection: "tataibari_logs", Body: `[]`}).Error
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
	if got := collections(t, db); len(got) != 0 {
		t.Errorf("collections = %v; want none", got)
	}
}

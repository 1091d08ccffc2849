package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// kvEntry is one row of the persisted key-value table.
type kvEntry struct {
	Name      string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name independently of GORM naming strategy.
func (kvEntry) TableName() string {
	return "admin_kv"
}

// GormKV implements KV on a single GORM-managed table.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV creates the key-value table if needed and returns a KV backed by it.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &GormKV{db: db}, nil
}

// Get reads the value stored under key.
func (g *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e kvEntry
	if err := g.db.WithContext(ctx).First(&e, "name = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, mapError(err)
	}
	return []byte(e.Value), true, nil
}

// Set upserts the value under key.
func (g *GormKV) Set(ctx context.Context, key string, value []byte) error {
	return upsert(g.db.WithContext(ctx), key, value)
}

// SetMany upserts all entries in one transaction.
func (g *GormKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	return pkg.WithTx(ctx, g.db, func(tx *gorm.DB) error {
		for k, v := range entries {
			if err := upsert(tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(db *gorm.DB, key string, value []byte) error {
	e := kvEntry{Name: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	return mapError(err)
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

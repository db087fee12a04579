package clientsync

import (
	"context"

	"github.com/sudsworks/laundromat_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the reconciler's view of the record stores. It is passed in
// explicitly (not read from a package global) so the reconciler can be tested
// against an in-memory store.
type Store interface {
	// InsertSales appends a batch of sale sheets and reports how many rows
	// the store persisted.
	InsertSales(ctx context.Context, sales []models.Sale) (int, error)
	// InsertTimesheets appends a batch of clock punches.
	InsertTimesheets(ctx context.Context, entries []models.Timesheet) (int, error)
	// UpsertInventoryItem creates or updates an item keyed by its name.
	UpsertInventoryItem(ctx context.Context, item *models.InventoryItem) error
	// DeleteInventoryItem removes an item by name. A missing row is success.
	DeleteInventoryItem(ctx context.Context, name string) error
	// InsertInventoryLog appends one stock-change note.
	InsertInventoryLog(ctx context.Context, entry *models.InventoryLog) error
}

const insertBatchSize = 100

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InsertSales(ctx context.Context, sales []models.Sale) (int, error) {
	if len(sales) == 0 {
		return 0, nil
	}
	tx := s.db.WithContext(ctx).CreateInBatches(&sales, insertBatchSize)
	return int(tx.RowsAffected), tx.Error
}

func (s *GormStore) InsertTimesheets(ctx context.Context, entries []models.Timesheet) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx := s.db.WithContext(ctx).CreateInBatches(&entries, insertBatchSize)
	return int(tx.RowsAffected), tx.Error
}

func (s *GormStore) UpsertInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_stock", "max_stock", "min_stock", "unit", "last_updated", "updated_at",
		}),
	}).Create(item).Error
}

func (s *GormStore) DeleteInventoryItem(ctx context.Context, name string) error {
	// RowsAffected == 0 means the item was already gone; the caller's intent
	// is satisfied either way.
	return s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.InventoryItem{}).Error
}

func (s *GormStore) InsertInventoryLog(ctx context.Context, entry *models.InventoryLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

package models

import (
	"context"
	"errors"
	"time"

	"github.com/sudsworks/laundromat_backend/config"
	"github.com/sudsworks/laundromat_backend/utils"
	"gorm.io/gorm"
)

// InventoryItem is keyed by Name for all client-facing purposes: the offline
// client invents placeholder ids for items created while offline, so the name
// is the only identifier both sides agree on. The unique index here is the
// sole enforcement point for name uniqueness.
type InventoryItem struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Name         string    `gorm:"size:191;uniqueIndex;not null" json:"name"`
	CurrentStock int       `gorm:"default:0" json:"currentStock"`
	MaxStock     int       `gorm:"default:0" json:"maxStock"`
	MinStock     int       `gorm:"default:0" json:"minStock"`
	Unit         string    `gorm:"size:50" json:"unit"`
	LastUpdated  time.Time `json:"lastUpdated"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// InventoryLog is an append-only note about a stock change. ItemName carries
// the item's business key (exposed as itemId to the client); the row is
// informational and never blocks or rolls back the item write it describes.
type InventoryLog struct {
	ID            int       `gorm:"primary_key" json:"id"`
	ItemName      string    `gorm:"size:191;index;not null" json:"itemId"`
	PreviousStock int       `gorm:"default:0" json:"previousStock"`
	NewStock      int       `gorm:"default:0" json:"newStock"`
	UpdateType    string    `gorm:"size:20;not null" json:"updateType"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
	UpdatedBy     string    `gorm:"size:100" json:"updatedBy"`
	Notes         string    `gorm:"size:500" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type NewInventoryItem struct {
	Name         string `json:"name" validate:"required"`
	CurrentStock int    `json:"currentStock" validate:"min=0"`
	MaxStock     int    `json:"maxStock" validate:"min=0"`
	MinStock     int    `json:"minStock" validate:"min=0"`
	Unit         string `json:"unit"`
}

type NewInventoryLog struct {
	ItemName      string    `json:"itemId" validate:"required"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	UpdateType    string    `json:"updateType" validate:"required,oneof=restock usage adjustment"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedBy     string    `json:"updatedBy"`
	Notes         string    `json:"notes"`
}

func CreateInventoryItem(ctx context.Context, input *NewInventoryItem) (*InventoryItem, error) {
	if err := utils.ValidateUnique[InventoryItem](ctx, "name", input.Name, 0); err != nil {
		return nil, err
	}

	item := InventoryItem{
		Name:         input.Name,
		CurrentStock: input.CurrentStock,
		MaxStock:     input.MaxStock,
		MinStock:     input.MinStock,
		Unit:         input.Unit,
		LastUpdated:  time.Now(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateInventoryItemByName(ctx context.Context, name string, input *NewInventoryItem) (*InventoryItem, error) {
	var item InventoryItem
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("name = ?", name).Take(&item).Error; err != nil {
		return nil, err
	}

	if input.Name != "" && input.Name != name {
		if err := utils.ValidateUnique[InventoryItem](ctx, "name", input.Name, item.ID); err != nil {
			return nil, err
		}
	} else {
		input.Name = name
	}

	err := db.WithContext(ctx).Model(&item).Updates(map[string]interface{}{
		"Name":         input.Name,
		"CurrentStock": input.CurrentStock,
		"MaxStock":     input.MaxStock,
		"MinStock":     input.MinStock,
		"Unit":         input.Unit,
		"LastUpdated":  time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteInventoryItemByName removes an item. Deleting a name that does not
// exist is not an error: the caller's intent is already satisfied.
func DeleteInventoryItemByName(ctx context.Context, name string) (*InventoryItem, error) {
	var item InventoryItem
	db := config.GetDB()
	err := db.WithContext(ctx).Where("name = ?", name).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetInventoryItems(ctx context.Context) ([]*InventoryItem, error) {
	db := config.GetDB()
	var results []*InventoryItem
	if err := db.WithContext(ctx).Order("name asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetInventoryItemByName(ctx context.Context, name string) (*InventoryItem, error) {
	var item InventoryItem
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("name = ?", name).Take(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func CreateInventoryLog(ctx context.Context, input *NewInventoryLog) (*InventoryLog, error) {
	if !IsValidInventoryUpdateType(input.UpdateType) {
		return nil, errors.New("updateType must be restock, usage or adjustment")
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	logEntry := InventoryLog{
		ItemName:      input.ItemName,
		PreviousStock: input.PreviousStock,
		NewStock:      input.NewStock,
		UpdateType:    input.UpdateType,
		Timestamp:     timestamp,
		UpdatedBy:     input.UpdatedBy,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&logEntry).Error; err != nil {
		return nil, err
	}
	return &logEntry, nil
}

func GetInventoryLogs(ctx context.Context, itemName string, limit int) ([]*InventoryLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&InventoryLog{})
	if itemName != "" {
		dbCtx = dbCtx.Where("item_name = ?", itemName)
	}

	var results []*InventoryLog
	if err := dbCtx.Order("timestamp desc, id desc").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sudsworks/laundromat_backend/config"
)

// Sale is one day's sale sheet: counter readings plus drop-off tickets.
// Date is the business date (YYYY-MM-DD), not an instant; two sheets for the
// same date are allowed (morning/evening shifts enter separately).
type Sale struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Date           string          `gorm:"size:10;index;not null" json:"date"`
	Coin           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"coin"`
	Hopper         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"hopper"`
	Soap           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"soap"`
	Vending        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"vending"`
	DropOffAmount1 decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"dropOffAmount1"`
	DropOffCode    string          `gorm:"size:50" json:"dropOffCode"`
	DropOffAmount2 decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"dropOffAmount2"`
	RecordedBy     string          `gorm:"size:100" json:"recordedBy"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewSale struct {
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Coin           decimal.Decimal `json:"coin"`
	Hopper         decimal.Decimal `json:"hopper"`
	Soap           decimal.Decimal `json:"soap"`
	Vending        decimal.Decimal `json:"vending"`
	DropOffAmount1 decimal.Decimal `json:"dropOffAmount1"`
	DropOffCode    string          `json:"dropOffCode"`
	DropOffAmount2 decimal.Decimal `json:"dropOffAmount2"`
	RecordedBy     string          `json:"recordedBy"`
}

func (input *NewSale) toModel() Sale {
	return Sale{
		Date:           input.Date,
		Coin:           input.Coin,
		Hopper:         input.Hopper,
		Soap:           input.Soap,
		Vending:        input.Vending,
		DropOffAmount1: input.DropOffAmount1,
		DropOffCode:    input.DropOffCode,
		DropOffAmount2: input.DropOffAmount2,
		RecordedBy:     input.RecordedBy,
	}
}

// Total is the sheet's takings across all counters and drop-offs.
func (s Sale) Total() decimal.Decimal {
	return s.Coin.Add(s.Hopper).Add(s.Soap).Add(s.Vending).Add(s.DropOffAmount1).Add(s.DropOffAmount2)
}

func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {
	sale := input.toModel()

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func UpdateSale(ctx context.Context, id int, input *NewSale) (*Sale, error) {
	var sale Sale
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&sale).Error; err != nil {
		return nil, err
	}

	err := db.WithContext(ctx).Model(&sale).Updates(map[string]interface{}{
		"Date":           input.Date,
		"Coin":           input.Coin,
		"Hopper":         input.Hopper,
		"Soap":           input.Soap,
		"Vending":        input.Vending,
		"DropOffAmount1": input.DropOffAmount1,
		"DropOffCode":    input.DropOffCode,
		"DropOffAmount2": input.DropOffAmount2,
		"RecordedBy":     input.RecordedBy,
	}).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func DeleteSale(ctx context.Context, id int) (*Sale, error) {
	var sale Sale
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&sale).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSales lists sale sheets, newest business date first. from/to bound the
// business date (inclusive), either may be empty.
func GetSales(ctx context.Context, from string, to string, limit int) ([]*Sale, error) {
	if limit <= 0 || limit > 366 {
		limit = 31
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Sale{})
	if from != "" {
		dbCtx = dbCtx.Where("date >= ?", from)
	}
	if to != "" {
		dbCtx = dbCtx.Where("date <= ?", to)
	}

	var results []*Sale
	if err := dbCtx.Order("date desc, id desc").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

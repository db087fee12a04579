package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sudsworks/laundromat_backend/config"
)

const (
	dashboardCacheKey = "Dashboard:Summary"
	dashboardCacheTTL = 60 * time.Second
)

type DashboardSummary struct {
	Date          string           `json:"date"`
	TodayTotal    decimal.Decimal  `json:"todayTotal"`
	MonthTotal    decimal.Decimal  `json:"monthTotal"`
	SaleDays      int              `json:"saleDays"`
	LowStock      []*InventoryItem `json:"lowStock"`
	RecentPunches []*Timesheet     `json:"recentPunches"`
}

type salesTotalRow struct {
	Total    decimal.Decimal `json:"total"`
	SaleDays int             `json:"sale_days"`
}

// GetDashboardSummary computes today's and this month's takings plus the
// low-stock list. Uncached; see CachedDashboardSummary.
func GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	db := config.GetDB()

	now := time.Now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	sumExpr := "COALESCE(SUM(coin + hopper + soap + vending + drop_off_amount1 + drop_off_amount2), 0)"

	var todayRow salesTotalRow
	err := db.WithContext(ctx).Raw(
		"SELECT "+sumExpr+" AS total, COUNT(DISTINCT date) AS sale_days FROM sales WHERE date = ?",
		today,
	).Scan(&todayRow).Error
	if err != nil {
		return nil, err
	}

	var monthRow salesTotalRow
	err = db.WithContext(ctx).Raw(
		"SELECT "+sumExpr+" AS total, COUNT(DISTINCT date) AS sale_days FROM sales WHERE date LIKE ?",
		month+"-%",
	).Scan(&monthRow).Error
	if err != nil {
		return nil, err
	}

	var lowStock []*InventoryItem
	err = db.WithContext(ctx).
		Where("current_stock <= min_stock").
		Order("name asc").
		Find(&lowStock).Error
	if err != nil {
		return nil, err
	}

	punches, err := GetTimesheets(ctx, "", "", 10)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Date:          today,
		TodayTotal:    todayRow.Total,
		MonthTotal:    monthRow.Total,
		SaleDays:      monthRow.SaleDays,
		LowStock:      lowStock,
		RecentPunches: punches,
	}, nil
}

// CachedDashboardSummary serves the summary from redis when fresh. A cache
// miss (or no redis at all) falls through to the live query.
func CachedDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	if ok, err := config.GetRedisObject(dashboardCacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	summary, err := GetDashboardSummary(ctx)
	if err != nil {
		return nil, err
	}
	_ = config.SetRedisObject(dashboardCacheKey, summary, dashboardCacheTTL)
	return summary, nil
}

// InvalidateDashboardCache drops the cached summary. Called by every write
// path that changes the numbers (sync, sale and inventory mutations).
func InvalidateDashboardCache() {
	_ = config.RemoveRedisKey(dashboardCacheKey)
}

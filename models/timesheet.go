package models

import (
	"context"
	"errors"
	"time"

	"github.com/sudsworks/laundromat_backend/config"
)

// Timesheet is one clock punch. Punches are append-only; paired in/out rows
// are derived at read time (dashboard hours query), never stored.
type Timesheet struct {
	ID           int       `gorm:"primary_key" json:"id"`
	EmployeeName string    `gorm:"size:100;index;not null" json:"employeeName"`
	Date         string    `gorm:"size:10;index;not null" json:"date"`
	Time         string    `gorm:"size:8;not null" json:"time"`
	Action       string    `gorm:"size:10;not null" json:"action"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type NewTimesheet struct {
	EmployeeName string `json:"employeeName" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required"`
	Action       string `json:"action" validate:"required,oneof=in out"`
}

func CreateTimesheet(ctx context.Context, input *NewTimesheet) (*Timesheet, error) {
	if !IsValidTimesheetAction(input.Action) {
		return nil, errors.New("action must be 'in' or 'out'")
	}

	entry := Timesheet{
		EmployeeName: input.EmployeeName,
		Date:         input.Date,
		Time:         input.Time,
		Action:       input.Action,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func DeleteTimesheet(ctx context.Context, id int) (*Timesheet, error) {
	var entry Timesheet
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&entry).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func GetTimesheets(ctx context.Context, employeeName string, date string, limit int) ([]*Timesheet, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Timesheet{})
	if employeeName != "" {
		dbCtx = dbCtx.Where("employee_name = ?", employeeName)
	}
	if date != "" {
		dbCtx = dbCtx.Where("date = ?", date)
	}

	var results []*Timesheet
	if err := dbCtx.Order("date desc, time desc, id desc").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sudsworks/laundromat_backend/config"
	"github.com/sudsworks/laundromat_backend/utils"
)

type Employee struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Name       string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Phone      string          `gorm:"size:30" json:"phone"`
	Position   string          `gorm:"size:100" json:"position"`
	HourlyRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"hourlyRate"`
	IsActive   *bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewEmployee struct {
	Name       string          `json:"name" validate:"required"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	IsActive   *bool           `json:"isActive"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewEmployee) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Employee](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if input.Phone != "" {
		normalized, err := utils.NormalizePhoneNumber(input.Phone, "")
		if err != nil {
			return err
		}
		input.Phone = normalized
	}
	return nil
}

func CreateEmployee(ctx context.Context, input *NewEmployee) (*Employee, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	isActive := input.IsActive
	if isActive == nil {
		isActive = utils.NewTrue()
	}

	employee := Employee{
		Name:       input.Name,
		Phone:      input.Phone,
		Position:   input.Position,
		HourlyRate: input.HourlyRate,
		IsActive:   isActive,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func UpdateEmployee(ctx context.Context, id int, input *NewEmployee) (*Employee, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	var employee Employee
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&employee).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"Name":       input.Name,
		"Phone":      input.Phone,
		"Position":   input.Position,
		"HourlyRate": input.HourlyRate,
		"IsActive":   utils.DereferencePtr(input.IsActive, *employee.IsActive),
	}
	if err := db.WithContext(ctx).Model(&employee).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func DeleteEmployee(ctx context.Context, id int) (*Employee, error) {
	var employee Employee
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&employee).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func GetEmployees(ctx context.Context, activeOnly bool) ([]*Employee, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Employee{})
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}

	var results []*Employee
	if err := dbCtx.Order("name asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

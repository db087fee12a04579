package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sudsworks/laundromat_backend/models"
	"github.com/xuri/excelize/v2"
)

// BuildMonthlySalesWorkbook renders every sale sheet of a month (YYYY-MM)
// into an xlsx workbook, one row per sheet, with a totals row at the bottom.
func BuildMonthlySalesWorkbook(ctx context.Context, month string) (*excelize.File, error) {
	sales, err := models.GetSales(ctx, month+"-01", month+"-31", 366)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Coin", "Hopper", "Soap", "Vending", "DropOff1", "DropOffCode", "DropOff2", "Total", "RecordedBy"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	grandTotal := decimal.Zero
	// GetSales returns newest first; the report reads oldest first.
	row := 2
	for i := len(sales) - 1; i >= 0; i-- {
		s := sales[i]
		total := s.Total()
		grandTotal = grandTotal.Add(total)

		values := []interface{}{
			s.Date,
			s.Coin.InexactFloat64(),
			s.Hopper.InexactFloat64(),
			s.Soap.InexactFloat64(),
			s.Vending.InexactFloat64(),
			s.DropOffAmount1.InexactFloat64(),
			s.DropOffCode,
			s.DropOffAmount2.InexactFloat64(),
			total.InexactFloat64(),
			s.RecordedBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("I%d", row), grandTotal.InexactFloat64())

	return f, nil
}

package api

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/models/reports"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

func ExportSalesReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		month := c.Query("month")
		if !monthPattern.MatchString(month) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}

		f, err := reports.BuildMonthlySalesWorkbook(c.Request.Context(), month)
		if err != nil {
			writeModelError(c, err)
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales-%s.xlsx", month))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write file"})
		}
	}
}

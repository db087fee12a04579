package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/models"
)

func ListSalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := models.GetSales(c.Request.Context(), c.Query("from"), c.Query("to"), intQuery(c, "limit", 31))
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

func CreateSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSale
		if !bindAndValidate(c, &input) {
			return
		}
		sale, err := models.CreateSale(c.Request.Context(), &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		models.InvalidateDashboardCache()
		c.JSON(http.StatusCreated, sale)
	}
}

func UpdateSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewSale
		if !bindAndValidate(c, &input) {
			return
		}
		sale, err := models.UpdateSale(c.Request.Context(), id, &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		models.InvalidateDashboardCache()
		c.JSON(http.StatusOK, sale)
	}
}

func DeleteSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		sale, err := models.DeleteSale(c.Request.Context(), id)
		if err != nil {
			writeModelError(c, err)
			return
		}
		models.InvalidateDashboardCache()
		c.JSON(http.StatusOK, sale)
	}
}

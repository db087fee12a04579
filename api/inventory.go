package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/models"
)

func ListInventoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := models.GetInventoryItems(c.Request.Context())
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func CreateInventoryItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInventoryItem
		if !bindAndValidate(c, &input) {
			return
		}
		item, err := models.CreateInventoryItem(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		models.InvalidateDashboardCache()
		c.JSON(http.StatusCreated, item)
	}
}

// Inventory routes are keyed by name, mirroring the sync identity rule:
// the name is the business key, server ids stay server-side.
func UpdateInventoryItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		var input models.NewInventoryItem
		if !bindAndValidate(c, &input) {
			return
		}
		item, err := models.UpdateInventoryItemByName(c.Request.Context(), name, &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		models.InvalidateDashboardCache()
		c.JSON(http.StatusOK, item)
	}
}

func DeleteInventoryItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := models.DeleteInventoryItemByName(c.Request.Context(), c.Param("name"))
		if err != nil {
			writeModelError(c, err)
			return
		}
		models.InvalidateDashboardCache()
		if item == nil {
			// Already gone; same end state.
			c.JSON(http.StatusOK, gin.H{"deleted": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true, "item": item})
	}
}

func ListInventoryLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logs, err := models.GetInventoryLogs(c.Request.Context(), c.Query("item"), intQuery(c, "limit", 100))
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}

func CreateInventoryLogHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInventoryLog
		if !bindAndValidate(c, &input) {
			return
		}
		logEntry, err := models.CreateInventoryLog(c.Request.Context(), &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusCreated, logEntry)
	}
}

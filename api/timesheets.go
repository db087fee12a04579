package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/models"
)

func ListTimesheetsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := models.GetTimesheets(c.Request.Context(), c.Query("employee"), c.Query("date"), intQuery(c, "limit", 100))
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func CreateTimesheetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTimesheet
		if !bindAndValidate(c, &input) {
			return
		}
		entry, err := models.CreateTimesheet(c.Request.Context(), &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func DeleteTimesheetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		entry, err := models.DeleteTimesheet(c.Request.Context(), id)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/models"
)

func DashboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := models.CachedDashboardSummary(c.Request.Context())
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

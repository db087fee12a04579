package clientsync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/config"
	"github.com/sudsworks/laundromat_backend/models"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("laundromat-backend/clientsync")

// SyncHandler serves POST /api/sync. A body that does not parse is the one
// condition reported as a 500; everything that happens inside the four
// categories comes back in a 200 SyncResult, errors included.
func SyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var req SyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			config.LogError(logger, "clientsync", "SyncHandler", "ShouldBindJSON", nil, err)
			serverError(c, err)
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "clientsync.reconcile")
		defer span.End()

		store := NewGormStore(config.GetDB())
		result := NewReconciler(store, logger).Reconcile(ctx, &req)

		// Anything may have changed; the dashboard recomputes on next read.
		models.InvalidateDashboardCache()

		c.JSON(http.StatusOK, result)
	}
}

// serverError writes the 500 shape. The error detail is omitted in release
// mode so production responses never leak internals.
func serverError(c *gin.Context, err error) {
	body := gin.H{"message": MessageSyncFailed}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

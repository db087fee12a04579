package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sudsworks/laundromat_backend/api"
	"github.com/sudsworks/laundromat_backend/clientsync"
	"github.com/sudsworks/laundromat_backend/config"
	"github.com/sudsworks/laundromat_backend/models"
	"github.com/sudsworks/laundromat_backend/utils"
)

const defaultPort = "8080"

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Shutdown coordination. Cloud Run sends SIGTERM on revision shutdown.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until the DB is ready, app endpoints return 503.
	r := gin.New()

	// Correlation and device ids: taken from headers, generated if absent,
	// attached to the request context for logging.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), cid)
		if deviceId := c.GetHeader("x-device-id"); deviceId != "" {
			ctx = utils.SetDeviceIdInContext(ctx, deviceId)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		// Gate app endpoints on DB readiness. Redis is a cache and is not
		// required for serving.
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS: explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); allow all when unset (developer convenience).
	if allowed := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); allowed != "" {
		corsConfig.AllowOrigins = strings.Split(allowed, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "x-correlation-id", "x-device-id")
	r.Use(cors.New(corsConfig))

	r.POST("/api/sync", clientsync.SyncHandler())

	r.GET("/api/sales", api.ListSalesHandler())
	r.POST("/api/sales", api.CreateSaleHandler())
	r.PUT("/api/sales/:id", api.UpdateSaleHandler())
	r.DELETE("/api/sales/:id", api.DeleteSaleHandler())

	r.GET("/api/employees", api.ListEmployeesHandler())
	r.POST("/api/employees", api.CreateEmployeeHandler())
	r.PUT("/api/employees/:id", api.UpdateEmployeeHandler())
	r.DELETE("/api/employees/:id", api.DeleteEmployeeHandler())

	r.GET("/api/timesheets", api.ListTimesheetsHandler())
	r.POST("/api/timesheets", api.CreateTimesheetHandler())
	r.DELETE("/api/timesheets/:id", api.DeleteTimesheetHandler())

	r.GET("/api/inventory", api.ListInventoryHandler())
	r.POST("/api/inventory", api.CreateInventoryItemHandler())
	r.PUT("/api/inventory/:name", api.UpdateInventoryItemHandler())
	r.DELETE("/api/inventory/:name", api.DeleteInventoryItemHandler())
	r.GET("/api/inventory-logs", api.ListInventoryLogsHandler())
	r.POST("/api/inventory-logs", api.CreateInventoryLogHandler())

	r.GET("/api/dashboard", api.DashboardHandler())
	r.GET("/api/reports/sales", api.ExportSalesReportHandler())

	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations as
	// a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{"port": port}).Info("server started")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

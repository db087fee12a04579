package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/sudsworks/laundromat_backend/api"
	"github.com/sudsworks/laundromat_backend/config"
	"github.com/sudsworks/laundromat_backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Sale{}, &models.Employee{}, &models.Timesheet{},
		&models.InventoryItem{}, &models.InventoryLog{},
	))
	config.SetDB(db)
	t.Cleanup(func() { config.SetDB(nil) })

	r := gin.New()
	r.GET("/api/sales", api.ListSalesHandler())
	r.POST("/api/sales", api.CreateSaleHandler())
	r.DELETE("/api/sales/:id", api.DeleteSaleHandler())
	r.GET("/api/inventory", api.ListInventoryHandler())
	r.POST("/api/inventory", api.CreateInventoryItemHandler())
	r.DELETE("/api/inventory/:name", api.DeleteInventoryItemHandler())
	r.GET("/api/employees", api.ListEmployeesHandler())
	r.POST("/api/employees", api.CreateEmployeeHandler())
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndListSales(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/sales", `{"date":"2024-01-01","coin":"10","hopper":"5","recordedBy":"maria"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/sales?from=2024-01-01&to=2024-01-31", "")
	require.Equal(t, http.StatusOK, w.Code)

	var sales []models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sales))
	require.Len(t, sales, 1)
	require.Equal(t, "2024-01-01", sales[0].Date)
	require.Equal(t, "maria", sales[0].RecordedBy)
}

func TestCreateSaleRejectsBadDate(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/sales", `{"date":"January 1st","coin":"10"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMissingSaleIs404(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/sales/9999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryCrudKeyedByName(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/inventory", `{"name":"Soap","currentStock":5,"maxStock":20,"unit":"bottles"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate name is the one uniqueness rule.
	w = doJSON(r, http.MethodPost, "/api/inventory", `{"name":"Soap","currentStock":9}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/inventory/Soap", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting again is not an error.
	w = doJSON(r, http.MethodDelete, "/api/inventory/Soap", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.InventoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Empty(t, items)
}

func TestCreateEmployeeNormalizesPhone(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/employees", `{"name":"Maria Lopez","phone":"(202) 555-0123","position":"Attendant"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var employee models.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &employee))
	require.Equal(t, "+12025550123", employee.Phone)
}

package clientsync_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/sudsworks/laundromat_backend/clientsync"
	"github.com/sudsworks/laundromat_backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache memory DB survives gorm's connection pooling.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Sale{}, &models.Employee{}, &models.Timesheet{},
		&models.InventoryItem{}, &models.InventoryLog{},
	))
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestReconciler(t *testing.T) (*clientsync.Reconciler, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return clientsync.NewReconciler(clientsync.NewGormStore(db), quietLogger()), db
}

func TestEmptyBatchIsSuccessfulNoop(t *testing.T) {
	rec, _ := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{})

	require.Equal(t, clientsync.MessageSyncOK, result.Message)
	require.Zero(t, result.SavedSalesCount)
	require.Zero(t, result.SavedTimesheetsCount)
	require.Zero(t, result.SavedInventoryCount)
	require.Zero(t, result.SavedLogsCount)
	require.Nil(t, result.Errors)
}

func TestSalesFailureDoesNotBlockInventory(t *testing.T) {
	rec, db := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Sales: []clientsync.SaleChange{
			{Coin: decimal.NewFromInt(10)}, // missing required date
		},
		Inventory: []clientsync.InventoryChange{
			{Name: "Soap", CurrentStock: 5, MaxStock: 20, Unit: "bottles"},
		},
	})

	require.Equal(t, clientsync.MessageSyncPartial, result.Message)
	require.Zero(t, result.SavedSalesCount)
	require.Equal(t, 1, result.SavedInventoryCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, clientsync.CategorySales, result.Errors[0].Type)

	var item models.InventoryItem
	require.NoError(t, db.Where("name = ?", "Soap").Take(&item).Error)
	require.Equal(t, 5, item.CurrentStock)
}

func TestInventoryUpsertIsIdempotent(t *testing.T) {
	rec, db := newTestReconciler(t)

	batch := &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "Soap", CurrentStock: 5, MaxStock: 20, Unit: "bottles"},
		},
	}

	first := rec.Reconcile(context.Background(), batch)
	require.Equal(t, 1, first.SavedInventoryCount)
	require.Nil(t, first.Errors)

	second := rec.Reconcile(context.Background(), batch)
	require.Equal(t, 1, second.SavedInventoryCount)
	require.Nil(t, second.Errors)

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var item models.InventoryItem
	require.NoError(t, db.Where("name = ?", "Soap").Take(&item).Error)
	require.Equal(t, 5, item.CurrentStock)
	require.Equal(t, 20, item.MaxStock)
	require.Equal(t, "bottles", item.Unit)
	require.False(t, item.LastUpdated.IsZero())
}

func TestUpsertOverwritesExistingItemByName(t *testing.T) {
	rec, db := newTestReconciler(t)

	rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "Soap", CurrentStock: 5, MaxStock: 20, Unit: "bottles"},
		},
	})
	// The client invented a placeholder id offline; only the name matters.
	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{LocalId: "local-1723", Name: "Soap", CurrentStock: 3, MaxStock: 25, Unit: "bottles"},
		},
	})
	require.Equal(t, 1, result.SavedInventoryCount)

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var item models.InventoryItem
	require.NoError(t, db.Where("name = ?", "Soap").Take(&item).Error)
	require.Equal(t, 3, item.CurrentStock)
	require.Equal(t, 25, item.MaxStock)
}

func TestDeleteExistingItem(t *testing.T) {
	rec, db := newTestReconciler(t)

	rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "Soap", CurrentStock: 5, MaxStock: 20, Unit: "bottles"},
		},
	})
	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "Soap", IsDeleted: true},
		},
	})

	require.Equal(t, clientsync.MessageSyncOK, result.Message)
	require.Equal(t, 1, result.SavedInventoryCount)

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Where("name = ?", "Soap").Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDeleteMissingItemIsNotAnError(t *testing.T) {
	rec, _ := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "Ghost", IsDeleted: true},
		},
	})

	require.Equal(t, clientsync.MessageSyncOK, result.Message)
	require.Equal(t, 1, result.SavedInventoryCount)
	require.Nil(t, result.Errors)
}

func TestOneBadItemDoesNotBlockOthers(t *testing.T) {
	rec, db := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "", CurrentStock: 1}, // no business key
			{Name: "Bleach", CurrentStock: 7, MaxStock: 12, Unit: "bottles"},
		},
	})

	require.Equal(t, clientsync.MessageSyncPartial, result.Message)
	require.Equal(t, 1, result.SavedInventoryCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, clientsync.CategoryInventory, result.Errors[0].Type)

	var item models.InventoryItem
	require.NoError(t, db.Where("name = ?", "Bleach").Take(&item).Error)
	require.Equal(t, 7, item.CurrentStock)
}

func TestMalformedLogIsIsolated(t *testing.T) {
	rec, db := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{
			{Name: "A", CurrentStock: 1, MaxStock: 10, Unit: "u"},
		},
		InventoryLogs: []clientsync.InventoryLogChange{
			{ItemId: "A", PreviousStock: 0, NewStock: 1, UpdateType: "restock", Timestamp: "not-a-date", UpdatedBy: "x"},
			{ItemId: "A", PreviousStock: 1, NewStock: 3, UpdateType: "restock", Timestamp: "2024-01-02T10:00:00Z", UpdatedBy: "x"},
		},
	})

	require.Equal(t, 1, result.SavedInventoryCount)
	require.Equal(t, 1, result.SavedLogsCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, clientsync.CategoryInventoryLog, result.Errors[0].Type)
	require.Contains(t, result.Errors[0].Error, "A: ")

	var logCount int64
	require.NoError(t, db.Model(&models.InventoryLog{}).Count(&logCount).Error)
	require.EqualValues(t, 1, logCount)
}

func TestLogDoesNotRequireItemToExist(t *testing.T) {
	rec, db := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		InventoryLogs: []clientsync.InventoryLogChange{
			{ItemId: "Unknown Item", PreviousStock: 2, NewStock: 1, UpdateType: "usage", Timestamp: "2024-03-04T08:30:00Z", UpdatedBy: "x"},
		},
	})

	require.Equal(t, clientsync.MessageSyncOK, result.Message)
	require.Equal(t, 1, result.SavedLogsCount)

	var entry models.InventoryLog
	require.NoError(t, db.Where("item_name = ?", "Unknown Item").Take(&entry).Error)
	require.Equal(t, models.InventoryUpdateTypeUsage, entry.UpdateType)
}

func TestSalesBatchPersisted(t *testing.T) {
	rec, db := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Sales: []clientsync.SaleChange{
			{Date: "2024-01-01", Coin: decimal.NewFromInt(10), Hopper: decimal.NewFromInt(5)},
		},
	})

	require.Equal(t, clientsync.MessageSyncOK, result.Message)
	require.Equal(t, 1, result.SavedSalesCount)

	var sale models.Sale
	require.NoError(t, db.Where("date = ?", "2024-01-01").Take(&sale).Error)
	require.True(t, sale.Coin.Equal(decimal.NewFromInt(10)), "coin = %s", sale.Coin)
}

func TestTimesheetProjectionDropsClientFields(t *testing.T) {
	rec, db := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Timesheet: []clientsync.TimesheetChange{
			{LocalId: "offline-77", EmployeeName: "Maria Lopez", Date: "2024-01-01", Time: "09:00", Action: "in", SyncedAt: "2024-01-01T12:00:00Z"},
		},
	})

	require.Equal(t, 1, result.SavedTimesheetsCount)

	var entry models.Timesheet
	require.NoError(t, db.Where("employee_name = ?", "Maria Lopez").Take(&entry).Error)
	require.Equal(t, models.TimesheetActionIn, entry.Action)
	require.Equal(t, "09:00", entry.Time)
}

func TestInvalidTimesheetActionFailsCategory(t *testing.T) {
	rec, _ := newTestReconciler(t)

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Timesheet: []clientsync.TimesheetChange{
			{EmployeeName: "Maria Lopez", Date: "2024-01-01", Time: "09:00", Action: "lunch"},
		},
	})

	require.Equal(t, clientsync.MessageSyncPartial, result.Message)
	require.Zero(t, result.SavedTimesheetsCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, clientsync.CategoryTimesheet, result.Errors[0].Type)
}

func TestMessageMatchesErrorPresence(t *testing.T) {
	rec, _ := newTestReconciler(t)

	clean := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{{Name: "Soap", CurrentStock: 1}},
	})
	require.Equal(t, clientsync.MessageSyncOK, clean.Message)
	require.Nil(t, clean.Errors)

	dirty := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Inventory: []clientsync.InventoryChange{{Name: "", CurrentStock: 1}},
	})
	require.Equal(t, clientsync.MessageSyncPartial, dirty.Message)
	require.NotEmpty(t, dirty.Errors)
}

// failingSalesStore simulates the store rejecting the whole sales batch
// (connection lost mid-request). Other categories keep working.
type failingSalesStore struct {
	clientsync.Store
}

func (s *failingSalesStore) InsertSales(ctx context.Context, sales []models.Sale) (int, error) {
	return 0, errors.New("store unavailable")
}

func TestStoreOutageOnSalesIsCategoryScoped(t *testing.T) {
	db := newTestDB(t)
	store := &failingSalesStore{Store: clientsync.NewGormStore(db)}
	rec := clientsync.NewReconciler(store, quietLogger())

	result := rec.Reconcile(context.Background(), &clientsync.SyncRequest{
		Sales: []clientsync.SaleChange{
			{Date: "2024-01-01", Coin: decimal.NewFromInt(10)},
		},
		Inventory: []clientsync.InventoryChange{
			{Name: "Soap", CurrentStock: 5, MaxStock: 20, Unit: "bottles"},
		},
	})

	require.Equal(t, clientsync.MessageSyncPartial, result.Message)
	require.Zero(t, result.SavedSalesCount)
	require.Equal(t, 1, result.SavedInventoryCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, clientsync.CategorySales, result.Errors[0].Type)
	require.Contains(t, result.Errors[0].Error, "store unavailable")
}

package clientsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/sudsworks/laundromat_backend/models"
	"github.com/sudsworks/laundromat_backend/utils"
)

// Reconciler applies a SyncRequest to the store. It never returns an error
// for per-record or per-category problems; everything is collected into the
// SyncResult's Errors list and the caller decides what to re-submit.
//
// Idempotence is asymmetric and load-bearing: inventory (upsert/delete by
// name) is safe to retry, sales/timesheet/log inserts are not — they
// duplicate on retry. Callers must only retry the inventory portion or
// deduplicate the rest client-side.
type Reconciler struct {
	store    Store
	validate *validator.Validate
	logger   *logrus.Logger
	now      func() time.Time
}

func NewReconciler(store Store, logger *logrus.Logger) *Reconciler {
	return &Reconciler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Reconcile runs the four categories in order: sales, timesheet, inventory,
// inventory logs. Items are applied before logs so the outcome reads
// usefully, but logs never require their item to exist.
func (r *Reconciler) Reconcile(ctx context.Context, req *SyncRequest) *SyncResult {
	result := &SyncResult{}
	var errs []SyncError

	saved, salesErrs := r.applySales(ctx, req.Sales)
	result.SavedSalesCount = saved
	errs = append(errs, salesErrs...)

	saved, timesheetErrs := r.applyTimesheets(ctx, req.Timesheet)
	result.SavedTimesheetsCount = saved
	errs = append(errs, timesheetErrs...)

	saved, invErrs := applyEach(CategoryInventory, req.Inventory,
		func(ch InventoryChange) string { return ch.Name },
		func(ch InventoryChange) error { return r.applyInventoryChange(ctx, ch) },
	)
	result.SavedInventoryCount = saved
	errs = append(errs, invErrs...)

	saved, logErrs := applyEach(CategoryInventoryLog, req.InventoryLogs,
		func(ch InventoryLogChange) string { return ch.ItemId },
		func(ch InventoryLogChange) error { return r.applyInventoryLogChange(ctx, ch) },
	)
	result.SavedLogsCount = saved
	errs = append(errs, logErrs...)

	if len(errs) > 0 {
		result.Message = MessageSyncPartial
		result.Errors = errs
		correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
		deviceId, _ := utils.GetDeviceIdFromContext(ctx)
		r.logger.WithFields(logrus.Fields{
			"module":        "clientsync",
			"correlationId": correlationId,
			"deviceId":      deviceId,
			"errorCount":    len(errs),
			"errors":        errs,
		}).Warn(MessageSyncPartial)
	} else {
		result.Message = MessageSyncOK
	}
	return result
}

// applySales validates then batch-inserts the whole category. One bad record
// fails the category (no partial-insert retry at this level); the count is
// whatever the store reports. Duplicate-key rows are not retried.
func (r *Reconciler) applySales(ctx context.Context, changes []SaleChange) (int, []SyncError) {
	if len(changes) == 0 {
		return 0, nil
	}

	sales := make([]models.Sale, 0, len(changes))
	for _, ch := range changes {
		if err := r.validate.Struct(ch); err != nil {
			return 0, []SyncError{{Type: CategorySales, Error: err.Error()}}
		}
		sales = append(sales, models.Sale{
			Date:           ch.Date,
			Coin:           ch.Coin,
			Hopper:         ch.Hopper,
			Soap:           ch.Soap,
			Vending:        ch.Vending,
			DropOffAmount1: ch.DropOffAmount1,
			DropOffCode:    ch.DropOffCode,
			DropOffAmount2: ch.DropOffAmount2,
			RecordedBy:     ch.RecordedBy,
		})
	}

	saved, err := r.store.InsertSales(ctx, sales)
	if err != nil {
		return saved, []SyncError{{Type: CategorySales, Error: err.Error()}}
	}
	return saved, nil
}

// applyTimesheets has the same batch semantics as applySales, after
// projecting each entry to the store's field set (client-only fields such as
// the local id and syncedAt are dropped).
func (r *Reconciler) applyTimesheets(ctx context.Context, changes []TimesheetChange) (int, []SyncError) {
	if len(changes) == 0 {
		return 0, nil
	}

	entries := make([]models.Timesheet, 0, len(changes))
	for _, ch := range changes {
		if err := r.validate.Struct(ch); err != nil {
			return 0, []SyncError{{Type: CategoryTimesheet, Error: err.Error()}}
		}
		entries = append(entries, models.Timesheet{
			EmployeeName: ch.EmployeeName,
			Date:         ch.Date,
			Time:         ch.Time,
			Action:       ch.Action,
		})
	}

	saved, err := r.store.InsertTimesheets(ctx, entries)
	if err != nil {
		return saved, []SyncError{{Type: CategoryTimesheet, Error: err.Error()}}
	}
	return saved, nil
}

func (r *Reconciler) applyInventoryChange(ctx context.Context, ch InventoryChange) error {
	name := strings.TrimSpace(ch.Name)
	if name == "" {
		return errors.New("item name is required")
	}

	if ch.IsDeleted {
		return r.store.DeleteInventoryItem(ctx, name)
	}

	item := &models.InventoryItem{
		Name:         name,
		CurrentStock: ch.CurrentStock,
		MaxStock:     ch.MaxStock,
		MinStock:     ch.MinStock,
		Unit:         ch.Unit,
		LastUpdated:  r.now(),
	}
	return r.store.UpsertInventoryItem(ctx, item)
}

func (r *Reconciler) applyInventoryLogChange(ctx context.Context, ch InventoryLogChange) error {
	if err := r.validate.Struct(ch); err != nil {
		return err
	}
	timestamp, err := parseClientTime(ch.Timestamp)
	if err != nil {
		return err
	}

	entry := &models.InventoryLog{
		ItemName:      ch.ItemId,
		PreviousStock: ch.PreviousStock,
		NewStock:      ch.NewStock,
		UpdateType:    ch.UpdateType,
		Timestamp:     timestamp,
		UpdatedBy:     ch.UpdatedBy,
		Notes:         ch.Notes,
	}
	return r.store.InsertInventoryLog(ctx, entry)
}

// applyEach applies one category item-by-item: a failed item is recorded with
// an identifying label and never blocks the items after it.
func applyEach[T any](category string, items []T, describe func(T) string, applyOne func(T) error) (int, []SyncError) {
	var saved int
	var errs []SyncError
	for _, item := range items {
		if err := applyOne(item); err != nil {
			errs = append(errs, SyncError{
				Type:  category,
				Error: fmt.Sprintf("%s: %s", describe(item), err.Error()),
			})
			continue
		}
		saved++
	}
	return saved, errs
}

var clientTimeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseClientTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("timestamp is required")
	}
	for _, format := range clientTimeFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}

// Package clientsync reconciles a batch of edits made by the offline-capable
// POS client against the authoritative store. One request carries up to four
// change-sets (sales, timesheet, inventory, inventoryLogs); each is applied
// independently and failures are reported per category, never raised.
package clientsync

import (
	"github.com/shopspring/decimal"
)

// Outcome messages. The partial message is returned whenever Errors is
// non-empty, regardless of how many records succeeded.
const (
	MessageSyncOK      = "Sync successful"
	MessageSyncPartial = "Sync completed with some errors"
	MessageSyncFailed  = "Server Error during sync"
)

// Error categories, matching the request field names (inventoryLog singular
// for historical client compatibility).
const (
	CategorySales        = "sales"
	CategoryTimesheet    = "timesheet"
	CategoryInventory    = "inventory"
	CategoryInventoryLog = "inventoryLog"
)

// SyncRequest is the batch of pending offline edits. Every category is
// optional; an absent or empty array is a no-op for that category.
type SyncRequest struct {
	Sales         []SaleChange         `json:"sales"`
	Timesheet     []TimesheetChange    `json:"timesheet"`
	Inventory     []InventoryChange    `json:"inventory"`
	InventoryLogs []InventoryLogChange `json:"inventoryLogs"`
}

// SaleChange is a queued sale sheet. Sales are append-only through sync;
// re-submitting a batch duplicates them (no natural uniqueness key).
type SaleChange struct {
	LocalId        string          `json:"id"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Coin           decimal.Decimal `json:"coin"`
	Hopper         decimal.Decimal `json:"hopper"`
	Soap           decimal.Decimal `json:"soap"`
	Vending        decimal.Decimal `json:"vending"`
	DropOffAmount1 decimal.Decimal `json:"dropOffAmount1"`
	DropOffCode    string          `json:"dropOffCode"`
	DropOffAmount2 decimal.Decimal `json:"dropOffAmount2"`
	RecordedBy     string          `json:"recordedBy"`
}

// TimesheetChange is a queued clock punch. LocalId and SyncedAt are
// client-side bookkeeping and are stripped when projecting to the store row.
type TimesheetChange struct {
	LocalId      string `json:"id"`
	EmployeeName string `json:"employeeName" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required"`
	Action       string `json:"action" validate:"required,oneof=in out"`
	SyncedAt     string `json:"syncedAt"`
}

// InventoryChange upserts (or, with IsDeleted, removes) an item by name.
// LocalId may be a server id or a placeholder invented offline; it is never
// used for matching — the name is the only correlation key.
type InventoryChange struct {
	LocalId      string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	MaxStock     int    `json:"maxStock"`
	MinStock     int    `json:"minStock"`
	Unit         string `json:"unit"`
	IsDeleted    bool   `json:"isDeleted"`
}

// InventoryLogChange is a queued stock-change note. ItemId carries the item's
// business key (its name); the referenced item need not exist.
type InventoryLogChange struct {
	ItemId        string `json:"itemId" validate:"required"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	UpdateType    string `json:"updateType" validate:"required,oneof=restock usage adjustment"`
	Timestamp     string `json:"timestamp"`
	UpdatedBy     string `json:"updatedBy"`
	Notes         string `json:"notes"`
}

// SyncResult is the per-category outcome summary. Errors is omitted from the
// JSON body when empty.
type SyncResult struct {
	Message              string      `json:"message"`
	SavedSalesCount      int         `json:"savedSalesCount"`
	SavedTimesheetsCount int         `json:"savedTimesheetsCount"`
	SavedInventoryCount  int         `json:"savedInventoryCount"`
	SavedLogsCount       int         `json:"savedLogsCount"`
	Errors               []SyncError `json:"errors,omitempty"`
}

type SyncError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

package models

// Timesheet punch directions.
const (
	TimesheetActionIn  = "in"
	TimesheetActionOut = "out"
)

// Inventory log update types.
const (
	InventoryUpdateTypeRestock    = "restock"
	InventoryUpdateTypeUsage      = "usage"
	InventoryUpdateTypeAdjustment = "adjustment"
)

func IsValidTimesheetAction(action string) bool {
	return action == TimesheetActionIn || action == TimesheetActionOut
}

func IsValidInventoryUpdateType(updateType string) bool {
	switch updateType {
	case InventoryUpdateTypeRestock, InventoryUpdateTypeUsage, InventoryUpdateTypeAdjustment:
		return true
	}
	return false
}

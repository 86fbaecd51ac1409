package types

import "time"

// InventoryItem is a product a household keeps track of. Trip items always
// reference an inventory item; the inventory carries the stable name/unit.
type InventoryItem struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"householdId"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type InventoryItemCreate struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

type InventoryItemUpdate struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Unit     *string `json:"unit,omitempty"`
}

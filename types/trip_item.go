package types

import "time"

// TripItem is one line in a trip's checklist. Quantity is a positive integer;
// validation happens at the request boundary, the model does not clamp it.
// CheckedAt and CheckedBy are null whenever IsChecked is false.
type TripItem struct {
	ID              string     `json:"id"`
	TripID          string     `json:"tripId"`
	InventoryItemID string     `json:"inventoryItemId"`
	Quantity        int        `json:"quantity"`
	Notes           string     `json:"notes,omitempty"`
	StoreID         *string    `json:"storeId,omitempty"`
	IsChecked       bool       `json:"isChecked"`
	CheckedAt       *time.Time `json:"checkedAt,omitempty"`
	CheckedBy       *string    `json:"checkedBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type TripItemCreate struct {
	InventoryItemID string  `json:"inventoryItemId" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,gt=0"`
	Notes           string  `json:"notes"`
	StoreID         *string `json:"storeId"`
}

type TripItemUpdate struct {
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Notes    string  `json:"notes"`
	StoreID  *string `json:"storeId"`
}

type TripItemCheck struct {
	IsChecked *bool `json:"isChecked" binding:"required"`
}

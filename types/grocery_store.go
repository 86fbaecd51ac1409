package types

import "time"

// GroceryStore is a physical store a household shops at. Trip items can
// optionally reference the store they should be bought from.
type GroceryStore struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"householdId"`
	Name        string    `json:"name"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type GroceryStoreCreate struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type GroceryStoreUpdate struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Package store defines the persistence interfaces the models depend on.
// Implementations live in store/postgres; tests substitute mocks.
package store

import (
	"context"
	"time"

	"github.com/shopsquad/shopsquad-backend/types"
)

// UserStore handles user-related data operations.
type UserStore interface {
	CreateUser(ctx context.Context, user *types.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// HouseholdStore handles household and membership data operations.
type HouseholdStore interface {
	CreateHousehold(ctx context.Context, household *types.Household) (string, error)
	GetHousehold(ctx context.Context, id string) (*types.Household, error)
	GetHouseholdByInviteCode(ctx context.Context, code string) (*types.Household, error)
	AddMember(ctx context.Context, householdID, userID string) error
	ListMembers(ctx context.Context, householdID string) ([]types.HouseholdMember, error)
	IsMember(ctx context.Context, householdID, userID string) (bool, error)
}

// GroceryStoreStore handles the household's physical store catalog.
type GroceryStoreStore interface {
	CreateStore(ctx context.Context, s *types.GroceryStore) (string, error)
	GetStore(ctx context.Context, id string) (*types.GroceryStore, error)
	ListStores(ctx context.Context, householdID string) ([]types.GroceryStore, error)
	UpdateStore(ctx context.Context, id string, update *types.GroceryStoreUpdate) (*types.GroceryStore, error)
	DeleteStore(ctx context.Context, id string) error
}

// InventoryStore handles the household's inventory catalog.
type InventoryStore interface {
	CreateItem(ctx context.Context, item *types.InventoryItem) (string, error)
	GetItem(ctx context.Context, id string) (*types.InventoryItem, error)
	ListItems(ctx context.Context, householdID string) ([]types.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, update *types.InventoryItemUpdate) (*types.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// TripStore handles shopping trips and their collaborator sets.
type TripStore interface {
	CreateTrip(ctx context.Context, trip *types.ShoppingTrip) (string, error)
	GetTrip(ctx context.Context, id string) (*types.ShoppingTrip, error)
	ListUserTrips(ctx context.Context, userID string) ([]types.ShoppingTrip, error)
	UpdateTripStatus(ctx context.Context, id string, status types.TripStatus) (*types.ShoppingTrip, error)
	DeleteTrip(ctx context.Context, id string) error
	AddCollaborator(ctx context.Context, collaborator *types.TripCollaborator) error
	RemoveCollaborator(ctx context.Context, tripID, userID string) error
	ListCollaborators(ctx context.Context, tripID string) ([]types.TripCollaborator, error)
	// IsCreatorOrCollaborator backs the authorization gate: true when the
	// user created the trip or appears in its collaborator set.
	IsCreatorOrCollaborator(ctx context.Context, tripID, userID string) (bool, error)
}

// TripItemStore handles the items on a trip's checklist.
type TripItemStore interface {
	CreateItem(ctx context.Context, item *types.TripItem) (string, error)
	GetItem(ctx context.Context, id string) (*types.TripItem, error)
	ListTripItems(ctx context.Context, tripID string) ([]types.TripItem, error)
	UpdateItem(ctx context.Context, id string, update *types.TripItemUpdate) (*types.TripItem, error)
	SetChecked(ctx context.Context, id string, isChecked bool, checkedAt *time.Time, checkedBy *string) (*types.TripItem, error)
	DeleteItem(ctx context.Context, id string) error
}

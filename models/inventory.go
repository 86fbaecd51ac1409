package models

import (
	"context"
	stderrors "errors"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// InventoryModel manages a household's product catalog. All operations are
// gated on household membership.
type InventoryModel struct {
	store      store.InventoryStore
	households *HouseholdModel
}

func NewInventoryModel(store store.InventoryStore, households *HouseholdModel) *InventoryModel {
	return &InventoryModel{
		store:      store,
		households: households,
	}
}

func (im *InventoryModel) CreateItem(ctx context.Context, userID string, item *types.InventoryItem) error {
	if item.Name == "" {
		return errors.ValidationFailed("Invalid inventory item", "name is required")
	}

	if err := im.households.authorizeMember(ctx, item.HouseholdID, userID); err != nil {
		return err
	}

	if _, err := im.store.CreateItem(ctx, item); err != nil {
		return errors.NewDatabaseError(err)
	}
	return nil
}

func (im *InventoryModel) GetItem(ctx context.Context, itemID string, userID string) (*types.InventoryItem, error) {
	item, err := im.store.GetItem(ctx, itemID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Inventory item", itemID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if err := im.households.authorizeMember(ctx, item.HouseholdID, userID); err != nil {
		return nil, err
	}
	return item, nil
}

func (im *InventoryModel) ListItems(ctx context.Context, householdID string, userID string) ([]types.InventoryItem, error) {
	if err := im.households.authorizeMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	items, err := im.store.ListItems(ctx, householdID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return items, nil
}

func (im *InventoryModel) UpdateItem(ctx context.Context, itemID string, userID string, update *types.InventoryItemUpdate) (*types.InventoryItem, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, errors.ValidationFailed("Invalid update", "name cannot be empty")
	}

	if _, err := im.GetItem(ctx, itemID, userID); err != nil {
		return nil, err
	}

	updated, err := im.store.UpdateItem(ctx, itemID, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Inventory item", itemID)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return updated, nil
}

func (im *InventoryModel) DeleteItem(ctx context.Context, itemID string, userID string) error {
	if _, err := im.GetItem(ctx, itemID, userID); err != nil {
		return err
	}

	if err := im.store.DeleteItem(ctx, itemID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Inventory item", itemID)
		}
		return errors.NewDatabaseError(err)
	}
	return nil
}

package models

import (
	"context"
	stderrors "errors"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// GroceryStoreModel manages the household's physical store catalog.
type GroceryStoreModel struct {
	store      store.GroceryStoreStore
	households *HouseholdModel
}

func NewGroceryStoreModel(store store.GroceryStoreStore, households *HouseholdModel) *GroceryStoreModel {
	return &GroceryStoreModel{
		store:      store,
		households: households,
	}
}

func (gm *GroceryStoreModel) CreateStore(ctx context.Context, userID string, gs *types.GroceryStore) error {
	if gs.Name == "" {
		return errors.ValidationFailed("Invalid store data", "store name is required")
	}

	if err := gm.households.authorizeMember(ctx, gs.HouseholdID, userID); err != nil {
		return err
	}

	if _, err := gm.store.CreateStore(ctx, gs); err != nil {
		return errors.NewDatabaseError(err)
	}
	return nil
}

func (gm *GroceryStoreModel) GetStore(ctx context.Context, storeID string, userID string) (*types.GroceryStore, error) {
	gs, err := gm.store.GetStore(ctx, storeID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Grocery store", storeID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if err := gm.households.authorizeMember(ctx, gs.HouseholdID, userID); err != nil {
		return nil, err
	}
	return gs, nil
}

func (gm *GroceryStoreModel) ListStores(ctx context.Context, householdID string, userID string) ([]types.GroceryStore, error) {
	if err := gm.households.authorizeMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	stores, err := gm.store.ListStores(ctx, householdID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return stores, nil
}

func (gm *GroceryStoreModel) UpdateStore(ctx context.Context, storeID string, userID string, update *types.GroceryStoreUpdate) (*types.GroceryStore, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, errors.ValidationFailed("Invalid update", "store name cannot be empty")
	}

	if _, err := gm.GetStore(ctx, storeID, userID); err != nil {
		return nil, err
	}

	updated, err := gm.store.UpdateStore(ctx, storeID, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Grocery store", storeID)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return updated, nil
}

func (gm *GroceryStoreModel) DeleteStore(ctx context.Context, storeID string, userID string) error {
	if _, err := gm.GetStore(ctx, storeID, userID); err != nil {
		return err
	}

	if err := gm.store.DeleteStore(ctx, storeID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Grocery store", storeID)
		}
		return errors.NewDatabaseError(err)
	}
	return nil
}

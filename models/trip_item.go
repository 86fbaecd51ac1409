package models

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/events"
	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/types"
)

// TripItemModel is the mutation service for a trip's checklist. Every
// operation authorizes first, persists second, and publishes last. A storage
// failure means no event; a publish failure after a successful write is logged
// and swallowed, the mutation stands.
type TripItemModel struct {
	store     store.TripItemStore
	tripModel *TripModel
	publisher events.Publisher
}

func NewTripItemModel(store store.TripItemStore, tripModel *TripModel, publisher events.Publisher) *TripItemModel {
	return &TripItemModel{
		store:     store,
		tripModel: tripModel,
		publisher: publisher,
	}
}

// AddItem appends an unchecked item to the trip's checklist and announces it
// as ItemAdded.
func (tim *TripItemModel) AddItem(ctx context.Context, tripID string, userID string, create *types.TripItemCreate) (*types.TripItem, error) {
	if err := validateTripItemCreate(create); err != nil {
		return nil, err
	}

	if err := tim.tripModel.AuthorizeCollaborator(ctx, tripID, userID); err != nil {
		return nil, err
	}

	item := &types.TripItem{
		TripID:          tripID,
		InventoryItemID: create.InventoryItemID,
		Quantity:        create.Quantity,
		Notes:           create.Notes,
		StoreID:         create.StoreID,
		IsChecked:       false,
	}

	if _, err := tim.store.CreateItem(ctx, item); err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	tim.publish(ctx, tripID, item.ID, types.ItemAddedPayload{Item: *item})
	return item, nil
}

// UpdateItem overwrites quantity, notes, and store assignment and announces
// the result as ItemUpdated.
func (tim *TripItemModel) UpdateItem(ctx context.Context, itemID string, userID string, update *types.TripItemUpdate) (*types.TripItem, error) {
	if update.Quantity <= 0 {
		return nil, errors.ValidationFailed("Invalid item data", "quantity must be positive")
	}

	item, err := tim.loadAndAuthorize(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := tim.store.UpdateItem(ctx, itemID, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Trip item", itemID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	tim.publish(ctx, item.TripID, itemID, types.ItemUpdatedPayload{Item: *updated})
	return updated, nil
}

// CheckItem sets or clears the checked flag. Checking stamps checkedAt and
// checkedBy; unchecking clears both. Re-checking an already checked item still
// publishes, concurrent shoppers settle on last write.
func (tim *TripItemModel) CheckItem(ctx context.Context, itemID string, userID string, isChecked bool) (*types.TripItem, error) {
	item, err := tim.loadAndAuthorize(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	var checkedAt *time.Time
	var checkedBy *string
	if isChecked {
		now := time.Now().UTC()
		checkedAt = &now
		checkedBy = &userID
	}

	updated, err := tim.store.SetChecked(ctx, itemID, isChecked, checkedAt, checkedBy)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Trip item", itemID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	payload := types.ItemCheckedPayload{
		IsChecked: updated.IsChecked,
		CheckedAt: updated.CheckedAt,
	}
	if updated.CheckedBy != nil {
		payload.CheckedBy = *updated.CheckedBy
	}
	tim.publish(ctx, item.TripID, itemID, payload)
	return updated, nil
}

// DeleteItem removes the item and announces exactly one ItemRemoved carrying
// only the identifiers; the item itself no longer exists.
func (tim *TripItemModel) DeleteItem(ctx context.Context, itemID string, userID string) error {
	item, err := tim.loadAndAuthorize(ctx, itemID, userID)
	if err != nil {
		return err
	}

	if err := tim.store.DeleteItem(ctx, itemID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Trip item", itemID)
		}
		return errors.NewDatabaseError(err)
	}

	tim.publish(ctx, item.TripID, itemID, types.ItemRemovedPayload{
		ID:     itemID,
		TripID: item.TripID,
	})
	return nil
}

func (tim *TripItemModel) GetItem(ctx context.Context, itemID string, userID string) (*types.TripItem, error) {
	return tim.loadAndAuthorize(ctx, itemID, userID)
}

func (tim *TripItemModel) ListTripItems(ctx context.Context, tripID string, userID string) ([]types.TripItem, error) {
	if err := tim.tripModel.AuthorizeCollaborator(ctx, tripID, userID); err != nil {
		return nil, err
	}

	items, err := tim.store.ListTripItems(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return items, nil
}

// loadAndAuthorize resolves an item to its owning trip and runs the gate.
func (tim *TripItemModel) loadAndAuthorize(ctx context.Context, itemID string, userID string) (*types.TripItem, error) {
	item, err := tim.store.GetItem(ctx, itemID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Trip item", itemID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if err := tim.tripModel.AuthorizeCollaborator(ctx, item.TripID, userID); err != nil {
		return nil, err
	}
	return item, nil
}

func (tim *TripItemModel) publish(ctx context.Context, tripID string, itemID string, payload types.EventPayload) {
	if err := events.PublishItemEvent(ctx, tim.publisher, tripID, itemID, payload); err != nil {
		logger.GetLogger().Warnw("Failed to publish trip item event",
			"tripId", tripID,
			"itemId", itemID,
			"eventType", payload.EventType(),
			"error", err,
		)
	}
}

func validateTripItemCreate(create *types.TripItemCreate) error {
	if create.InventoryItemID == "" {
		return errors.ValidationFailed("Invalid item data", "inventory item ID is required")
	}
	if create.Quantity <= 0 {
		return errors.ValidationFailed("Invalid item data", "quantity must be positive")
	}
	return nil
}

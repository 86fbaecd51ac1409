package models

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/events"
	"github.com/shopsquad/shopsquad-backend/types"
)

func newTripItemFixture(t *testing.T) (*TripItemModel, *MockTripItemStore, *MockTripStore, *events.MockPublisher) {
	t.Helper()
	itemStore := new(MockTripItemStore)
	tripStore := new(MockTripStore)
	publisher := events.NewMockPublisher()
	tripModel := NewTripModel(tripStore, &mockTripCloser{})
	return NewTripItemModel(itemStore, tripModel, publisher), itemStore, tripStore, publisher
}

func TestTripItemModel_AddItem(t *testing.T) {
	ctx := context.Background()

	create := &types.TripItemCreate{
		InventoryItemID: "inv-1",
		Quantity:        2,
		Notes:           "whole wheat",
	}

	t.Run("collaborator adds unchecked item and ItemAdded is published", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("CreateItem", ctx, mock.AnythingOfType("*types.TripItem")).
			Run(func(args mock.Arguments) {
				item := args.Get(1).(*types.TripItem)
				item.ID = "item-1"
				item.CreatedAt = time.Now()
				item.UpdatedAt = item.CreatedAt
			}).
			Return("item-1", nil).Once()

		item, err := model.AddItem(ctx, "trip-1", "user-1", create)
		require.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
		assert.False(t, item.IsChecked)
		assert.Nil(t, item.CheckedAt)
		assert.Nil(t, item.CheckedBy)

		evts := publisher.GetEvents("trip-1")
		require.Len(t, evts, 1)
		assert.Equal(t, types.EventTypeItemAdded, evts[0].Type)
		assert.Equal(t, "item-1", evts[0].TripItemID)

		payload, err := evts[0].DecodePayload()
		require.NoError(t, err)
		added := payload.(types.ItemAddedPayload)
		assert.Equal(t, "item-1", added.Item.ID)
		assert.False(t, added.Item.IsChecked)

		itemStore.AssertExpectations(t)
		tripStore.AssertExpectations(t)
	})

	t.Run("stranger is refused and nothing is persisted or published", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "stranger").Return(false, nil).Once()

		item, err := model.AddItem(ctx, "trip-1", "stranger", create)
		assert.Nil(t, item)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TripAccessError, appErr.Type)

		assert.Equal(t, 0, publisher.EventCount())
		itemStore.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})

	t.Run("invalid quantity is rejected before the gate", func(t *testing.T) {
		model, itemStore, _, publisher := newTripItemFixture(t)

		item, err := model.AddItem(ctx, "trip-1", "user-1", &types.TripItemCreate{
			InventoryItemID: "inv-1",
			Quantity:        0,
		})
		assert.Nil(t, item)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ValidationError, appErr.Type)
		assert.Equal(t, 0, publisher.EventCount())
		itemStore.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})

	t.Run("storage failure publishes nothing", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("CreateItem", ctx, mock.AnythingOfType("*types.TripItem")).
			Return("", errors.New("connection refused")).Once()

		item, err := model.AddItem(ctx, "trip-1", "user-1", create)
		assert.Nil(t, item)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.DatabaseError, appErr.Type)
		assert.Equal(t, 0, publisher.EventCount())
	})

	t.Run("publish failure is swallowed and the item stands", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)
		publisher.FailWith(errors.New("broker unavailable"))

		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("CreateItem", ctx, mock.AnythingOfType("*types.TripItem")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*types.TripItem).ID = "item-1"
			}).
			Return("item-1", nil).Once()

		item, err := model.AddItem(ctx, "trip-1", "user-1", create)
		require.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
	})
}

func TestTripItemModel_CheckItem(t *testing.T) {
	ctx := context.Background()
	stored := &types.TripItem{
		ID:              "item-1",
		TripID:          "trip-1",
		InventoryItemID: "inv-1",
		Quantity:        1,
	}

	t.Run("checking stamps attribution and publishes ItemChecked", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		itemStore.On("GetItem", ctx, "item-1").Return(stored, nil).Once()
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("SetChecked", ctx, "item-1", true,
			mock.AnythingOfType("*time.Time"), mock.AnythingOfType("*string")).
			Run(func(args mock.Arguments) {
				checkedBy := args.Get(4).(*string)
				assert.Equal(t, "user-1", *checkedBy)
			}).
			Return(func() *types.TripItem {
				now := time.Now().UTC()
				user := "user-1"
				checked := *stored
				checked.IsChecked = true
				checked.CheckedAt = &now
				checked.CheckedBy = &user
				return &checked
			}(), nil).Once()

		item, err := model.CheckItem(ctx, "item-1", "user-1", true)
		require.NoError(t, err)
		assert.True(t, item.IsChecked)
		require.NotNil(t, item.CheckedAt)
		require.NotNil(t, item.CheckedBy)
		assert.Equal(t, "user-1", *item.CheckedBy)

		event, err := publisher.LastEvent("trip-1")
		require.NoError(t, err)
		assert.Equal(t, types.EventTypeItemChecked, event.Type)

		var payload types.ItemCheckedPayload
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.True(t, payload.IsChecked)
		assert.NotNil(t, payload.CheckedAt)
		assert.Equal(t, "user-1", payload.CheckedBy)
	})

	t.Run("unchecking clears attribution", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		itemStore.On("GetItem", ctx, "item-1").Return(stored, nil).Once()
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("SetChecked", ctx, "item-1", false, (*time.Time)(nil), (*string)(nil)).
			Return(stored, nil).Once()

		item, err := model.CheckItem(ctx, "item-1", "user-1", false)
		require.NoError(t, err)
		assert.False(t, item.IsChecked)
		assert.Nil(t, item.CheckedAt)

		event, err := publisher.LastEvent("trip-1")
		require.NoError(t, err)
		var payload types.ItemCheckedPayload
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.False(t, payload.IsChecked)
		assert.Nil(t, payload.CheckedAt)
		assert.Empty(t, payload.CheckedBy)
	})

	t.Run("missing item is NotFound", func(t *testing.T) {
		model, itemStore, _, publisher := newTripItemFixture(t)

		itemStore.On("GetItem", ctx, "missing").Return(nil, storeNotFound()).Once()

		item, err := model.CheckItem(ctx, "missing", "user-1", true)
		assert.Nil(t, item)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
		assert.Equal(t, 0, publisher.EventCount())
	})
}

func TestTripItemModel_UpdateItem(t *testing.T) {
	ctx := context.Background()
	stored := &types.TripItem{
		ID:              "item-1",
		TripID:          "trip-1",
		InventoryItemID: "inv-1",
		Quantity:        1,
	}

	t.Run("update publishes the new state", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		update := &types.TripItemUpdate{Quantity: 5, Notes: "the big pack"}
		updated := *stored
		updated.Quantity = 5
		updated.Notes = "the big pack"

		itemStore.On("GetItem", ctx, "item-1").Return(stored, nil).Once()
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("UpdateItem", ctx, "item-1", update).Return(&updated, nil).Once()

		item, err := model.UpdateItem(ctx, "item-1", "user-1", update)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)

		event, err := publisher.LastEvent("trip-1")
		require.NoError(t, err)
		assert.Equal(t, types.EventTypeItemUpdated, event.Type)

		payload, err := event.DecodePayload()
		require.NoError(t, err)
		assert.Equal(t, 5, payload.(types.ItemUpdatedPayload).Item.Quantity)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		itemStore.On("GetItem", ctx, "item-1").Return(stored, nil).Once()
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "stranger").Return(false, nil).Once()

		item, err := model.UpdateItem(ctx, "item-1", "stranger", &types.TripItemUpdate{Quantity: 5})
		assert.Nil(t, item)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TripAccessError, appErr.Type)
		assert.Equal(t, 0, publisher.EventCount())
		itemStore.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTripItemModel_DeleteItem(t *testing.T) {
	ctx := context.Background()
	stored := &types.TripItem{
		ID:              "item-1",
		TripID:          "trip-1",
		InventoryItemID: "inv-1",
		Quantity:        1,
	}

	t.Run("delete publishes exactly one ItemRemoved with identifiers only", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		itemStore.On("GetItem", ctx, "item-1").Return(stored, nil).Once()
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("DeleteItem", ctx, "item-1").Return(nil).Once()

		err := model.DeleteItem(ctx, "item-1", "user-1")
		require.NoError(t, err)

		evts := publisher.GetEvents("trip-1")
		require.Len(t, evts, 1)
		assert.Equal(t, types.EventTypeItemRemoved, evts[0].Type)

		payload, err := evts[0].DecodePayload()
		require.NoError(t, err)
		removed := payload.(types.ItemRemovedPayload)
		assert.Equal(t, "item-1", removed.ID)
		assert.Equal(t, "trip-1", removed.TripID)
	})

	t.Run("storage failure keeps the stream silent", func(t *testing.T) {
		model, itemStore, tripStore, publisher := newTripItemFixture(t)

		itemStore.On("GetItem", ctx, "item-1").Return(stored, nil).Once()
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("DeleteItem", ctx, "item-1").Return(errors.New("deadlock detected")).Once()

		err := model.DeleteItem(ctx, "item-1", "user-1")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.DatabaseError, appErr.Type)
		assert.Equal(t, 0, publisher.EventCount())
	})
}

func TestTripItemModel_ListTripItems(t *testing.T) {
	ctx := context.Background()

	t.Run("collaborator lists items", func(t *testing.T) {
		model, itemStore, tripStore, _ := newTripItemFixture(t)

		items := []types.TripItem{
			{ID: "item-1", TripID: "trip-1", InventoryItemID: "inv-1", Quantity: 1},
			{ID: "item-2", TripID: "trip-1", InventoryItemID: "inv-2", Quantity: 3},
		}
		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "user-1").Return(true, nil).Once()
		itemStore.On("ListTripItems", ctx, "trip-1").Return(items, nil).Once()

		got, err := model.ListTripItems(ctx, "trip-1", "user-1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("stranger cannot list", func(t *testing.T) {
		model, itemStore, tripStore, _ := newTripItemFixture(t)

		tripStore.On("IsCreatorOrCollaborator", ctx, "trip-1", "stranger").Return(false, nil).Once()

		got, err := model.ListTripItems(ctx, "trip-1", "stranger")
		assert.Nil(t, got)
		assert.Error(t, err)
		itemStore.AssertNotCalled(t, "ListTripItems", mock.Anything, mock.Anything)
	})
}

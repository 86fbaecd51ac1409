package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// createMockPool creates a mock pool for testing
func createMockPool(t *testing.T) (pgxmock.PgxPoolIface, func()) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	cleanup := func() {
		mock.Close()
	}

	return mock, cleanup
}

func tripItemRows(items ...types.TripItem) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "trip_id", "inventory_item_id", "quantity", "notes", "store_id",
		"is_checked", "checked_at", "checked_by", "created_at", "updated_at",
	})
	for _, item := range items {
		rows.AddRow(
			item.ID, item.TripID, item.InventoryItemID, item.Quantity, item.Notes,
			item.StoreID, item.IsChecked, item.CheckedAt, item.CheckedBy,
			item.CreatedAt, item.UpdatedAt,
		)
	}
	return rows
}

func TestTripItemStore_CreateItem(t *testing.T) {
	mock, cleanup := createMockPool(t)
	defer cleanup()

	s := NewTripItemStore(mock)
	now := time.Now()

	item := &types.TripItem{
		TripID:          "trip-1",
		InventoryItemID: "inv-1",
		Quantity:        2,
		Notes:           "ripe ones",
	}

	mock.ExpectQuery(`INSERT INTO trip_items`).
		WithArgs(item.TripID, item.InventoryItemID, item.Quantity, item.Notes, item.StoreID, item.IsChecked).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("item-1", now, now))

	id, err := s.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "item-1", id)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, now, item.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripItemStore_GetItem(t *testing.T) {
	mock, cleanup := createMockPool(t)
	defer cleanup()

	s := NewTripItemStore(mock)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		want := types.TripItem{
			ID:              "item-1",
			TripID:          "trip-1",
			InventoryItemID: "inv-1",
			Quantity:        3,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		mock.ExpectQuery(`SELECT (.+) FROM trip_items`).
			WithArgs("item-1").
			WillReturnRows(tripItemRows(want))

		got, err := s.GetItem(context.Background(), "item-1")
		require.NoError(t, err)
		assert.Equal(t, &want, got)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trip_items`).
			WithArgs("missing").
			WillReturnRows(tripItemRows())

		got, err := s.GetItem(context.Background(), "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripItemStore_ListTripItems(t *testing.T) {
	mock, cleanup := createMockPool(t)
	defer cleanup()

	s := NewTripItemStore(mock)
	now := time.Now()

	first := types.TripItem{ID: "item-1", TripID: "trip-1", InventoryItemID: "inv-1", Quantity: 1, CreatedAt: now, UpdatedAt: now}
	second := types.TripItem{ID: "item-2", TripID: "trip-1", InventoryItemID: "inv-2", Quantity: 4, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(`SELECT (.+) FROM trip_items`).
		WithArgs("trip-1").
		WillReturnRows(tripItemRows(first, second))

	items, err := s.ListTripItems(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "item-2", items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripItemStore_UpdateItem(t *testing.T) {
	mock, cleanup := createMockPool(t)
	defer cleanup()

	s := NewTripItemStore(mock)
	now := time.Now()
	storeID := "store-1"

	update := &types.TripItemUpdate{
		Quantity: 5,
		Notes:    "get the big pack",
		StoreID:  &storeID,
	}
	want := types.TripItem{
		ID:              "item-1",
		TripID:          "trip-1",
		InventoryItemID: "inv-1",
		Quantity:        5,
		Notes:           "get the big pack",
		StoreID:         &storeID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mock.ExpectQuery(`UPDATE trip_items`).
		WithArgs(update.Quantity, update.Notes, update.StoreID, "item-1").
		WillReturnRows(tripItemRows(want))

	got, err := s.UpdateItem(context.Background(), "item-1", update)
	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripItemStore_SetChecked(t *testing.T) {
	mock, cleanup := createMockPool(t)
	defer cleanup()

	s := NewTripItemStore(mock)
	now := time.Now()
	userID := "user-1"

	t.Run("check", func(t *testing.T) {
		want := types.TripItem{
			ID:              "item-1",
			TripID:          "trip-1",
			InventoryItemID: "inv-1",
			Quantity:        1,
			IsChecked:       true,
			CheckedAt:       &now,
			CheckedBy:       &userID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		mock.ExpectQuery(`UPDATE trip_items`).
			WithArgs(true, &now, &userID, "item-1").
			WillReturnRows(tripItemRows(want))

		got, err := s.SetChecked(context.Background(), "item-1", true, &now, &userID)
		require.NoError(t, err)
		assert.True(t, got.IsChecked)
		assert.Equal(t, &now, got.CheckedAt)
		assert.Equal(t, &userID, got.CheckedBy)
	})

	t.Run("uncheck clears attribution", func(t *testing.T) {
		want := types.TripItem{
			ID:              "item-1",
			TripID:          "trip-1",
			InventoryItemID: "inv-1",
			Quantity:        1,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		mock.ExpectQuery(`UPDATE trip_items`).
			WithArgs(false, (*time.Time)(nil), (*string)(nil), "item-1").
			WillReturnRows(tripItemRows(want))

		got, err := s.SetChecked(context.Background(), "item-1", false, nil, nil)
		require.NoError(t, err)
		assert.False(t, got.IsChecked)
		assert.Nil(t, got.CheckedAt)
		assert.Nil(t, got.CheckedBy)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripItemStore_DeleteItem(t *testing.T) {
	mock, cleanup := createMockPool(t)
	defer cleanup()

	s := NewTripItemStore(mock)

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trip_items`).
			WithArgs("item-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := s.DeleteItem(context.Background(), "item-1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trip_items`).
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := s.DeleteItem(context.Background(), "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("database failure", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trip_items`).
			WithArgs("item-1").
			WillReturnError(errors.New("connection reset"))

		err := s.DeleteItem(context.Background(), "item-1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

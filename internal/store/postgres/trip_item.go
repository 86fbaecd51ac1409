package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// TripItemStore implements store.TripItemStore using PostgreSQL.
type TripItemStore struct {
	db Querier
}

// NewTripItemStore creates a new TripItemStore instance.
func NewTripItemStore(db Querier) *TripItemStore {
	return &TripItemStore{db: db}
}

var _ store.TripItemStore = (*TripItemStore)(nil)

const tripItemColumns = `id, trip_id, inventory_item_id, quantity, notes, store_id,
		is_checked, checked_at, checked_by, created_at, updated_at`

func scanTripItem(row pgx.Row) (*types.TripItem, error) {
	item := &types.TripItem{}
	err := row.Scan(
		&item.ID,
		&item.TripID,
		&item.InventoryItemID,
		&item.Quantity,
		&item.Notes,
		&item.StoreID,
		&item.IsChecked,
		&item.CheckedAt,
		&item.CheckedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem inserts a new trip item and fills in its generated fields.
func (s *TripItemStore) CreateItem(ctx context.Context, item *types.TripItem) (string, error) {
	query := `
		INSERT INTO trip_items (trip_id, inventory_item_id, quantity, notes, store_id, is_checked)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRow(ctx, query,
		item.TripID,
		item.InventoryItemID,
		item.Quantity,
		item.Notes,
		item.StoreID,
		item.IsChecked,
	)

	if err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return "", err
	}
	return item.ID, nil
}

// GetItem retrieves a trip item by its ID.
func (s *TripItemStore) GetItem(ctx context.Context, id string) (*types.TripItem, error) {
	query := `
		SELECT ` + tripItemColumns + `
		FROM trip_items
		WHERE id = $1`

	return scanTripItem(s.db.QueryRow(ctx, query, id))
}

// ListTripItems retrieves all items on a trip's checklist.
func (s *TripItemStore) ListTripItems(ctx context.Context, tripID string) ([]types.TripItem, error) {
	query := `
		SELECT ` + tripItemColumns + `
		FROM trip_items
		WHERE trip_id = $1
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.TripItem
	for rows.Next() {
		item := types.TripItem{}
		err := rows.Scan(
			&item.ID,
			&item.TripID,
			&item.InventoryItemID,
			&item.Quantity,
			&item.Notes,
			&item.StoreID,
			&item.IsChecked,
			&item.CheckedAt,
			&item.CheckedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem overwrites quantity, notes, and store of an existing item.
func (s *TripItemStore) UpdateItem(ctx context.Context, id string, update *types.TripItemUpdate) (*types.TripItem, error) {
	query := `
		UPDATE trip_items
		SET quantity = $1,
			notes = $2,
			store_id = $3,
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + tripItemColumns

	return scanTripItem(s.db.QueryRow(ctx, query,
		update.Quantity,
		update.Notes,
		update.StoreID,
		id,
	))
}

// SetChecked updates the checked state. checkedAt and checkedBy must be nil
// when isChecked is false.
func (s *TripItemStore) SetChecked(ctx context.Context, id string, isChecked bool, checkedAt *time.Time, checkedBy *string) (*types.TripItem, error) {
	query := `
		UPDATE trip_items
		SET is_checked = $1,
			checked_at = $2,
			checked_by = $3,
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + tripItemColumns

	return scanTripItem(s.db.QueryRow(ctx, query, isChecked, checkedAt, checkedBy, id))
}

// DeleteItem removes a trip item.
func (s *TripItemStore) DeleteItem(ctx context.Context, id string) error {
	query := `DELETE FROM trip_items WHERE id = $1`

	result, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

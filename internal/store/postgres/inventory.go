package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// InventoryStore implements store.InventoryStore using PostgreSQL.
type InventoryStore struct {
	db Querier
}

// NewInventoryStore creates a new InventoryStore instance.
func NewInventoryStore(db Querier) *InventoryStore {
	return &InventoryStore{db: db}
}

var _ store.InventoryStore = (*InventoryStore)(nil)

const inventoryColumns = `id, household_id, name, category, unit, created_at, updated_at`

func scanInventoryItem(row pgx.Row) (*types.InventoryItem, error) {
	item := &types.InventoryItem{}
	err := row.Scan(
		&item.ID,
		&item.HouseholdID,
		&item.Name,
		&item.Category,
		&item.Unit,
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

// CreateItem inserts a new inventory item.
func (s *InventoryStore) CreateItem(ctx context.Context, item *types.InventoryItem) (string, error) {
	query := `
		INSERT INTO inventory_items (household_id, name, category, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRow(ctx, query, item.HouseholdID, item.Name, item.Category, item.Unit)
	if err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return "", err
	}
	return item.ID, nil
}

// GetItem retrieves an inventory item by its ID.
func (s *InventoryStore) GetItem(ctx context.Context, id string) (*types.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	return scanInventoryItem(s.db.QueryRow(ctx, query, id))
}

// ListItems lists a household's inventory.
func (s *InventoryStore) ListItems(ctx context.Context, householdID string) ([]types.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE household_id = $1
		ORDER BY name`

	rows, err := s.db.Query(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.InventoryItem
	for rows.Next() {
		item := types.InventoryItem{}
		err := rows.Scan(
			&item.ID,
			&item.HouseholdID,
			&item.Name,
			&item.Category,
			&item.Unit,
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

// UpdateItem updates an inventory item, keeping unspecified fields.
func (s *InventoryStore) UpdateItem(ctx context.Context, id string, update *types.InventoryItemUpdate) (*types.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET name = COALESCE($1, name),
			category = COALESCE($2, category),
			unit = COALESCE($3, unit),
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + inventoryColumns

	return scanInventoryItem(s.db.QueryRow(ctx, query, update.Name, update.Category, update.Unit, id))
}

// DeleteItem removes an inventory item.
func (s *InventoryStore) DeleteItem(ctx context.Context, id string) error {
	query := `DELETE FROM inventory_items WHERE id = $1`

	result, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

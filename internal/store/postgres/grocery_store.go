package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// GroceryStoreStore implements store.GroceryStoreStore using PostgreSQL.
type GroceryStoreStore struct {
	db Querier
}

// NewGroceryStoreStore creates a new GroceryStoreStore instance.
func NewGroceryStoreStore(db Querier) *GroceryStoreStore {
	return &GroceryStoreStore{db: db}
}

var _ store.GroceryStoreStore = (*GroceryStoreStore)(nil)

const groceryStoreColumns = `id, household_id, name, location, created_at, updated_at`

func scanGroceryStore(row pgx.Row) (*types.GroceryStore, error) {
	gs := &types.GroceryStore{}
	err := row.Scan(&gs.ID, &gs.HouseholdID, &gs.Name, &gs.Location, &gs.CreatedAt, &gs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return gs, nil
}

// CreateStore inserts a new grocery store.
func (s *GroceryStoreStore) CreateStore(ctx context.Context, gs *types.GroceryStore) (string, error) {
	query := `
		INSERT INTO grocery_stores (household_id, name, location)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRow(ctx, query, gs.HouseholdID, gs.Name, gs.Location)
	if err := row.Scan(&gs.ID, &gs.CreatedAt, &gs.UpdatedAt); err != nil {
		return "", err
	}
	return gs.ID, nil
}

// GetStore retrieves a grocery store by its ID.
func (s *GroceryStoreStore) GetStore(ctx context.Context, id string) (*types.GroceryStore, error) {
	query := `SELECT ` + groceryStoreColumns + ` FROM grocery_stores WHERE id = $1`
	return scanGroceryStore(s.db.QueryRow(ctx, query, id))
}

// ListStores lists a household's grocery stores.
func (s *GroceryStoreStore) ListStores(ctx context.Context, householdID string) ([]types.GroceryStore, error) {
	query := `
		SELECT ` + groceryStoreColumns + `
		FROM grocery_stores
		WHERE household_id = $1
		ORDER BY name`

	rows, err := s.db.Query(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []types.GroceryStore
	for rows.Next() {
		gs := types.GroceryStore{}
		if err := rows.Scan(&gs.ID, &gs.HouseholdID, &gs.Name, &gs.Location, &gs.CreatedAt, &gs.UpdatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, gs)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// UpdateStore updates a grocery store, keeping unspecified fields.
func (s *GroceryStoreStore) UpdateStore(ctx context.Context, id string, update *types.GroceryStoreUpdate) (*types.GroceryStore, error) {
	query := `
		UPDATE grocery_stores
		SET name = COALESCE($1, name),
			location = COALESCE($2, location),
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + groceryStoreColumns

	return scanGroceryStore(s.db.QueryRow(ctx, query, update.Name, update.Location, id))
}

// DeleteStore removes a grocery store.
func (s *GroceryStoreStore) DeleteStore(ctx context.Context, id string) error {
	query := `DELETE FROM grocery_stores WHERE id = $1`

	result, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// TripStore implements store.TripStore using PostgreSQL.
type TripStore struct {
	db Querier
}

// NewTripStore creates a new TripStore instance.
func NewTripStore(db Querier) *TripStore {
	return &TripStore{db: db}
}

var _ store.TripStore = (*TripStore)(nil)

const tripColumns = `id, household_id, name, status, created_by, created_at, updated_at`

func scanTrip(row pgx.Row) (*types.ShoppingTrip, error) {
	trip := &types.ShoppingTrip{}
	var householdID *string
	err := row.Scan(
		&trip.ID,
		&householdID,
		&trip.Name,
		&trip.Status,
		&trip.CreatedBy,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if householdID != nil {
		trip.HouseholdID = *householdID
	}
	return trip, nil
}

// CreateTrip inserts a new shopping trip.
func (s *TripStore) CreateTrip(ctx context.Context, trip *types.ShoppingTrip) (string, error) {
	query := `
		INSERT INTO shopping_trips (household_id, name, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	var householdID *string
	if trip.HouseholdID != "" {
		householdID = &trip.HouseholdID
	}

	row := s.db.QueryRow(ctx, query, householdID, trip.Name, trip.Status, trip.CreatedBy)
	if err := row.Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt); err != nil {
		return "", err
	}
	return trip.ID, nil
}

// GetTrip retrieves a trip by its ID.
func (s *TripStore) GetTrip(ctx context.Context, id string) (*types.ShoppingTrip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM shopping_trips
		WHERE id = $1`

	return scanTrip(s.db.QueryRow(ctx, query, id))
}

// ListUserTrips retrieves trips the user created or collaborates on.
func (s *TripStore) ListUserTrips(ctx context.Context, userID string) ([]types.ShoppingTrip, error) {
	query := `
		SELECT DISTINCT t.id, t.household_id, t.name, t.status, t.created_by, t.created_at, t.updated_at
		FROM shopping_trips t
		LEFT JOIN trip_collaborators c ON c.trip_id = t.id
		WHERE t.created_by = $1 OR c.user_id = $1
		ORDER BY t.created_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []types.ShoppingTrip
	for rows.Next() {
		trip := types.ShoppingTrip{}
		var householdID *string
		err := rows.Scan(
			&trip.ID,
			&householdID,
			&trip.Name,
			&trip.Status,
			&trip.CreatedBy,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if householdID != nil {
			trip.HouseholdID = *householdID
		}
		trips = append(trips, trip)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return trips, nil
}

// UpdateTripStatus sets a trip's status.
func (s *TripStore) UpdateTripStatus(ctx context.Context, id string, status types.TripStatus) (*types.ShoppingTrip, error) {
	query := `
		UPDATE shopping_trips
		SET status = $1,
			updated_at = NOW()
		WHERE id = $2
		RETURNING ` + tripColumns

	return scanTrip(s.db.QueryRow(ctx, query, status, id))
}

// DeleteTrip removes a trip. Items and collaborator rows cascade.
func (s *TripStore) DeleteTrip(ctx context.Context, id string) error {
	query := `DELETE FROM shopping_trips WHERE id = $1`

	result, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddCollaborator adds a user to a trip's collaborator set.
func (s *TripStore) AddCollaborator(ctx context.Context, collaborator *types.TripCollaborator) error {
	query := `
		INSERT INTO trip_collaborators (trip_id, user_id, added_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id, user_id) DO NOTHING`

	_, err := s.db.Exec(ctx, query, collaborator.TripID, collaborator.UserID, collaborator.AddedBy)
	return err
}

// RemoveCollaborator removes a user from a trip's collaborator set.
func (s *TripStore) RemoveCollaborator(ctx context.Context, tripID, userID string) error {
	query := `DELETE FROM trip_collaborators WHERE trip_id = $1 AND user_id = $2`

	result, err := s.db.Exec(ctx, query, tripID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListCollaborators lists the explicit collaborator set of a trip.
func (s *TripStore) ListCollaborators(ctx context.Context, tripID string) ([]types.TripCollaborator, error) {
	query := `
		SELECT trip_id, user_id, added_by, added_at
		FROM trip_collaborators
		WHERE trip_id = $1
		ORDER BY added_at`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collaborators []types.TripCollaborator
	for rows.Next() {
		c := types.TripCollaborator{}
		if err := rows.Scan(&c.TripID, &c.UserID, &c.AddedBy, &c.AddedAt); err != nil {
			return nil, err
		}
		collaborators = append(collaborators, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return collaborators, nil
}

// IsCreatorOrCollaborator reports whether the user may read and mutate the
// trip. The creator counts without an explicit collaborator row.
func (s *TripStore) IsCreatorOrCollaborator(ctx context.Context, tripID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shopping_trips WHERE id = $1 AND created_by = $2
			UNION
			SELECT 1 FROM trip_collaborators WHERE trip_id = $1 AND user_id = $2
		)`

	var allowed bool
	if err := s.db.QueryRow(ctx, query, tripID, userID).Scan(&allowed); err != nil {
		return false, err
	}
	return allowed, nil
}

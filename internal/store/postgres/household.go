package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// HouseholdStore implements store.HouseholdStore using PostgreSQL.
type HouseholdStore struct {
	db Querier
}

// NewHouseholdStore creates a new HouseholdStore instance.
func NewHouseholdStore(db Querier) *HouseholdStore {
	return &HouseholdStore{db: db}
}

var _ store.HouseholdStore = (*HouseholdStore)(nil)

const householdColumns = `id, name, invite_code, created_by, created_at, updated_at`

func scanHousehold(row pgx.Row) (*types.Household, error) {
	h := &types.Household{}
	err := row.Scan(&h.ID, &h.Name, &h.InviteCode, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

// CreateHousehold inserts a new household.
func (s *HouseholdStore) CreateHousehold(ctx context.Context, household *types.Household) (string, error) {
	query := `
		INSERT INTO households (name, invite_code, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRow(ctx, query, household.Name, household.InviteCode, household.CreatedBy)
	if err := row.Scan(&household.ID, &household.CreatedAt, &household.UpdatedAt); err != nil {
		return "", err
	}
	return household.ID, nil
}

// GetHousehold retrieves a household by its ID.
func (s *HouseholdStore) GetHousehold(ctx context.Context, id string) (*types.Household, error) {
	query := `SELECT ` + householdColumns + ` FROM households WHERE id = $1`
	return scanHousehold(s.db.QueryRow(ctx, query, id))
}

// GetHouseholdByInviteCode retrieves a household by its invite code.
func (s *HouseholdStore) GetHouseholdByInviteCode(ctx context.Context, code string) (*types.Household, error) {
	query := `SELECT ` + householdColumns + ` FROM households WHERE invite_code = $1`
	return scanHousehold(s.db.QueryRow(ctx, query, code))
}

// AddMember adds a user to a household. Adding an existing member is a no-op.
func (s *HouseholdStore) AddMember(ctx context.Context, householdID, userID string) error {
	query := `
		INSERT INTO household_members (household_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (household_id, user_id) DO NOTHING`

	_, err := s.db.Exec(ctx, query, householdID, userID)
	return err
}

// ListMembers lists a household's members.
func (s *HouseholdStore) ListMembers(ctx context.Context, householdID string) ([]types.HouseholdMember, error) {
	query := `
		SELECT household_id, user_id, joined_at
		FROM household_members
		WHERE household_id = $1
		ORDER BY joined_at`

	rows, err := s.db.Query(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []types.HouseholdMember
	for rows.Next() {
		m := types.HouseholdMember{}
		if err := rows.Scan(&m.HouseholdID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// IsMember reports whether the user belongs to the household.
func (s *HouseholdStore) IsMember(ctx context.Context, householdID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM household_members WHERE household_id = $1 AND user_id = $2
		)`

	var member bool
	if err := s.db.QueryRow(ctx, query, householdID, userID).Scan(&member); err != nil {
		return false, err
	}
	return member, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

// UserStore implements store.UserStore using PostgreSQL.
type UserStore struct {
	db Querier
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db Querier) *UserStore {
	return &UserStore{db: db}
}

var _ store.UserStore = (*UserStore)(nil)

const userColumns = `id, email, username, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*types.User, error) {
	u := &types.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// CreateUser inserts a new user account.
func (s *UserStore) CreateUser(ctx context.Context, user *types.User) (string, error) {
	query := `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRow(ctx, query, user.Email, user.Username, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return "", err
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by their email address.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.QueryRow(ctx, query, email))
}

package models

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/types"
)

func init() {
	logger.IsTest = true
}

func storeNotFound() error {
	return store.ErrNotFound
}

type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) CreateTrip(ctx context.Context, trip *types.ShoppingTrip) (string, error) {
	args := m.Called(ctx, trip)
	return args.String(0), args.Error(1)
}

func (m *MockTripStore) GetTrip(ctx context.Context, id string) (*types.ShoppingTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ShoppingTrip), args.Error(1)
}

func (m *MockTripStore) ListUserTrips(ctx context.Context, userID string) ([]types.ShoppingTrip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ShoppingTrip), args.Error(1)
}

func (m *MockTripStore) UpdateTripStatus(ctx context.Context, id string, status types.TripStatus) (*types.ShoppingTrip, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ShoppingTrip), args.Error(1)
}

func (m *MockTripStore) DeleteTrip(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripStore) AddCollaborator(ctx context.Context, collaborator *types.TripCollaborator) error {
	args := m.Called(ctx, collaborator)
	return args.Error(0)
}

func (m *MockTripStore) RemoveCollaborator(ctx context.Context, tripID, userID string) error {
	args := m.Called(ctx, tripID, userID)
	return args.Error(0)
}

func (m *MockTripStore) ListCollaborators(ctx context.Context, tripID string) ([]types.TripCollaborator, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TripCollaborator), args.Error(1)
}

func (m *MockTripStore) IsCreatorOrCollaborator(ctx context.Context, tripID, userID string) (bool, error) {
	args := m.Called(ctx, tripID, userID)
	return args.Bool(0), args.Error(1)
}

type MockTripItemStore struct {
	mock.Mock
}

func (m *MockTripItemStore) CreateItem(ctx context.Context, item *types.TripItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockTripItemStore) GetItem(ctx context.Context, id string) (*types.TripItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripItem), args.Error(1)
}

func (m *MockTripItemStore) ListTripItems(ctx context.Context, tripID string) ([]types.TripItem, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TripItem), args.Error(1)
}

func (m *MockTripItemStore) UpdateItem(ctx context.Context, id string, update *types.TripItemUpdate) (*types.TripItem, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripItem), args.Error(1)
}

func (m *MockTripItemStore) SetChecked(ctx context.Context, id string, isChecked bool, checkedAt *time.Time, checkedBy *string) (*types.TripItem, error) {
	args := m.Called(ctx, id, isChecked, checkedAt, checkedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripItem), args.Error(1)
}

func (m *MockTripItemStore) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHouseholdStore struct {
	mock.Mock
}

func (m *MockHouseholdStore) CreateHousehold(ctx context.Context, household *types.Household) (string, error) {
	args := m.Called(ctx, household)
	return args.String(0), args.Error(1)
}

func (m *MockHouseholdStore) GetHousehold(ctx context.Context, id string) (*types.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Household), args.Error(1)
}

func (m *MockHouseholdStore) GetHouseholdByInviteCode(ctx context.Context, code string) (*types.Household, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Household), args.Error(1)
}

func (m *MockHouseholdStore) AddMember(ctx context.Context, householdID, userID string) error {
	args := m.Called(ctx, householdID, userID)
	return args.Error(0)
}

func (m *MockHouseholdStore) ListMembers(ctx context.Context, householdID string) ([]types.HouseholdMember, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.HouseholdMember), args.Error(1)
}

func (m *MockHouseholdStore) IsMember(ctx context.Context, householdID, userID string) (bool, error) {
	args := m.Called(ctx, householdID, userID)
	return args.Bool(0), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *types.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

// mockTripCloser records CloseTrip calls.
type mockTripCloser struct {
	mu     sync.Mutex
	closed []string
}

func (m *mockTripCloser) CloseTrip(tripID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, tripID)
}

func (m *mockTripCloser) closedTrips() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.closed))
	copy(out, m.closed)
	return out
}

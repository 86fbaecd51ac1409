package models

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"math/big"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/types"
)

const inviteCodeLength = 8

// Excludes easily confused characters (0/O, 1/I/L).
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

type HouseholdModel struct {
	store store.HouseholdStore
}

func NewHouseholdModel(store store.HouseholdStore) *HouseholdModel {
	return &HouseholdModel{store: store}
}

// CreateHousehold creates a household with a generated invite code and the
// creator as its first member.
func (hm *HouseholdModel) CreateHousehold(ctx context.Context, household *types.Household) error {
	if household.Name == "" {
		return errors.ValidationFailed("Invalid household data", "household name is required")
	}
	if household.CreatedBy == "" {
		return errors.ValidationFailed("Invalid household data", "creator ID is required")
	}

	code, err := generateInviteCode()
	if err != nil {
		return errors.InternalServerError("Failed to generate invite code")
	}
	household.InviteCode = code

	if _, err := hm.store.CreateHousehold(ctx, household); err != nil {
		return errors.NewDatabaseError(err)
	}

	if err := hm.store.AddMember(ctx, household.ID, household.CreatedBy); err != nil {
		return errors.NewDatabaseError(err)
	}
	return nil
}

func (hm *HouseholdModel) GetHousehold(ctx context.Context, householdID string, userID string) (*types.Household, error) {
	if err := hm.authorizeMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	household, err := hm.store.GetHousehold(ctx, householdID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Household", householdID)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return household, nil
}

// JoinByInviteCode adds the user to the household the code belongs to.
func (hm *HouseholdModel) JoinByInviteCode(ctx context.Context, inviteCode string, userID string) (*types.Household, error) {
	if inviteCode == "" {
		return nil, errors.ValidationFailed("Invalid invite", "invite code is required")
	}

	household, err := hm.store.GetHouseholdByInviteCode(ctx, inviteCode)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Household invite", inviteCode)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if err := hm.store.AddMember(ctx, household.ID, userID); err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return household, nil
}

func (hm *HouseholdModel) ListMembers(ctx context.Context, householdID string, userID string) ([]types.HouseholdMember, error) {
	if err := hm.authorizeMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	members, err := hm.store.ListMembers(ctx, householdID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return members, nil
}

// IsMember reports household membership. Other models use it to gate access
// to household-scoped resources.
func (hm *HouseholdModel) IsMember(ctx context.Context, householdID string, userID string) (bool, error) {
	member, err := hm.store.IsMember(ctx, householdID, userID)
	if err != nil {
		return false, errors.NewDatabaseError(err)
	}
	return member, nil
}

func (hm *HouseholdModel) authorizeMember(ctx context.Context, householdID string, userID string) error {
	member, err := hm.IsMember(ctx, householdID, userID)
	if err != nil {
		return err
	}
	if !member {
		return errors.Forbidden("Access to household denied", "user is not a member")
	}
	return nil
}

func generateInviteCode() (string, error) {
	code := make([]byte, inviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

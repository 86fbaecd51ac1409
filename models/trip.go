package models

import (
	"context"
	stderrors "errors"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/events"
	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/types"
)

// TripModel owns trip lifecycle and the collaborator-based authorization gate
// every mutation and subscription goes through.
type TripModel struct {
	store  store.TripStore
	closer events.TripCloser
}

func NewTripModel(store store.TripStore, closer events.TripCloser) *TripModel {
	return &TripModel{
		store:  store,
		closer: closer,
	}
}

// IsCollaborator reports whether the user may act on the trip. The creator
// always may; anyone else needs an explicit collaborator entry.
func (tm *TripModel) IsCollaborator(ctx context.Context, tripID string, userID string) (bool, error) {
	allowed, err := tm.store.IsCreatorOrCollaborator(ctx, tripID, userID)
	if err != nil {
		return false, errors.NewDatabaseError(err)
	}
	return allowed, nil
}

// AuthorizeCollaborator is the gate itself: it returns a forbidden error when
// the user is neither the creator nor a listed collaborator, never an empty
// success.
func (tm *TripModel) AuthorizeCollaborator(ctx context.Context, tripID string, userID string) error {
	allowed, err := tm.IsCollaborator(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return errors.TripAccessDenied(userID, tripID)
	}
	return nil
}

func (tm *TripModel) CreateTrip(ctx context.Context, trip *types.ShoppingTrip) error {
	if trip.Name == "" {
		return errors.ValidationFailed("Invalid trip data", "trip name is required")
	}
	if trip.CreatedBy == "" {
		return errors.ValidationFailed("Invalid trip data", "creator ID is required")
	}
	if trip.Status == "" {
		trip.Status = types.TripStatusPlanning
	}
	if !trip.Status.IsValid() {
		return errors.ValidationFailed("Invalid trip data", "unknown trip status")
	}

	if _, err := tm.store.CreateTrip(ctx, trip); err != nil {
		return errors.NewDatabaseError(err)
	}
	return nil
}

func (tm *TripModel) GetTrip(ctx context.Context, tripID string, userID string) (*types.ShoppingTrip, error) {
	if err := tm.AuthorizeCollaborator(ctx, tripID, userID); err != nil {
		return nil, err
	}

	trip, err := tm.store.GetTrip(ctx, tripID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.TripNotFound(tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return trip, nil
}

func (tm *TripModel) ListUserTrips(ctx context.Context, userID string) ([]types.ShoppingTrip, error) {
	trips, err := tm.store.ListUserTrips(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return trips, nil
}

// UpdateStatus transitions a trip's lifecycle state. Completing the trip closes
// its event channel, so every open stream sees normal completion.
func (tm *TripModel) UpdateStatus(ctx context.Context, tripID string, userID string, newStatus types.TripStatus) (*types.ShoppingTrip, error) {
	log := logger.GetLogger()

	if !newStatus.IsValid() {
		return nil, errors.ValidationFailed("Invalid status", "unknown trip status")
	}

	if err := tm.AuthorizeCollaborator(ctx, tripID, userID); err != nil {
		return nil, err
	}

	trip, err := tm.store.GetTrip(ctx, tripID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.TripNotFound(tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if !trip.Status.IsValidTransition(newStatus) {
		return nil, errors.ValidationFailed(
			"Invalid status transition",
			string(trip.Status)+" cannot transition to "+string(newStatus),
		)
	}

	updated, err := tm.store.UpdateTripStatus(ctx, tripID, newStatus)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	if newStatus == types.TripStatusCompleted {
		tm.closer.CloseTrip(tripID)
		log.Infow("Trip completed, event channel closed", "tripId", tripID)
	}
	return updated, nil
}

// DeleteTrip removes a trip. Only the creator may delete. Any open event
// streams see completion.
func (tm *TripModel) DeleteTrip(ctx context.Context, tripID string, userID string) error {
	trip, err := tm.store.GetTrip(ctx, tripID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.TripNotFound(tripID)
		}
		return errors.NewDatabaseError(err)
	}

	if trip.CreatedBy != userID {
		return errors.TripAccessDenied(userID, tripID)
	}

	if err := tm.store.DeleteTrip(ctx, tripID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.TripNotFound(tripID)
		}
		return errors.NewDatabaseError(err)
	}

	tm.closer.CloseTrip(tripID)
	return nil
}

func (tm *TripModel) AddCollaborator(ctx context.Context, tripID string, userID string, collaboratorID string) error {
	if collaboratorID == "" {
		return errors.ValidationFailed("Invalid collaborator", "user ID is required")
	}

	if err := tm.AuthorizeCollaborator(ctx, tripID, userID); err != nil {
		return err
	}

	err := tm.store.AddCollaborator(ctx, &types.TripCollaborator{
		TripID:  tripID,
		UserID:  collaboratorID,
		AddedBy: userID,
	})
	if err != nil {
		return errors.NewDatabaseError(err)
	}
	return nil
}

// RemoveCollaborator removes a user from the collaborator set. The creator may
// remove anyone; collaborators may remove themselves.
func (tm *TripModel) RemoveCollaborator(ctx context.Context, tripID string, userID string, collaboratorID string) error {
	trip, err := tm.store.GetTrip(ctx, tripID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.TripNotFound(tripID)
		}
		return errors.NewDatabaseError(err)
	}

	if userID != trip.CreatedBy && userID != collaboratorID {
		return errors.TripAccessDenied(userID, tripID)
	}

	if err := tm.store.RemoveCollaborator(ctx, tripID, collaboratorID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Collaborator", collaboratorID)
		}
		return errors.NewDatabaseError(err)
	}
	return nil
}

func (tm *TripModel) ListCollaborators(ctx context.Context, tripID string, userID string) ([]types.TripCollaborator, error) {
	if err := tm.AuthorizeCollaborator(ctx, tripID, userID); err != nil {
		return nil, err
	}

	collaborators, err := tm.store.ListCollaborators(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return collaborators, nil
}

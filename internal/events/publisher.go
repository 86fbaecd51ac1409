package events

import (
	"context"

	"github.com/shopsquad/shopsquad-backend/types"
)

// Publisher is the producing side of the broker. Mutation services depend on
// this interface only; they never hold channel references.
type Publisher interface {
	Publish(ctx context.Context, event types.TripEvent) error
}

// Subscriber is the consuming side, used by streaming delivery endpoints.
type Subscriber interface {
	Subscribe(ctx context.Context, tripID string) (*Subscription, error)
}

// TripCloser tears a trip's channel down. Trip lifecycle code uses this when a
// trip completes or is deleted.
type TripCloser interface {
	CloseTrip(tripID string)
}

var _ Publisher = (*Broker)(nil)
var _ Subscriber = (*Broker)(nil)
var _ TripCloser = (*Broker)(nil)

// PublishItemEvent builds a TripEvent from a typed payload and publishes it.
// It keeps event construction in one place so every mutation emits the same
// envelope shape.
func PublishItemEvent(ctx context.Context, pub Publisher, tripID, tripItemID string, payload types.EventPayload) error {
	event, err := types.NewTripEvent(tripID, tripItemID, payload)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, event)
}

package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopsquad/shopsquad-backend/errors"
)

type EventType string

const (
	EventTypeItemAdded   EventType = "ITEM_ADDED"
	EventTypeItemUpdated EventType = "ITEM_UPDATED"
	EventTypeItemChecked EventType = "ITEM_CHECKED"
	EventTypeItemRemoved EventType = "ITEM_REMOVED"
)

// EventPayload is implemented by exactly one struct per event kind, so the
// payload shape is statically tied to the type tag. The wire form still
// carries a plain "type" field for clients.
type EventPayload interface {
	EventType() EventType
}

// ItemAddedPayload carries the full item as created.
type ItemAddedPayload struct {
	Item TripItem `json:"item"`
}

func (ItemAddedPayload) EventType() EventType { return EventTypeItemAdded }

// ItemUpdatedPayload carries the full item after the update.
type ItemUpdatedPayload struct {
	Item TripItem `json:"item"`
}

func (ItemUpdatedPayload) EventType() EventType { return EventTypeItemUpdated }

// ItemCheckedPayload carries only the checked state delta.
type ItemCheckedPayload struct {
	IsChecked bool       `json:"isChecked"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
	CheckedBy string     `json:"checkedBy,omitempty"`
}

func (ItemCheckedPayload) EventType() EventType { return EventTypeItemChecked }

// ItemRemovedPayload identifies the deleted item; the item itself is gone.
type ItemRemovedPayload struct {
	ID     string `json:"id"`
	TripID string `json:"tripId"`
}

func (ItemRemovedPayload) EventType() EventType { return EventTypeItemRemoved }

// TripEvent is the message fanned out to every subscriber of a trip. It is
// never persisted; a trip with no open channel silently discards it.
type TripEvent struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	TripID     string          `json:"tripId"`
	TripItemID string          `json:"tripItemId"`
	Timestamp  time.Time       `json:"timestamp"`
	Payload    json.RawMessage `json:"payload"`
}

// NewTripEvent builds an event from a typed payload. The type tag is taken
// from the payload, so a mismatched tag/shape pair cannot be constructed.
func NewTripEvent(tripID, tripItemID string, payload EventPayload) (TripEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return TripEvent{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return TripEvent{
		ID:         uuid.NewString(),
		Type:       payload.EventType(),
		TripID:     tripID,
		TripItemID: tripItemID,
		Timestamp:  time.Now().UTC(),
		Payload:    data,
	}, nil
}

// Validate checks the event carries the required envelope fields.
func (e TripEvent) Validate() error {
	if e.ID == "" {
		return errors.ValidationFailed("invalid event", "event ID is required")
	}
	if e.Type == "" {
		return errors.ValidationFailed("invalid event", "event type is required")
	}
	if e.TripID == "" {
		return errors.ValidationFailed("invalid event", "trip ID is required")
	}
	if e.Timestamp.IsZero() {
		return errors.ValidationFailed("invalid event", "timestamp is required")
	}
	return nil
}

// DecodePayload unmarshals the payload into the struct matching the type tag.
func (e TripEvent) DecodePayload() (EventPayload, error) {
	switch e.Type {
	case EventTypeItemAdded:
		var p ItemAddedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case EventTypeItemUpdated:
		var p ItemUpdatedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case EventTypeItemChecked:
		var p ItemCheckedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case EventTypeItemRemoved:
		var p ItemRemovedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}

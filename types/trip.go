package types

import "time"

type TripStatus string

const (
	TripStatusPlanning  TripStatus = "PLANNING"  // Trip list is being assembled
	TripStatusShopping  TripStatus = "SHOPPING"  // Someone is at the store
	TripStatusCompleted TripStatus = "COMPLETED" // Terminal state
)

// ShoppingTrip is one shopping session. HouseholdID is empty for personal
// trips. The creator is always a collaborator; anyone else must be listed
// explicitly.
type ShoppingTrip struct {
	ID          string     `json:"id"`
	HouseholdID string     `json:"householdId,omitempty"`
	Name        string     `json:"name"`
	Status      TripStatus `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// String provides a string representation of the status
func (ts TripStatus) String() string {
	return string(ts)
}

// IsValid checks if the status is a valid trip status
func (ts TripStatus) IsValid() bool {
	switch ts {
	case TripStatusPlanning, TripStatusShopping, TripStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidTransition checks if a status transition is allowed
func (ts TripStatus) IsValidTransition(newStatus TripStatus) bool {
	transitions := map[TripStatus][]TripStatus{
		TripStatusPlanning:  {TripStatusShopping, TripStatusCompleted},
		TripStatusShopping:  {TripStatusPlanning, TripStatusCompleted},
		TripStatusCompleted: {}, // Terminal state
	}

	allowed, exists := transitions[ts]
	if !exists {
		return false
	}
	for _, next := range allowed {
		if next == newStatus {
			return true
		}
	}
	return false
}

type TripCreate struct {
	Name        string `json:"name" binding:"required"`
	HouseholdID string `json:"householdId"`
}

type TripStatusUpdate struct {
	Status TripStatus `json:"status" binding:"required"`
}

type TripCollaborator struct {
	TripID  string    `json:"tripId"`
	UserID  string    `json:"userId"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

type CollaboratorAdd struct {
	UserID string `json:"userId" binding:"required"`
}

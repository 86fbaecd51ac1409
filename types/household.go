package types

import "time"

type Household struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"inviteCode"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type HouseholdMember struct {
	HouseholdID string    `json:"householdId"`
	UserID      string    `json:"userId"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type HouseholdCreate struct {
	Name string `json:"name" binding:"required"`
}

type HouseholdJoin struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

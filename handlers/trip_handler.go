package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/types"
)

type TripHandler struct {
	tripModel *models.TripModel
}

func NewTripHandler(tripModel *models.TripModel) *TripHandler {
	return &TripHandler{tripModel: tripModel}
}

// CreateTripHandler handles POST /v1/trips.
func (h *TripHandler) CreateTripHandler(c *gin.Context) {
	var req types.TripCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	trip := &types.ShoppingTrip{
		Name:        req.Name,
		HouseholdID: req.HouseholdID,
		Status:      types.TripStatusPlanning,
		CreatedBy:   c.GetString(middleware.UserIDKey),
	}

	if err := h.tripModel.CreateTrip(c.Request.Context(), trip); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// GetTripHandler handles GET /v1/trips/:id.
func (h *TripHandler) GetTripHandler(c *gin.Context) {
	trip, err := h.tripModel.GetTrip(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// ListTripsHandler handles GET /v1/trips.
func (h *TripHandler) ListTripsHandler(c *gin.Context) {
	trips, err := h.tripModel.ListUserTrips(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if trips == nil {
		trips = []types.ShoppingTrip{}
	}
	c.JSON(http.StatusOK, trips)
}

// UpdateStatusHandler handles PATCH /v1/trips/:id/status.
func (h *TripHandler) UpdateStatusHandler(c *gin.Context) {
	var req types.TripStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	trip, err := h.tripModel.UpdateStatus(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// DeleteTripHandler handles DELETE /v1/trips/:id.
func (h *TripHandler) DeleteTripHandler(c *gin.Context) {
	if err := h.tripModel.DeleteTrip(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCollaboratorHandler handles POST /v1/trips/:id/collaborators.
func (h *TripHandler) AddCollaboratorHandler(c *gin.Context) {
	var req types.CollaboratorAdd
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	err := h.tripModel.AddCollaborator(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey), req.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusCreated)
}

// RemoveCollaboratorHandler handles DELETE /v1/trips/:id/collaborators/:userId.
func (h *TripHandler) RemoveCollaboratorHandler(c *gin.Context) {
	err := h.tripModel.RemoveCollaborator(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCollaboratorsHandler handles GET /v1/trips/:id/collaborators.
func (h *TripHandler) ListCollaboratorsHandler(c *gin.Context) {
	collaborators, err := h.tripModel.ListCollaborators(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if collaborators == nil {
		collaborators = []types.TripCollaborator{}
	}
	c.JSON(http.StatusOK, collaborators)
}

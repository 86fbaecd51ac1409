package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/types"
)

type HouseholdHandler struct {
	householdModel *models.HouseholdModel
}

func NewHouseholdHandler(householdModel *models.HouseholdModel) *HouseholdHandler {
	return &HouseholdHandler{householdModel: householdModel}
}

// CreateHouseholdHandler handles POST /v1/households.
func (h *HouseholdHandler) CreateHouseholdHandler(c *gin.Context) {
	var req types.HouseholdCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	household := &types.Household{
		Name:      req.Name,
		CreatedBy: c.GetString(middleware.UserIDKey),
	}

	if err := h.householdModel.CreateHousehold(c.Request.Context(), household); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, household)
}

// GetHouseholdHandler handles GET /v1/households/:id.
func (h *HouseholdHandler) GetHouseholdHandler(c *gin.Context) {
	household, err := h.householdModel.GetHousehold(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, household)
}

// JoinHouseholdHandler handles POST /v1/households/join.
func (h *HouseholdHandler) JoinHouseholdHandler(c *gin.Context) {
	var req types.HouseholdJoin
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	household, err := h.householdModel.JoinByInviteCode(c.Request.Context(), req.InviteCode, c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, household)
}

// ListMembersHandler handles GET /v1/households/:id/members.
func (h *HouseholdHandler) ListMembersHandler(c *gin.Context) {
	members, err := h.householdModel.ListMembers(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if members == nil {
		members = []types.HouseholdMember{}
	}
	c.JSON(http.StatusOK, members)
}

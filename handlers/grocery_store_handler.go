package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/types"
)

type GroceryStoreHandler struct {
	storeModel *models.GroceryStoreModel
}

func NewGroceryStoreHandler(storeModel *models.GroceryStoreModel) *GroceryStoreHandler {
	return &GroceryStoreHandler{storeModel: storeModel}
}

// CreateStoreHandler handles POST /v1/households/:id/stores.
func (h *GroceryStoreHandler) CreateStoreHandler(c *gin.Context) {
	var req types.GroceryStoreCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	gs := &types.GroceryStore{
		HouseholdID: c.Param("id"),
		Name:        req.Name,
		Location:    req.Location,
	}

	if err := h.storeModel.CreateStore(c.Request.Context(), c.GetString(middleware.UserIDKey), gs); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gs)
}

// ListStoresHandler handles GET /v1/households/:id/stores.
func (h *GroceryStoreHandler) ListStoresHandler(c *gin.Context) {
	stores, err := h.storeModel.ListStores(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if stores == nil {
		stores = []types.GroceryStore{}
	}
	c.JSON(http.StatusOK, stores)
}

// UpdateStoreHandler handles PUT /v1/stores/:storeId.
func (h *GroceryStoreHandler) UpdateStoreHandler(c *gin.Context) {
	var req types.GroceryStoreUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	gs, err := h.storeModel.UpdateStore(c.Request.Context(), c.Param("storeId"), c.GetString(middleware.UserIDKey), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gs)
}

// DeleteStoreHandler handles DELETE /v1/stores/:storeId.
func (h *GroceryStoreHandler) DeleteStoreHandler(c *gin.Context) {
	if err := h.storeModel.DeleteStore(c.Request.Context(), c.Param("storeId"), c.GetString(middleware.UserIDKey)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

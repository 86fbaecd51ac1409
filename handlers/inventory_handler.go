package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/types"
)

type InventoryHandler struct {
	inventoryModel *models.InventoryModel
}

func NewInventoryHandler(inventoryModel *models.InventoryModel) *InventoryHandler {
	return &InventoryHandler{inventoryModel: inventoryModel}
}

// CreateItemHandler handles POST /v1/households/:id/inventory.
func (h *InventoryHandler) CreateItemHandler(c *gin.Context) {
	var req types.InventoryItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	item := &types.InventoryItem{
		HouseholdID: c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
	}

	if err := h.inventoryModel.CreateItem(c.Request.Context(), c.GetString(middleware.UserIDKey), item); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListItemsHandler handles GET /v1/households/:id/inventory.
func (h *InventoryHandler) ListItemsHandler(c *gin.Context) {
	items, err := h.inventoryModel.ListItems(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if items == nil {
		items = []types.InventoryItem{}
	}
	c.JSON(http.StatusOK, items)
}

// UpdateItemHandler handles PUT /v1/inventory/:itemId.
func (h *InventoryHandler) UpdateItemHandler(c *gin.Context) {
	var req types.InventoryItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	item, err := h.inventoryModel.UpdateItem(c.Request.Context(), c.Param("itemId"), c.GetString(middleware.UserIDKey), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItemHandler handles DELETE /v1/inventory/:itemId.
func (h *InventoryHandler) DeleteItemHandler(c *gin.Context) {
	if err := h.inventoryModel.DeleteItem(c.Request.Context(), c.Param("itemId"), c.GetString(middleware.UserIDKey)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

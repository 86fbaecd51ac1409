package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/events"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/types"
)

// TripItemHandler exposes the trip checklist: CRUD mutations plus the SSE
// stream every collaborator watches during a shopping session.
type TripItemHandler struct {
	itemModel  *models.TripItemModel
	tripModel  *models.TripModel
	subscriber events.Subscriber
}

func NewTripItemHandler(itemModel *models.TripItemModel, tripModel *models.TripModel, subscriber events.Subscriber) *TripItemHandler {
	return &TripItemHandler{
		itemModel:  itemModel,
		tripModel:  tripModel,
		subscriber: subscriber,
	}
}

// AddItemHandler handles POST /v1/trips/:id/items.
func (h *TripItemHandler) AddItemHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.TripItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	tripID := c.Param("id")
	userID := c.GetString(middleware.UserIDKey)

	item, err := h.itemModel.AddItem(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListItemsHandler handles GET /v1/trips/:id/items.
func (h *TripItemHandler) ListItemsHandler(c *gin.Context) {
	tripID := c.Param("id")
	userID := c.GetString(middleware.UserIDKey)

	items, err := h.itemModel.ListTripItems(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if items == nil {
		items = []types.TripItem{}
	}
	c.JSON(http.StatusOK, items)
}

// UpdateItemHandler handles PUT /v1/trips/:id/items/:itemId.
func (h *TripItemHandler) UpdateItemHandler(c *gin.Context) {
	var req types.TripItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	itemID := c.Param("itemId")
	userID := c.GetString(middleware.UserIDKey)

	item, err := h.itemModel.UpdateItem(c.Request.Context(), itemID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CheckItemHandler handles PATCH /v1/trips/:id/items/:itemId/check.
func (h *TripItemHandler) CheckItemHandler(c *gin.Context) {
	var req types.TripItemCheck
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	itemID := c.Param("itemId")
	userID := c.GetString(middleware.UserIDKey)

	item, err := h.itemModel.CheckItem(c.Request.Context(), itemID, userID, *req.IsChecked)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItemHandler handles DELETE /v1/trips/:id/items/:itemId.
func (h *TripItemHandler) DeleteItemHandler(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := c.GetString(middleware.UserIDKey)

	if err := h.itemModel.DeleteItem(c.Request.Context(), itemID, userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// StreamItemsHandler handles GET /v1/trips/:id/items/stream. It authorizes
// before writing a single byte, then relays the trip's events as SSE frames
// until the client disconnects or the trip's channel closes.
func (h *TripItemHandler) StreamItemsHandler(c *gin.Context) {
	log := logger.GetLogger()

	tripID := c.Param("id")
	userID := c.GetString(middleware.UserIDKey)

	if err := h.tripModel.AuthorizeCollaborator(c.Request.Context(), tripID, userID); err != nil {
		_ = c.Error(err)
		return
	}

	sub, err := h.subscriber.Subscribe(c.Request.Context(), tripID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	log.Infow("Event stream opened", "tripId", tripID, "userId", userID)

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				// Channel closed: the trip completed or was deleted.
				log.Infow("Event stream completed", "tripId", tripID, "userId", userID)
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Errorw("Failed to marshal event", "tripId", tripID, "error", err)
				return true
			}
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(data)
			_, _ = w.Write([]byte("\n\n"))
			return true
		case <-clientGone:
			log.Debugw("Event stream client disconnected", "tripId", tripID, "userId", userID)
			return false
		}
	})
}

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/shopsquad/shopsquad-backend/config"
	"github.com/shopsquad/shopsquad-backend/internal/events"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
)

// WSHandler relays a trip's event channel over a WebSocket connection. Same
// lifecycle as the SSE stream: gate, subscribe, relay, clean close.
type WSHandler struct {
	tripModel      *models.TripModel
	subscriber     events.Subscriber
	allowedOrigins []string
	isDevelopment  bool
}

func NewWSHandler(tripModel *models.TripModel, subscriber events.Subscriber, serverCfg *config.ServerConfig) *WSHandler {
	return &WSHandler{
		tripModel:      tripModel,
		subscriber:     subscriber,
		allowedOrigins: serverCfg.AllowedOrigins,
		isDevelopment:  serverCfg.Environment == config.EnvDevelopment,
	}
}

func (h *WSHandler) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionContextTakeover,
	}
	if h.isDevelopment {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = h.allowedOrigins
	}
	return opts
}

// StreamTripEvents handles GET /v1/trips/:id/ws.
func (h *WSHandler) StreamTripEvents(c *gin.Context) {
	log := logger.GetLogger()

	tripID := c.Param("id")
	userID := c.GetString(middleware.UserIDKey)

	// Authorize before the upgrade so a stranger gets a plain 403.
	if err := h.tripModel.AuthorizeCollaborator(c.Request.Context(), tripID, userID); err != nil {
		_ = c.Error(err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, h.acceptOptions())
	if err != nil {
		log.Errorw("WebSocket accept failed", "tripId", tripID, "userId", userID, "error", err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub, err := h.subscriber.Subscribe(ctx, tripID)
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "subscription failed")
		return
	}
	defer sub.Close()

	log.Infow("WebSocket stream opened", "tripId", tripID, "userId", userID)

	// Drain client frames so pings are answered and closure is noticed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				log.Infow("WebSocket stream completed", "tripId", tripID, "userId", userID)
				_ = conn.Close(websocket.StatusNormalClosure, "trip completed")
				return
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				log.Debugw("WebSocket write failed, closing",
					"tripId", tripID,
					"userId", userID,
					"error", err,
				)
				return
			}
		case <-ctx.Done():
			log.Debugw("WebSocket client disconnected", "tripId", tripID, "userId", userID)
			_ = conn.Close(websocket.StatusNormalClosure, "client disconnected")
			return
		}
	}
}

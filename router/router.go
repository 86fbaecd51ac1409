package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/shopsquad/shopsquad-backend/config"
	"github.com/shopsquad/shopsquad-backend/handlers"
	"github.com/shopsquad/shopsquad-backend/middleware"
)

// Dependencies holds everything route setup needs.
type Dependencies struct {
	Config              *config.Config
	RedisClient         *redis.Client
	UserHandler         *handlers.UserHandler
	HouseholdHandler    *handlers.HouseholdHandler
	GroceryStoreHandler *handlers.GroceryStoreHandler
	InventoryHandler    *handlers.InventoryHandler
	TripHandler         *handlers.TripHandler
	TripItemHandler     *handlers.TripItemHandler
	WSHandler           *handlers.WSHandler
	HealthHandler       *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	authLimiter := middleware.AuthRateLimiter(
		deps.RedisClient,
		deps.Config.RateLimit.AuthRequestsPerMinute,
		deps.Config.RateLimit.Window(),
	)
	auth := v1.Group("/auth")
	auth.Use(authLimiter)
	{
		auth.POST("/register", deps.UserHandler.RegisterHandler)
		auth.POST("/login", deps.UserHandler.LoginHandler)
	}

	authMiddleware := middleware.AuthMiddleware(deps.Config.Server.JwtSecretKey)
	authed := v1.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("/users/me", deps.UserHandler.MeHandler)

		households := authed.Group("/households")
		{
			households.POST("", deps.HouseholdHandler.CreateHouseholdHandler)
			households.POST("/join", deps.HouseholdHandler.JoinHouseholdHandler)
			households.GET("/:id", deps.HouseholdHandler.GetHouseholdHandler)
			households.GET("/:id/members", deps.HouseholdHandler.ListMembersHandler)
			households.POST("/:id/stores", deps.GroceryStoreHandler.CreateStoreHandler)
			households.GET("/:id/stores", deps.GroceryStoreHandler.ListStoresHandler)
			households.POST("/:id/inventory", deps.InventoryHandler.CreateItemHandler)
			households.GET("/:id/inventory", deps.InventoryHandler.ListItemsHandler)
		}

		stores := authed.Group("/stores")
		{
			stores.PUT("/:storeId", deps.GroceryStoreHandler.UpdateStoreHandler)
			stores.DELETE("/:storeId", deps.GroceryStoreHandler.DeleteStoreHandler)
		}

		inventory := authed.Group("/inventory")
		{
			inventory.PUT("/:itemId", deps.InventoryHandler.UpdateItemHandler)
			inventory.DELETE("/:itemId", deps.InventoryHandler.DeleteItemHandler)
		}

		mutationLimiter := middleware.MutationRateLimiter(
			deps.RedisClient,
			deps.Config.RateLimit.MutationRequestsPerMinute,
			deps.Config.RateLimit.Window(),
		)

		trips := authed.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTripHandler)
			trips.GET("", deps.TripHandler.ListTripsHandler)
			trips.GET("/:id", deps.TripHandler.GetTripHandler)
			trips.PATCH("/:id/status", deps.TripHandler.UpdateStatusHandler)
			trips.DELETE("/:id", deps.TripHandler.DeleteTripHandler)

			trips.GET("/:id/collaborators", deps.TripHandler.ListCollaboratorsHandler)
			trips.POST("/:id/collaborators", deps.TripHandler.AddCollaboratorHandler)
			trips.DELETE("/:id/collaborators/:userId", deps.TripHandler.RemoveCollaboratorHandler)

			trips.GET("/:id/items", deps.TripItemHandler.ListItemsHandler)
			trips.POST("/:id/items", mutationLimiter, deps.TripItemHandler.AddItemHandler)
			trips.PUT("/:id/items/:itemId", mutationLimiter, deps.TripItemHandler.UpdateItemHandler)
			trips.PATCH("/:id/items/:itemId/check", mutationLimiter, deps.TripItemHandler.CheckItemHandler)
			trips.DELETE("/:id/items/:itemId", mutationLimiter, deps.TripItemHandler.DeleteItemHandler)

			trips.GET("/:id/items/stream", deps.TripItemHandler.StreamItemsHandler)
			trips.GET("/:id/ws", deps.WSHandler.StreamTripEvents)
		}
	}

	return r
}

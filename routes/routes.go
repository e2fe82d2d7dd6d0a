package routes

import (
	"net/http"
	"time"

	"coladay/handlers"
	"coladay/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the routes need.
type HandlerBundle struct {
	Rooms  *handlers.RoomHandler
	View   *handlers.ViewHandler
	Events *handlers.EventsHandler
}

// RegisterSessionRoutes registers the identity boundary.
func RegisterSessionRoutes(r *gin.Engine) {
	r.POST("/api/session", handlers.CreateSessionHandler)
}

// RegisterRoomRoutes registers the ledger boundary endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/hours", hb.Rooms.GetBusinessHours)
		api.GET("/rooms", hb.Rooms.ListRooms)
		api.GET("/rooms/:room", hb.Rooms.GetRoom)

		// Mutations require an authenticated wallet.
		protected := api.Group("")
		protected.Use(middleware.WalletAuthMiddleware())
		protected.POST("/rooms/:room/slots/:timeslot/book", hb.Rooms.Book)
		protected.POST("/rooms/:room/slots/:timeslot/cancel", hb.Rooms.Cancel)
	}
}

// RegisterViewRoutes registers the per-wallet reconciliation view.
func RegisterViewRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/view")
	{
		api.Use(middleware.WalletAuthMiddleware())
		api.GET("", hb.View.GetView)
		api.PUT("/room", hb.View.SelectRoom)
		api.POST("/book", hb.View.Book)
		api.POST("/cancel", hb.View.Cancel)
		api.DELETE("", hb.View.CloseView)
	}
}

// RegisterEventRoutes registers the confirmation stream.
func RegisterEventRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/events", hb.Events.Stream)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Cola day"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r)
	RegisterRoomRoutes(r, hb)
	RegisterViewRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterHealthRoute(r)
}

package handlers

import (
	"fujical/internal/logger"
	"fujical/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Live calendar push (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

// registerAPIRoutes mounts the read-only calendar surface publicly and the
// per-user favorites behind the token middleware.
func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/calendar/:year/:month", h.getMonthlyCalendar)
		api.GET("/events/:date", h.getDayEvents)
		api.GET("/upcoming", h.getUpcomingEvents)
		api.GET("/weather/:date", h.getWeather)

		locations := api.Group("/locations")
		{
			locations.GET("/", h.listLocations)
			locations.GET("/:id", h.getLocation)
		}

		favorites := api.Group("/favorites", h.userIdMiddleware)
		{
			favorites.GET("/locations", h.listFavoriteLocations)
			favorites.POST("/locations/:id", h.addFavoriteLocation)
			favorites.DELETE("/locations/:id", h.removeFavoriteLocation)
		}
	}
}

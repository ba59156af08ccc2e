package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rendez/internal/container"
	"github.com/joshua-takyi/rendez/internal/handlers"
	"github.com/joshua-takyi/rendez/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	return NewRouter(container, container.EventService, container.GeocodeService)
}

// NewRouter builds the engine around the given services.
func NewRouter(container *container.Container, events handlers.EventStore, geocoder handlers.AddressResolver) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "rendez-api",
			})
		})
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.ValidateToken, container.Logger))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", handlers.CreateEvent(events))
		eventRoutes.GET("", handlers.ListEvents(events))
		eventRoutes.GET("/:id", handlers.GetEvent(events))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(events))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(events))

		eventRoutes.POST("/:id/interest", handlers.IndicateInterest(events))
		eventRoutes.DELETE("/:id/interest", handlers.RemoveInterest(events))
		eventRoutes.POST("/:id/attendance", handlers.IndicateAttendance(events))
		eventRoutes.DELETE("/:id/attendance", handlers.RemoveAttendance(events))

		eventRoutes.POST("/:id/tags/:kind", handlers.AddTag(events))
		eventRoutes.DELETE("/:id/tags/:kind", handlers.RemoveTag(events))
	}

	protected.GET("/geocode", handlers.ResolveAddress(geocoder))

	return r
}

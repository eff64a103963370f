// internal/app/router.go
package app

import (
	bookingHandler "almatiq-service/internal/handlers/booking"
	catalogHandler "almatiq-service/internal/handlers/catalog"
	dashboardHandler "almatiq-service/internal/handlers/dashboard"
	wsHandler "almatiq-service/internal/handlers/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	DashboardHandler *dashboardHandler.DashboardHandler
	BookingHandler   *bookingHandler.BookingHandler
	CatalogHandler   *catalogHandler.CatalogHandler
	WSHandler        *wsHandler.WSHandler
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Dashboard Views ====================
	api.GET("/metrics", h.DashboardHandler.GetMetrics) // ?start=2024-01-01&end=2024-01-31
	api.GET("/customers", h.DashboardHandler.ListCustomers)
	api.GET("/leads", h.DashboardHandler.ListLeads)

	// ==================== Bookings ====================
	bookings := api.Group("/bookings")
	{
		bookings.GET("", h.DashboardHandler.ListBookings)
		bookings.POST("", h.BookingHandler.CreateBooking)
	}

	// ==================== Catalog ====================
	api.GET("/services", h.CatalogHandler.ListServices)
	api.POST("/catalog/refresh", h.CatalogHandler.RefreshCatalog)

	// ==================== WebSocket Stats ====================
	api.GET("/ws/stats", h.WSHandler.GetStats)
}

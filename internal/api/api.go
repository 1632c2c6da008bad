// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smartstock/backend-go/internal/api/handlers"
	"github.com/smartstock/backend-go/internal/api/middleware"
	"github.com/smartstock/backend-go/internal/service"
)

func NewRouter(inventory *service.Inventory, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.OwnerHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.OwnerIdentity())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	inventoryHandler := handlers.NewInventoryHandler(inventory)
	inventoryGroup := apiGroup.Group("/inventory")
	{
		inventoryGroup.GET("/products", inventoryHandler.ListProducts)
		inventoryGroup.POST("/products", inventoryHandler.CreateProduct)
		inventoryGroup.PUT("/products/:id", inventoryHandler.UpdateProduct)
		inventoryGroup.DELETE("/products/:id", inventoryHandler.DeleteProduct)
		inventoryGroup.POST("/products/:id/stock", inventoryHandler.AddStock)
		inventoryGroup.GET("/summary", inventoryHandler.GetSummary)
	}

	assistantHandler := handlers.NewAssistantHandler(inventory)
	alertsGroup := apiGroup.Group("/alerts")
	{
		alertsGroup.GET("", assistantHandler.GetAlerts)
		alertsGroup.POST("/:productId/ignore", assistantHandler.IgnoreAlert)
		alertsGroup.POST("/:productId/read", assistantHandler.MarkAlertRead)
		alertsGroup.POST("/read_all", assistantHandler.MarkAllRead)
	}

	eventsGroup := apiGroup.Group("/events")
	{
		eventsGroup.GET("", assistantHandler.ListEvents)
		eventsGroup.POST("/archive", assistantHandler.ArchiveEvents)
		eventsGroup.DELETE("", assistantHandler.ClearEvents)
	}

	forecastGroup := apiGroup.Group("/forecast")
	{
		forecastGroup.GET("", assistantHandler.GetForecast)
		forecastGroup.GET("/report", assistantHandler.GetReorderReport)
	}

	apiGroup.GET("/settings", assistantHandler.GetSettings)
	apiGroup.PUT("/settings", assistantHandler.UpdateSettings)

	systemGroup := apiGroup.Group("/system")
	{
		systemGroup.POST("/sync", assistantHandler.SyncNow)
		systemGroup.POST("/reset", assistantHandler.ResetSystem)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

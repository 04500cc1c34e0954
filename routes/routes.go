package routes

import (
	"net/http"

	"exoticworld/handlers"
	"exoticworld/middleware"
	"exoticworld/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes mounts the catalog and cart API under /api/v1. A nil limiter
// disables rate limiting on cart routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, limiter *middleware.RateLimiter) {
	utils.RegisterWireFieldNames()

	productHandler := &handlers.ProductHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}

	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/productos", productHandler.GetProducts)
		api.GET("/productos/buscar/nombre", productHandler.SearchProducts)
		api.GET("/productos/:id", productHandler.GetProduct)
		api.POST("/productos", productHandler.CreateProduct)
		api.PUT("/productos/:id", productHandler.UpdateProduct)
		api.DELETE("/productos/:id", productHandler.DeleteProduct)
	}

	cart := api.Group("/carrito/usuario/:usuarioId")
	if limiter != nil {
		cart.Use(limiter.Middleware())
	}
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/agregar", cartHandler.AddItem)
		cart.POST("/decrementar", cartHandler.DecrementItem)
		cart.PUT("/actualizar-cantidad", cartHandler.UpdateQuantity)
		cart.GET("/items", cartHandler.GetItems)
		cart.GET("/total", cartHandler.GetTotal)
		cart.DELETE("/vaciar", cartHandler.ClearCart)
		cart.DELETE("/eliminar-item", cartHandler.RemoveItem)
	}
}

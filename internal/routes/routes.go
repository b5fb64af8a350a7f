package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"costumes_back_end/internal/handlers"
	"costumes_back_end/internal/middleware"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, corsOrigins []string) {
	r.Use(cors.New(corsConfig(corsOrigins)))

	checkoutLimit := middleware.NewRateLimiter(middleware.CheckoutPerMinute, middleware.CheckoutPerMinute)
	loginLimit := middleware.NewRateLimiter(middleware.LoginPerMinute, middleware.LoginPerMinute)
	searchLimit := middleware.NewRateLimiter(middleware.SearchPerMinute, middleware.SearchPerMinute)

	r.GET("/health", h.Health)
	r.GET("/ws", h.WebSocket)

	api := r.Group("/api")

	// Catalogue
	api.GET("/products", h.ListProducts)
	api.GET("/products/recommended", h.Recommended)
	api.GET("/products/best-sellers", h.BestSellers)
	api.GET("/products/search", searchLimit.Limit("Trop de recherches. Réessayez dans 1 minute"), h.SearchProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories", h.ListCategories)
	api.GET("/categories/groups", h.CategoryGroups)

	// Panier
	api.GET("/cart", h.GetCart)
	api.POST("/cart", h.AddToCart)
	api.PUT("/cart/:productId", h.UpdateCartQuantity)
	api.DELETE("/cart/:productId", h.RemoveFromCart)
	api.DELETE("/cart", h.ClearCart)

	// Commande
	api.POST("/checkout", checkoutLimit.Limit("Trop de commandes. Réessayez dans quelques minutes"), h.Checkout)

	// Admin
	api.POST("/admin/login", loginLimit.Limit("Trop de tentatives. Réessayez dans 1 minute"), h.AdminLogin)

	admin := api.Group("/admin", middleware.AuthRequired(h.JWTSecret), middleware.RequireAdmin)
	{
		admin.POST("/products", h.CreateProduct)
		admin.PATCH("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.POST("/categories", h.CreateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
		admin.GET("/orders", h.ListOrders)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		admin.POST("/orders/:id/notify", h.NotifyOrder)
		admin.GET("/orders/:id/whatsapp.png", h.OrderWhatsAppQR)
		admin.GET("/dashboard", h.Dashboard)
	}
}

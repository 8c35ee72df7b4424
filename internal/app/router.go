package app

import (
	"net/http"

	"ofertare-gateway/internal/guard"
	authHandler "ofertare-gateway/internal/handlers/auth"
	"ofertare-gateway/internal/handlers/resources"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *authHandler.AuthHandler
	Clients  *resources.ClientsHandler
	Offers   *resources.OffersHandler
	Products *resources.ProductsHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The guard redirects here; the real pages are served by the frontend,
	// these endpoints just answer the redirect sensibly.
	r.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login", "redirectTo": c.Query(guard.RedirectToParam)})
	})
	r.GET("/unauthorized", func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"page": "unauthorized"})
	})

	// ==================== Auth ====================
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
	}

	// ==================== Clients ====================
	clients := r.Group("/clients")
	{
		clients.GET("", h.Clients.List)
		clients.POST("", h.Clients.Create)
		clients.PATCH("/:id", h.Clients.Update)
		clients.DELETE("/:id", h.Clients.Delete)
	}

	// ==================== Offers ====================
	offers := r.Group("/offers")
	{
		offers.GET("", h.Offers.List)
		offers.GET("/:id", h.Offers.Get)
		offers.POST("", h.Offers.Create)
		offers.PATCH("/:id", h.Offers.Update)
		offers.DELETE("/:id", h.Offers.Delete)
		offers.POST("/:id/export", h.Offers.Export)
	}

	// ==================== Products ====================
	products := r.Group("/products")
	{
		products.GET("", h.Products.List)
		products.POST("", h.Products.Create)
		products.PATCH("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}
}

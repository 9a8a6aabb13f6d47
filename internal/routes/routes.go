package routes

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"instock_back_end/internal/handlers/business"
	"instock_back_end/internal/handlers/contact"
	"instock_back_end/internal/handlers/item"
	"instock_back_end/internal/handlers/milestone"
	statshandler "instock_back_end/internal/handlers/stats"
	"instock_back_end/internal/handlers/user"
	"instock_back_end/internal/middleware"
	"instock_back_end/internal/utils"
)

func RegisterRoutes(r *gin.Engine) {
	// Une source dédiée au process, pas le générateur global partagé
	auth := user.NewAuthHandler(
		utils.NewRefreshTokenGenerator(rand.NewSource(time.Now().UnixNano())),
	)

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Comptes
	api.POST("/auth/register", middleware.RegisterRateLimit(), auth.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), auth.Login)
	api.POST("/auth/refresh", auth.Refresh)
	api.GET("/me", middleware.AuthRequired(), auth.Me)

	// Contact
	api.POST("/contact", contact.Send)

	// Commerces
	api.POST("/businesses", middleware.AuthRequired(), business.Create)

	// Jalons : le masquage est rattaché au commerce du token, pas à la route
	api.GET("/milestones/:businessId",
		middleware.AuthRequired(), middleware.BusinessAccessRequired(), milestone.List)
	api.POST("/milestones/:milestoneId/hide", middleware.AuthRequired(), milestone.Hide)

	// Tout ce qui suit exige un token rattaché au commerce visé
	b := api.Group("/businesses/:businessId",
		middleware.AuthRequired(), middleware.BusinessAccessRequired())

	b.GET("", business.Get)

	// Articles
	b.GET("/items", item.List)
	b.POST("/items", item.Create)
	b.GET("/items/search", middleware.SearchRateLimit(), item.Search)
	b.GET("/categories", item.Categories)
	b.GET("/items/:sku", item.Get)
	b.DELETE("/items/:sku", item.Delete)
	b.GET("/items/:sku/label", item.Label)

	// Mouvements de stock
	b.POST("/items/:sku/stock", item.CreateStockUpdate)
	b.GET("/items/:sku/stock", item.ListStockUpdates)

	// Commandes de réapprovisionnement
	b.POST("/items/:sku/orders", item.CreateOrder)
	b.GET("/orders", item.ListOrders)

	// Connexions plateformes externes
	b.POST("/items/:sku/connect", item.CreateConnection)
	b.GET("/items/:sku/connections", item.ListConnections)
	b.DELETE("/items/:sku/connections/:platform", item.DeleteConnection)

	// Statistiques et suggestions
	b.GET("/stats", statshandler.Get)

	// Flux temps réel des mouvements de stock
	r.GET("/ws/businesses/:businessId/stock",
		middleware.AuthRequired(), middleware.BusinessAccessRequired(), item.StockWebSocket)
}

// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/schedule"
	"github.com/your-org/storefront-backend/internal/domain/store"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"github.com/your-org/storefront-backend/internal/realtime"
)

// Services bundles the constructed domain services routes are built on.
type Services struct {
	User     *user.Service
	Catalog  *catalog.Service
	Cart     *cart.Service
	Order    *order.Service
	Schedule *schedule.Service
	Store    *store.Service
	PDF      *pdf.Service
	Broker   *realtime.Broker
}

// SetupRoutes wires every API route group.
func SetupRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	setupAuthRoutes(rg, svc, cfg)
	setupCatalogRoutes(rg, svc, cfg)
	setupOrderRoutes(rg, svc, cfg)
	setupScheduleRoutes(rg, svc, cfg)
	setupStoreRoutes(rg, svc, cfg)
	setupStorefrontRoutes(rg, svc, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(svc.User)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.GetProfile)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)

	cat := rg.Group("/catalog")
	cat.Use(middleware.AuthMiddleware(cfg))
	{
		cat.GET("/products", catalogHandler.GetProducts)
		cat.POST("/products", catalogHandler.CreateProduct)
		// Register before /products/:id so "reorder" is not parsed as an id.
		cat.PUT("/products/reorder", catalogHandler.ReorderProducts)
		cat.GET("/products/:id", catalogHandler.GetProduct)
		cat.PUT("/products/:id", catalogHandler.UpdateProduct)
		cat.DELETE("/products/:id", catalogHandler.DeleteProduct)

		cat.GET("/groups", catalogHandler.GetGroups)
		cat.POST("/groups", catalogHandler.CreateGroup)
		cat.PUT("/groups/reorder", catalogHandler.ReorderGroups)
		cat.PUT("/groups/:id", catalogHandler.UpdateGroup)
		cat.DELETE("/groups/:id", catalogHandler.DeleteGroup)

		cat.POST("/products/:id/options", catalogHandler.AddOption)
		cat.PUT("/options/:id", catalogHandler.UpdateOption)
		cat.DELETE("/options/:id", catalogHandler.DeleteOption)

		cat.POST("/options/:id/sub-products", catalogHandler.AddSubProduct)
		cat.PUT("/sub-products/:id", catalogHandler.UpdateSubProduct)
		cat.DELETE("/sub-products/:id", catalogHandler.DeleteSubProduct)

		cat.GET("/integrity", catalogHandler.GetIntegrityWarnings)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(svc.Order, svc.Store, svc.Schedule, svc.PDF, cfg)
	streamHandler := handlers.NewStreamHandler(svc.Broker, svc.Order)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/statistics", orderHandler.GetStatistics)
		orders.GET("/stream", streamHandler.StreamOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/advance", orderHandler.AdvanceStatus)
		orders.POST("/:id/reject", orderHandler.Reject)
		orders.POST("/:id/trash", orderHandler.Trash)
		orders.POST("/:id/restore", orderHandler.Restore)
		orders.DELETE("/:id", orderHandler.PermanentlyDelete)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
		orders.GET("/:id/share", orderHandler.GetShareText)
	}
}

func setupScheduleRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	scheduleHandler := handlers.NewScheduleHandler(svc.Schedule)

	sched := rg.Group("/schedule")
	sched.Use(middleware.AuthMiddleware(cfg))
	{
		sched.GET("", scheduleHandler.GetSchedule)
		sched.PUT("", scheduleHandler.UpdateSchedule)
		sched.POST("/close-until", scheduleHandler.CloseUntil)
		sched.GET("/availability", scheduleHandler.GetAvailability)
	}
}

func setupStoreRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	storeHandler := handlers.NewStoreHandler(svc.Store, svc.Catalog, svc.Schedule, cfg)

	st := rg.Group("/store")
	st.Use(middleware.AuthMiddleware(cfg))
	{
		st.GET("", storeHandler.GetProfile)
		st.PUT("", storeHandler.UpdateProfile)
		st.GET("/share-link", storeHandler.GetShareLink)
		st.POST("/logo", storeHandler.UploadLogo)
		st.POST("/cover", storeHandler.UploadCover)
	}
}

// setupStorefrontRoutes wires the public customer-facing surface. No auth;
// carts are tracked by session cookie.
func setupStorefrontRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	storeHandler := handlers.NewStoreHandler(svc.Store, svc.Catalog, svc.Schedule, cfg)
	cartHandler := handlers.NewCartHandler(svc.Cart)
	orderHandler := handlers.NewOrderHandler(svc.Order, svc.Store, svc.Schedule, svc.PDF, cfg)

	sf := rg.Group("/storefront")
	{
		sf.GET("/:slug", storeHandler.GetStorefront)
		sf.POST("/:slug/orders", orderHandler.PlaceOrder)
	}

	crt := rg.Group("/cart")
	{
		crt.GET("", cartHandler.GetCart)
		crt.POST("/items", cartHandler.QuickAdd)
		crt.POST("/confirm", cartHandler.Confirm)
		crt.PATCH("/items", cartHandler.UpdateQuantity)
		crt.DELETE("", cartHandler.ClearCart)
	}
}

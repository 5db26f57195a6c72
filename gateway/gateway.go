package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/example/agrigrow/docs"
	"github.com/example/agrigrow/pkg/config"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// AuditReader serves the audit trail written by the event actors.
type AuditReader interface {
	GetAuditLogs(ctx context.Context, entityID string, limit int64) ([]*repository.AuditLog, error)
}

// Services bundles the domain services the HTTP surface fronts.
type Services struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Wishlist  *service.WishlistService
	Addresses *service.AddressService
	Orders    *service.OrderService
	Payments  *service.PaymentService
	Audit     AuditReader
}

type Gateway struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	services Services
	server   *http.Server
}

func NewGateway(cfg *config.Config, logger *zap.Logger, services Services) *Gateway {
	switch cfg.Gateway.Mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Gateway.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))
	router.Use(corsMiddleware())

	return &Gateway{
		config:   cfg,
		logger:   logger,
		router:   router,
		services: services,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port),
			Handler:           router,
			ReadHeaderTimeout: cfg.Gateway.ReadTimeout,
			ReadTimeout:       cfg.Gateway.ReadTimeout,
		},
	}
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "AgriGrow API is running")
	})
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	if g.config.Gateway.UploadsDir != "" {
		g.router.Static("/uploads", g.config.Gateway.UploadsDir)
	}

	authed := authRequired(g.services.Auth)
	admin := adminRequired()

	api := g.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", g.signup)
			auth.POST("/login", g.login)
			auth.GET("/profile/:email", authed, g.profile)
		}

		products := api.Group("/products")
		{
			products.GET("", g.listProducts)
			products.GET("/:id", g.getProduct)
			products.POST("/add", authed, admin, g.addProduct)
			products.PUT("/update/:id", authed, admin, g.updateProduct)
			products.DELETE("/delete/:id", authed, admin, g.deleteProduct)
		}

		cart := api.Group("/cart", authed)
		{
			cart.GET("/:userId", g.getCart)
			cart.POST("/add", g.addToCart)
			cart.POST("/toggle", g.toggleCart)
			cart.PUT("/quantity", g.setCartQuantity)
		}

		wishlist := api.Group("/wishlist", authed)
		{
			wishlist.POST("/toggle", g.toggleWishlist)
			wishlist.GET("/:userId", g.getWishlist)
		}

		orders := api.Group("/orders", authed)
		{
			orders.POST("/place", g.placeOrder)
			orders.GET("/addresses", g.listAddresses)
			orders.POST("/addresses", g.addAddress)
			orders.PUT("/addresses/:id", g.updateAddress)
			orders.GET("/history", g.orderHistory)
			orders.GET("/all", admin, g.allOrders)
			orders.PUT("/update-status/:id", admin, g.updateOrderStatus)
		}

		payments := api.Group("/payments", authed)
		{
			payments.POST("", g.submitPayment)
			payments.GET("", admin, g.listPayments)
			payments.PUT("/:id/status", admin, g.setPaymentStatus)
		}

		if g.services.Audit != nil {
			api.GET("/audit/:entityId", authed, admin, g.auditTrail)
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler exposes the router for tests and custom servers.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

// Start serves HTTP until Shutdown is called. A clean shutdown returns nil.
func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting", zap.String("address", g.server.Addr))

	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("gateway listen failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, bounded by gateway.shutdown_timeout.
func (g *Gateway) Shutdown(ctx context.Context) error {
	if timeout := g.config.Gateway.ShutdownTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return g.server.Shutdown(ctx)
}

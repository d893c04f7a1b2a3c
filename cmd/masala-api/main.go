package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/urmedia/masala-api/internal/config"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/handlers"
	authmw "github.com/urmedia/masala-api/internal/middleware"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/internal/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	roleService := services.NewRoleService(db)
	adminUserService := services.NewAdminUserService(db)
	provisionService := services.NewProvisionService(userService, roleService, adminUserService)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	customerService := services.NewCustomerService(db)
	trackingService := services.NewTrackingService(db)
	settingsService := services.NewSettingsService(db)
	reportService := services.NewReportService(db)

	hub := sse.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(userService, roleService, tokenService, jwtService)
	adminHandler := handlers.NewAdminHandler(userService, roleService, provisionService, jwtService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService, productService, settingsService, hub)
	customerHandler := handlers.NewCustomerHandler(customerService, orderService)
	trackingHandler := handlers.NewTrackingHandler(trackingService, orderService)
	reportHandler := handlers.NewReportHandler(reportService, orderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, adminUserService)
	sseHandler := handlers.NewSSEHandler(hub, orderService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	// Storefront surface, no auth.
	api.Get("/products", productHandler.ListPublic)
	api.Get("/store-info", settingsHandler.GetStoreInfo)
	api.Post("/orders", orderHandler.Place)

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// The admin-shell bootstrap endpoints answer every verb so non-POST
	// callers get a 405 instead of a 404.
	for path, handler := range map[string]drift.HandlerFunc{
		"/verify-admin": adminHandler.VerifyAdmin,
		"/setup-owner":  adminHandler.SetupOwner,
		"/create-admin": adminHandler.CreateAdmin,
	} {
		auth.Post(path, handler)
		auth.Get(path, handlers.MethodNotAllowed)
		auth.Put(path, handlers.MethodNotAllowed)
		auth.Patch(path, handlers.MethodNotAllowed)
		auth.Delete(path, handlers.MethodNotAllowed)
	}

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Get("/users/me", authHandler.Me)

	admin := api.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.RequireAdmin(roleService))

	admin.Get("/products", productHandler.List)
	admin.Post("/products", productHandler.Create)
	admin.Get("/products/:productId", productHandler.Get)
	admin.Put("/products/:productId", productHandler.Update)
	admin.Patch("/products/:productId/status", productHandler.UpdateStatus)
	admin.Delete("/products/:productId", productHandler.Delete)

	admin.Get("/orders", orderHandler.List)
	admin.Get("/orders/pending-count", orderHandler.PendingCount)
	admin.Get("/orders/:orderId", orderHandler.Get)
	admin.Patch("/orders/:orderId/status", orderHandler.UpdateStatus)
	admin.Patch("/orders/:orderId/tracking", orderHandler.UpdateTracking)
	admin.Get("/orders/:orderId/events", trackingHandler.List)
	admin.Post("/orders/:orderId/events", trackingHandler.AddEvent)

	admin.Get("/tracking/orders", orderHandler.ListShipments)

	admin.Get("/customers", customerHandler.List)
	admin.Get("/customers/:customerId", customerHandler.Get)
	admin.Get("/customers/:customerId/orders", customerHandler.Orders)

	admin.Get("/dashboard", reportHandler.Dashboard)
	admin.Get("/reports/summary", reportHandler.Summary)
	admin.Get("/reports/sales", reportHandler.Sales)
	admin.Get("/reports/top-products", reportHandler.TopProducts)

	admin.Get("/settings/store-info", settingsHandler.GetStoreInfo)
	admin.Get("/settings/delivery-charges", settingsHandler.GetDeliveryCharges)

	admin.Get("/events", sseHandler.Connect)

	owner := api.Group("/owner")
	owner.Use(authmw.Auth(jwtService))
	owner.Use(authmw.RequireOwner(roleService))

	owner.Put("/settings/store-info", settingsHandler.UpdateStoreInfo)
	owner.Put("/settings/delivery-charges", settingsHandler.UpdateDeliveryCharges)
	owner.Get("/admin-users", settingsHandler.ListAdminUsers)
	owner.Patch("/admin-users/:adminId", settingsHandler.UpdateAdminUser)
	owner.Delete("/admin-users/:adminId", settingsHandler.DeleteAdminUser)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

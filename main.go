// Viralizei platform API server. Resolves storefront services to prices and
// checkout destinations, and exposes the admin surface for redirect links,
// products and pricing.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kinitros/viralizei-plataforma/app/handlers"
	"github.com/kinitros/viralizei-plataforma/app/middleware"
	"github.com/kinitros/viralizei-plataforma/app/router"
	"github.com/kinitros/viralizei-plataforma/app/services"
	businessflow "github.com/kinitros/viralizei-plataforma/business_flow"
	"github.com/kinitros/viralizei-plataforma/config"
	"github.com/kinitros/viralizei-plataforma/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Postgres is only dialed when explicitly selected; the factory handles
	// every other backend on its own.
	var db *gorm.DB
	if cfg.Storage.Backend == "postgres" {
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			log.Printf("postgres connection failed, storage will fall back: %v", err)
			db = nil
		} else if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
			sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		}
	}

	factory := repository.NewFactory(repository.FactoryConfig{
		Backend:      cfg.Storage.Backend,
		SupabaseURL:  cfg.Supabase.URL,
		SupabaseKey:  cfg.Supabase.ServiceKey,
		LinkFilePath: cfg.Storage.LinkFilePath,
		DB:           db,
	})
	checkoutStore := repository.NewCheckoutStore(cfg.Storage.CheckoutFilePath)

	// Business flows
	linkFlow := businessflow.NewRedirectLinkFlow(factory.Links())
	catalogFlow := businessflow.NewCatalogFlow(factory.Products())
	pricingFlow := businessflow.NewPricingFlow(factory.Products())
	checkoutFlow := businessflow.NewCheckoutLinkFlow(checkoutStore, cfg.Checkout.EnvLinks)
	purchaseFlow := businessflow.NewPurchaseFlow(factory.Links(), factory.Products(), checkoutStore)

	var tokenService services.TokenService
	if cfg.JWT.SecretKey != "" {
		tokenService, err = services.NewTokenService(cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.SecretKey)
		if err != nil {
			log.Fatalf("Failed to initialize token service: %v", err)
		}
	} else {
		log.Printf("JWT_SECRET_KEY not set, admin login issues no tokens")
	}

	adminAuth := middleware.NewAdminAuthMiddleware(cfg.Admin.Password, tokenService)

	h := router.Handlers{
		Auth:         handlers.NewAuthAdminHandler(cfg.Admin.Password, tokenService, cfg.JWT.AccessTokenTTL),
		Checkout:     handlers.NewCheckoutHandler(checkoutFlow),
		RedirectLink: handlers.NewRedirectLinkHandler(linkFlow),
		Product:      handlers.NewProductHandler(catalogFlow),
		Pricing:      handlers.NewPricingAdminHandler(pricingFlow),
		Purchase:     handlers.NewPurchaseHandler(purchaseFlow),
	}

	appRouter := router.NewFiberRouter(cfg, h, adminAuth)
	appRouter.SetupRoutes()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if err := appRouter.GetApp().ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Storage backend: %s", factory.Backend())
	if err := appRouter.Start(address); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}

func setupLogging(cfg *config.Config) {
	log.SetFlags(log.LstdFlags | log.LUTC)

	if cfg.Logging.Output == "file" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Logging.FilePath,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		})
	}
}

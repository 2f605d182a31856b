package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"storefront_service/config"
	"storefront_service/internal/clients"
	"storefront_service/internal/delivery"
	"storefront_service/internal/middleware"
	"storefront_service/internal/repository"
	"storefront_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting Storefront Service...")
	logger.Infof("Log level set to: %s", logLevel.String())

	if cfg.CatalogGatewayURL == "" {
		logger.Fatal("FATAL: Catalog gateway URL is not configured. Set CATALOG_GATEWAY_URL.")
	}
	if cfg.CartGatewayURL == "" {
		logger.Fatal("FATAL: Cart gateway URL is not configured. Set CART_GATEWAY_URL.")
	}

	catalogClient := clients.NewCatalogHTTPClient(cfg.CatalogGatewayURL, cfg.GatewayTimeout, logger)
	logger.Infof("Catalog gateway client initialized for target: %s", cfg.CatalogGatewayURL)
	cartClient := clients.NewCartHTTPClient(cfg.CartGatewayURL, cfg.GatewayTimeout, logger)
	logger.Infof("Cart gateway client initialized for target: %s", cfg.CartGatewayURL)

	// --- Dependency Injection ---
	themeRepo := repository.NewFileThemeRepository(cfg.ThemeFile, logger)
	logger.Info("Repositories initialized.")

	filterStore := usecase.NewFilterStore(logger)
	loader := usecase.NewPaginatedLoader(catalogClient, cfg.PageSize, logger)
	presenter := usecase.NewWindowedPresenter(usecase.PresenterConfig{
		RowSize:        cfg.RowSize,
		RowHeight:      cfg.RowHeight,
		ViewportHeight: cfg.ViewportSize,
		Overscan:       cfg.Overscan,
	}, logger)

	catalogUseCase := usecase.NewCatalogUseCase(filterStore, loader, presenter, catalogClient, logger)
	productUseCase := usecase.NewProductUseCase(catalogClient, cfg.AvailabilityInterval, logger)
	cartUseCase := usecase.NewCartUseCase(cartClient, catalogClient, cfg.CartID, cfg.UserID, logger)
	logger.Info("Use cases initialized.")

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), cfg.GatewayTimeout)
	if err := cartUseCase.Load(seedCtx); err != nil {
		logger.Warnf("Initial cart fetch failed, starting with an empty cart: %v", err)
	}
	cancelSeed()

	catalogHandler := delivery.NewCatalogHandler(catalogUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	themeHandler := delivery.NewThemeHandler(themeRepo, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.RedirectTrailingSlash = false
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api/v1")
	catalogHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)
	themeHandler.RegisterRoutes(api)
	logger.Info("Routes registered.")

	// --- Start Server ---
	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}

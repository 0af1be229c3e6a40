package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"notary-portal/notary-portal-backend/internal/audit"
	"notary-portal/notary-portal-backend/internal/auth"
	"notary-portal/notary-portal-backend/internal/config"
	"notary-portal/notary-portal-backend/internal/documents"
	"notary-portal/notary-portal-backend/internal/obs"
	"notary-portal/notary-portal-backend/pkg/pdf"
)

const version = "1.0.0"

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// .env for local development, ignored when absent
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	obs.Init()

	// Credential store and session issuer
	accounts, err := auth.NewStore(auth.DefaultSeedAccounts())
	if err != nil {
		logger.Fatal("Failed to build account store", zap.Error(err))
	}
	issuer, err := auth.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		logger.Fatal("Failed to build token issuer", zap.Error(err))
	}

	// Audit trail: in-memory by default, sqlite when configured
	var trail audit.Store
	if cfg.Audit.DBPath != "" {
		trail, err = audit.NewSQLiteStore(cfg.Audit.DBPath)
		if err != nil {
			logger.Fatal("Failed to open audit store", zap.Error(err))
		}
		logger.Info("Using durable audit store", zap.String("path", cfg.Audit.DBPath))
	} else {
		trail = audit.NewMemoryStore()
	}
	defer trail.Close()

	// Document storage and signing engine
	storage, err := documents.NewStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}
	stamper := pdf.NewStamper(cfg.Storage.AssetsDir)
	if !stamper.HasSignatureImage() {
		logger.Info("No signature image found, using text signature")
	}
	if !stamper.HasSealImage() {
		logger.Info("No stamp image found, using text stamp")
	}

	service := documents.NewService(storage, stamper, trail, logger)

	authHandler := auth.NewHandler(accounts, issuer, logger)
	docsHandler := documents.NewHandler(service, cfg.Storage.MaxUploadBytes, logger)

	sweeper := documents.NewSweeper(storage, cfg.Retention.MaxAge, cfg.Retention.Interval, logger)
	sweeper.Start()
	defer sweeper.Stop()

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obs.Instrument())

	// Request IDs for log correlation
	router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	})

	router.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Authorization, Accept, Origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Notary API Server", "version": version})
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})
	router.GET("/metrics", gin.WrapH(obs.Handler()))

	authHandler.RegisterRoutes(router)
	docsHandler.RegisterRoutes(router, auth.RequireAuth(issuer))

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Notary API Server started", zap.String("addr", cfg.Server.GetServerAddr()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

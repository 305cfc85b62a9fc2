package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/handler"
	"github.com/krys2fa/gbrapp-sub001/internal/middleware"
	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; real deployments set environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting gbrapp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrate(db); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services, cfg)

	// Bootstrap admin for first deployments.
	seedEmail := config.GetEnvOrDefault("ADMIN_EMAIL", "")
	seedPassword := config.GetEnvOrDefault("ADMIN_PASSWORD", "")
	if err := services.Auth.EnsureSeedAdmin(context.Background(), seedEmail, seedPassword); err != nil {
		zapLogger.Warn("Failed to seed admin account", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Exporter{},
		&entity.JobCard{},
		&entity.Assay{},
		&entity.Measurement{},
		&entity.Invoice{},
		&entity.DailyPrice{},
	); err != nil {
		return err
	}

	// Human readable codes are allocated from sequences.
	for _, seq := range []string{
		"exporter_code_seq",
		"job_card_ls_seq",
		"job_card_ss_seq",
		"invoice_number_seq",
	} {
		if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS " + seq).Error; err != nil {
			return err
		}
	}
	return nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)
			authorized.POST("/users", middleware.RequireRole(entity.RoleAdmin), h.Auth.CreateUser)

			officer := middleware.RequireRole(entity.RoleOfficer)

			exporters := authorized.Group("/exporters")
			{
				exporters.GET("", h.Exporter.List)
				exporters.GET("/:id", h.Exporter.Get)
				exporters.POST("", officer, h.Exporter.Create)
				exporters.PUT("/:id", officer, h.Exporter.Update)
				exporters.DELETE("/:id", officer, h.Exporter.Delete)
			}

			jobCards := authorized.Group("/job-cards")
			{
				jobCards.GET("", h.JobCard.List)
				jobCards.GET("/:id", h.JobCard.Get)
				jobCards.POST("", officer, h.JobCard.Create)
				jobCards.PUT("/:id", officer, h.JobCard.Update)
				jobCards.DELETE("/:id", officer, h.JobCard.Delete)

				jobCards.GET("/:id/assays", h.Assay.ListByJobCard)
				jobCards.POST("/:id/assays", officer, h.Assay.Create)

				jobCards.GET("/:id/invoices", h.Invoice.ListByJobCard)
			}

			// Scale scoped intake views share the job card handlers.
			largeScale := authorized.Group("/large-scale/job-cards")
			{
				largeScale.GET("", h.JobCard.ListScaled(entity.JobCardScaleLarge))
				largeScale.POST("", officer, h.JobCard.CreateScaled(entity.JobCardScaleLarge))
			}
			smallScale := authorized.Group("/small-scale/job-cards")
			{
				smallScale.GET("", h.JobCard.ListScaled(entity.JobCardScaleSmall))
				smallScale.POST("", officer, h.JobCard.CreateScaled(entity.JobCardScaleSmall))
			}

			assays := authorized.Group("/assays")
			{
				assays.GET("/:assayId", h.Assay.Get)
				assays.DELETE("/:assayId", officer, h.Assay.Delete)
				assays.POST("/:assayId/measurements", officer, h.Assay.AddMeasurement)
				assays.DELETE("/:assayId/measurements/:measurementId", officer, h.Assay.DeleteMeasurement)
			}

			invoices := authorized.Group("/invoices")
			{
				invoices.GET("", h.Invoice.List)
				invoices.GET("/:id", h.Invoice.Get)
				invoices.POST("", officer, h.Invoice.Create)
				invoices.POST("/:id/pay", officer, h.Invoice.Pay)
			}

			prices := authorized.Group("/daily-prices")
			{
				prices.GET("", h.Price.List)
				prices.GET("/latest", h.Price.Latest)
				prices.POST("", officer, h.Price.Set)
				prices.POST("/refresh", officer, h.Price.Refresh)
				prices.DELETE("/:id", officer, h.Price.Delete)
			}

			reports := authorized.Group("/reports")
			{
				reports.GET("/download", h.Report.Download)
				reports.GET("/generate-pdf", h.Report.PrintHTML)
			}

			authorized.GET("/dashboard", h.Report.Dashboard)
		}
	}
}

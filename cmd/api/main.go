package main

import (
	"context"
	"log"
	"os"
	"time"

	_ "workhive/api/swagger" // swagger docs
	"workhive/internal/config"
	"workhive/internal/database"
	"workhive/internal/handler"
	"workhive/internal/middleware"
	"workhive/internal/repository"
	"workhive/internal/service"
	"workhive/internal/websocket"
	"workhive/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const bookingSweepInterval = time.Minute

// @title           WorkHive API
// @version         1.0
// @description     Coworking space management: buildings, workspaces, amenities, staff and bookings.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg := config.Load()

	zlog, closeLog := logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File != "",
			Filename:   cfg.Log.File,
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 14,
			Compress:   true,
		},
	})
	defer closeLog()

	if cfg.JWTSecret == "" {
		if gin.Mode() == gin.ReleaseMode {
			zlog.Fatal("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = "dev_only_secret"
		zlog.Warn("JWT_SECRET unset, using development fallback")
	}
	secret := []byte(cfg.JWTSecret)
	secureCookies := gin.Mode() == gin.ReleaseMode || os.Getenv("RENDER") != ""

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("connected to postgres", zap.String("db", cfg.Database.Name))

	wsHub := websocket.NewHub(zlog)
	go wsHub.Run()

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	typeRepo := repository.NewWorkspaceTypeRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	authService := service.NewAuthService(userRepo, txManager, secret)
	staffService := service.NewStaffService(userRepo, staffRepo, buildingRepo, txManager)
	customerService := service.NewCustomerService(userRepo)
	buildingService := service.NewBuildingService(buildingRepo)
	workspaceService := service.NewWorkspaceService(workspaceRepo, buildingRepo, typeRepo, txManager)
	typeService := service.NewWorkspaceTypeService(typeRepo)
	amenityService := service.NewAmenityService(amenityRepo)
	bookingService := service.NewBookingService(
		bookingRepo, workspaceRepo, amenityRepo, userRepo, txManager, wsHub, zlog)

	authHandler := handler.NewAuthHandler(authService, secret, secureCookies)
	staffHandler := handler.NewStaffHandler(staffService, secret, cfg.PageLimit)
	customerHandler := handler.NewCustomerHandler(customerService, secret, cfg.PageLimit)
	buildingHandler := handler.NewBuildingHandler(buildingService, secret, cfg.PageLimit)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, typeService, secret, cfg.PageLimit)
	amenityHandler := handler.NewAmenityHandler(amenityService, secret, cfg.PageLimit)
	bookingHandler := handler.NewBookingHandler(bookingService, secret, cfg.PageLimit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(logger.Middleware(zlog))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	api := router.Group("")
	authHandler.RegisterRoutes(api)
	staffHandler.RegisterRoutes(api)
	customerHandler.RegisterRoutes(api)
	buildingHandler.RegisterRoutes(api)
	workspaceHandler.RegisterRoutes(api)
	amenityHandler.RegisterRoutes(api)
	bookingHandler.RegisterRoutes(api)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go bookingService.RunStatusSweeper(sweepCtx, bookingSweepInterval)

	zlog.Info("server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}

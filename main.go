package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bab-arcade/config"
	_ "bab-arcade/docs" // Swagger docs
	"bab-arcade/packages/auth"
	authServices "bab-arcade/packages/auth/services"
	authUtils "bab-arcade/packages/auth/utils"
	"bab-arcade/packages/core"
	"bab-arcade/packages/core/cron"
	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/match"
	"bab-arcade/packages/core/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           bab-arcade API
// @version         1.0
// @description     Tabletop soccer arcade: quick matches, round-robin leagues and knockout tournaments.

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	envErr := godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := config.NewLogger(settings.LogLevel)
	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}
	if settings.GinMode != "" {
		gin.SetMode(settings.GinMode)
	}

	db, err := config.ConnectDatabase(settings, logger)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	issuer := authUtils.NewTokenIssuer(settings.JWTSecret, settings.TokenTTL)
	profiles := authServices.NewProfileService(authServices.NewGormProfileStore(db), issuer, settings.RefreshTTL, logger)
	authModule := auth.NewModule(profiles, issuer)

	coreModule := core.NewModule(core.Dependencies{
		Catalog:      services.NewCatalogService(db),
		Competitions: services.NewGormCompetitionStore(db),
		History:      services.NewGormHistoryStore(db),
		Simulator:    engine.NewSeededSimulator(settings.RandomSeed),
		Clock:        match.SystemClock{},
		Match:        match.DefaultConfig(),
		Schedule: cron.Config{
			ReaperSchedule:  settings.ReaperSchedule,
			IdleTimeout:     settings.IdleTimeout,
			CleanupSchedule: settings.CleanupSchedule,
		},
		Auth:   authModule,
		Logger: logger,
	})

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(corsConfig(settings.CORSOrigins)))

	authModule.SetupRoutes(r)
	coreModule.SetupRoutes(r)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler(db, coreModule.MatchService))

	if err := coreModule.StartScheduler(); err != nil {
		logger.WithError(err).Fatal("failed to start scheduler")
	}

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", settings.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	coreModule.StopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	log := logger.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message     string `json:"message" example:"Server is running"`
	Database    string `json:"database" example:"connected"`
	LiveMatches int    `json:"live_matches" example:"2"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(db *gorm.DB, matches *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Message:     "Server is running",
			Database:    "connected",
			LiveMatches: matches.ActiveCount(),
		}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"guessgame/internal/auth"
	"guessgame/internal/config"
	cronrunner "guessgame/internal/cron"
	"guessgame/internal/db"
	"guessgame/internal/game"
	"guessgame/internal/handler"
	"guessgame/internal/logger"
	"guessgame/internal/pricefeed"
	gormrepository "guessgame/internal/repository/gorm"
	"guessgame/internal/service"

	_ "guessgame/docs"
)

func main() {
	cfgPath := os.Getenv("GG_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("GG_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Store: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default feature switches failed", zap.Error(err))
	}

	feedHTTP := &http.Client{Timeout: cfg.Feed.Timeout}
	feedClient := pricefeed.NewClient(feedHTTP, cfg.Feed.BaseURL, cfg.Feed.APIKey)
	collector := &pricefeed.Collector{
		Feed:   feedClient,
		Store:  store,
		Logger: logger,
	}

	engineSvc := &game.Engine{
		Repo:   store,
		Logger: logger,
		Config: cfg.Game,
	}
	poller := &game.Poller{
		Repo:   store,
		Engine: engineSvc,
		Logger: logger,
		Config: cfg.Game,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authDisabled := cfg.Auth.Disabled ||
		strings.EqualFold(os.Getenv("GG_AUTH_DISABLED"), "true") ||
		os.Getenv("GG_AUTH_DISABLED") == "1"
	if authDisabled {
		logger.Warn("bearer auth disabled; identities come from the X-Player header")
	}
	jwtSvc := auth.JWT{Secret: []byte(cfg.Auth.Secret), TokenTTL: cfg.Auth.TokenTTL}

	api := engine.Group("/api/v1")
	priceHandler := &handler.PriceHandler{
		Store:        store,
		Logger:       logger,
		ChartMinutes: cfg.Game.ChartMinutes,
	}
	priceHandler.Register(api)

	protected := api.Group("", auth.Middleware(jwtSvc, store, logger, authDisabled))
	guessHandler := &handler.GuessHandler{Service: engineSvc, Logger: logger}
	guessHandler.Register(protected)
	playerHandler := &handler.PlayerHandler{}
	playerHandler.Register(protected)
	settingsHandler := &handler.SettingsHandler{Settings: settingsSvc}
	settingsHandler.Register(protected)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.Cron.PricePoll, func(ctx context.Context) {
		if !settingsSvc.IsEnabled(ctx, service.FeaturePricePoller, true) {
			return
		}
		if err := collector.Poll(ctx); err != nil {
			logger.Warn("price poll failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("cron register price poll failed", zap.Error(err))
	}
	_, err = cronRunner.Add(cfg.Cron.GuessPoll, func(ctx context.Context) {
		if !settingsSvc.IsEnabled(ctx, service.FeatureGuessPoller, true) {
			return
		}
		if err := poller.RunCycle(ctx); err != nil {
			logger.Warn("guess resolution cycle failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("cron register guess poll failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

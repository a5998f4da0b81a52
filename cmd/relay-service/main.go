package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"collab-relay/internal/api/handlers"
	"collab-relay/internal/config"
	ws "collab-relay/internal/infrastructure/websocket"
	"collab-relay/internal/services"
	"collab-relay/pkg/logger"
)

func main() {
	log := logger.New()
	log.Info("Starting collab relay service")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Hub owns all room and presence state on a single goroutine.
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()

	hub := services.NewHub(log)
	go hub.Run(hubCtx)

	stats := services.NewStatsReporter(hub, cfg.Stats.Interval, log)
	if err := stats.Start(); err != nil {
		log.Error("Failed to start stats reporter", "error", err)
		os.Exit(1)
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
	}))

	// Bundled client assets
	e.Static("/", cfg.Server.StaticDir)

	// WebSocket endpoint
	wsHandler := ws.NewHandler(hub, cfg.WebSocket.SendBufferSize, cfg.WebSocket.MaxMessageSize, log)
	e.GET("/ws", wsHandler.HandleConnection)

	// Access-token endpoint, only when credentials are configured
	tokenSvc, err := services.NewAccessTokenService(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.TokenTTL)
	if err != nil {
		log.Warn("Token endpoint disabled", "error", err)
	} else {
		tokenHandler := handlers.NewTokenHandler(tokenSvc, log)
		e.GET("/get-token", tokenHandler.GetToken)
	}

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "collab-relay",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	serverAddr := cfg.Addr()
	log.Info("Starting relay server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down relay service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats.Stop()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	stopHub()
	log.Info("Relay service stopped")
}

// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"almatiq-service/internal/client/sheets"
	"almatiq-service/internal/client/square"
	"almatiq-service/internal/config"
	bookingHandler "almatiq-service/internal/handlers/booking"
	catalogHandler "almatiq-service/internal/handlers/catalog"
	dashboardHandler "almatiq-service/internal/handlers/dashboard"
	wsHandler "almatiq-service/internal/handlers/ws"
	"almatiq-service/internal/middleware"
	"almatiq-service/internal/pkg/googleauth"
	bookingUsecase "almatiq-service/internal/service/booking"
	catalogUsecase "almatiq-service/internal/service/catalog"
	dashboardUsecase "almatiq-service/internal/service/dashboard"
	"almatiq-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Booking platform client -----
	squareClient, err := square.NewClient(square.Config{
		AccessToken: s.cfg.SquareAccessToken,
		Environment: s.cfg.SquareEnvironment,
		Version:     s.cfg.SquareVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to build booking platform client: %w", err)
	}

	// ----- Spreadsheet client -----
	key, err := googleauth.ParseRSAPrivateKey(s.cfg.GooglePrivateKeyPEM)
	if err != nil {
		return fmt.Errorf("failed to parse google private key: %w", err)
	}
	tokenProvider, err := googleauth.NewProvider(googleauth.Config{
		Email: s.cfg.GoogleServiceEmail,
		Key:   key,
		Scope: s.cfg.GoogleSheetsScope,
	})
	if err != nil {
		return fmt.Errorf("failed to build google token provider: %w", err)
	}
	sheetsClient, err := sheets.NewClient(tokenProvider)
	if err != nil {
		return fmt.Errorf("failed to build sheets client: %w", err)
	}

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(context.Background())

	// ----- Catalog refresher -----
	refresher := catalogUsecase.NewRefresher(squareClient, hub, logger)
	if err := refresher.Refresh(ctx); err != nil {
		// Startup continues on the fallback snapshot.
		logger.Warn("initial catalog refresh failed", zap.Error(err))
	}
	go refresher.Run(context.Background(), s.cfg.CatalogRefreshInterval)

	// ----- Services (Usecases) -----
	dashboardService := dashboardUsecase.NewService(
		squareClient,
		sheetsClient,
		refresher,
		s.cfg.GoogleSheetID,
		logger,
	)
	bookingService := bookingUsecase.NewCreator(squareClient, refresher, hub, logger)

	// ----- Handlers -----
	dashboardHandlerInst := dashboardHandler.NewDashboardHandler(dashboardService)
	bookingHandlerInst := bookingHandler.NewBookingHandler(bookingService)
	catalogHandlerInst := catalogHandler.NewCatalogHandler(refresher)
	wsHandlerInst := wsHandler.NewWSHandler(hub, logger)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		DashboardHandler: dashboardHandlerInst,
		BookingHandler:   bookingHandlerInst,
		CatalogHandler:   catalogHandlerInst,
		WSHandler:        wsHandlerInst,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/api/handlers"
	"vulcan-monitor-go/internal/api/middleware"
	"vulcan-monitor-go/internal/config"
	"vulcan-monitor-go/internal/monitor"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server

	healthHandler *handlers.HealthHandler
	systemHandler *handlers.SystemHandler
	cameraHandler *handlers.CameraHandler
	alertsHandler *handlers.AlertsHandler
}

func NewServer(cfg *config.Config, orchestrator *monitor.Orchestrator, natsCheck func() bool) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	return &Server{
		config:        cfg,
		router:        router,
		healthHandler: handlers.NewHealthHandler(cfg.MonitorID, natsCheck),
		systemHandler: handlers.NewSystemHandler(orchestrator),
		cameraHandler: handlers.NewCameraHandler(orchestrator, cfg.JPEGQuality, cfg.IdlePollInterval),
		alertsHandler: handlers.NewAlertsHandler(orchestrator),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()

	s.setupRoutes()

	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestID())
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting monitor API")
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("Stopping monitor API")
	return s.server.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

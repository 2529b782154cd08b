package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Dashboard page
	s.echo.GET("/", s.handleDashboard)

	// Analysis API
	s.echo.POST("/api/analyses", s.handleAnalyze)
	s.echo.GET("/api/analyses/latest", s.handleLatest)

	// WebSocket for live analysis updates
	s.echo.GET("/ws/updates", s.handleWebSocket)
}

// Package server provides the HTTP surface: the JSON analysis API, the
// dashboard page, health and metrics endpoints, and the WebSocket
// upgrade for live updates.
package server

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/config"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	apperrors "github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/errors"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

// AppService is the subset of the application layer the handlers need.
type AppService interface {
	Analyze(ctx context.Context, query string) (domain.Analysis, error)
	Latest(ctx context.Context, query string) (domain.Analysis, error)
}

type Server struct {
	echo              *echo.Echo
	config            *config.Config
	app               AppService
	hub               *websocket.Hub
	redisClient       *goredis.Client
	dashboardTemplate *template.Template
	startTime         time.Time
}

// NewServer creates the HTTP server. redisClient may be nil when running
// with the in-memory result store; readiness then skips the Redis check.
func NewServer(cfg *config.Config, app AppService, hub *websocket.Hub, redisClient *goredis.Client) (*Server, error) {
	dashboardTmpl, err := template.ParseFiles("web/templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:              e,
		config:            cfg,
		app:               app,
		hub:               hub,
		redisClient:       redisClient,
		dashboardTemplate: dashboardTmpl,
		startTime:         time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleDashboard(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return s.dashboardTemplate.Execute(c.Response(), nil)
}

package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type analyzeRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	analysis, err := s.app.Analyze(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, analysis); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLatest(c echo.Context) error {
	query := c.QueryParam("query")

	analysis, err := s.app.Latest(c.Request().Context(), query)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, analysis); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// server wires the HTTP surface to one table cache and responder
type server struct {
	cache     *TableCache
	responder *Responder
	logger    *zap.Logger
	rnd       RandomSource
}

func newServer(cache *TableCache, responder *Responder, logger *zap.Logger) *server {
	return &server{
		cache:     cache,
		responder: responder,
		logger:    logger,
		rnd:       defaultRandom{},
	}
}

// routes builds the echo instance
func (s *server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	e.POST("/respond", s.handleRespond)
	e.GET("/respond", s.handleRespond)
	e.POST("/match", s.handleMatch)
	e.GET("/match", s.handleMatch)
	e.GET("/greeting", s.handleGreeting)
	e.GET("/health", s.handleHealth)

	// Admin endpoints
	e.POST("/admin/reload", s.handleReload)
	e.GET("/admin/table-info", s.handleTableInfo)

	return e
}

func (s *server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"timestamp":   time.Now(),
		"auto_reload": s.cache.Info().Watching,
	})
}

func (s *server) handleGreeting(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"text": s.responder.Greeting()})
}

func (s *server) handleRespond(c echo.Context) error {
	var req RespondRequest

	// Bind request (works for both POST JSON and GET query params)
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	return c.JSON(http.StatusOK, s.responder.Respond(req.Text))
}

// handleMatch exposes the scorer for debugging trigger phrases
func (s *server) handleMatch(c echo.Context) error {
	var req MatchRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	threshold := s.responder.Threshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if err := validateThreshold(threshold); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	pt := s.cache.Table()
	normalized := Normalize(req.Text)
	result := pt.Match(normalized, threshold, s.rnd)

	return c.JSON(http.StatusOK, MatchResponse{
		Normalized: normalized,
		Score:      result.Score,
		Matched:    result.Matched,
		Group:      result.Group,
		GroupName:  pt.GroupName(result.Group),
		Reply:      result.Reply,
	})
}

func (s *server) handleReload(c echo.Context) error {
	pt, err := s.cache.Reload()
	if err != nil {
		s.logger.Error("manual reload failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Reload failed: %v", err),
		})
	}

	return c.JSON(http.StatusOK, ReloadResponse{
		Message:    fmt.Sprintf("Pattern table reloaded from %s", s.cache.Info().Source),
		Groups:     pt.Len(),
		ReloadedAt: time.Now(),
	})
}

func (s *server) handleTableInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.cache.Info())
}

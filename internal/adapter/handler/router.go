package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	insightHandler *Insight
	logger         *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, insightHandler *Insight, logger *zap.Logger) *Router {
	return &Router{
		cfg:            cfg,
		insightHandler: insightHandler,
		logger:         logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler(rt.logger)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.cfg.Swagger.Enabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 group
	v1 := e.Group("/v1")
	rt.setupInsightRoutes(v1)
}

// setupInsightRoutes mounts each capability, or a CapabilityDisabled reply when the process does not serve it
func (rt *Router) setupInsightRoutes(g *echo.Group) {
	if rt.cfg.Enabled(config.CapabilityInsights) {
		g.POST("/insights", rt.insightHandler.Extract)
	} else {
		g.POST("/insights", rt.capabilityDisabled(config.CapabilityInsights))
	}

	if rt.cfg.Enabled(config.CapabilityQnA) {
		g.POST("/qna", rt.insightHandler.Ask)
	} else {
		g.POST("/qna", rt.capabilityDisabled(config.CapabilityQnA))
	}
}

func (rt *Router) capabilityDisabled(capability config.Capability) echo.HandlerFunc {
	return func(c echo.Context) error {
		return HandleError(rt.logger, c, errors.ErrCapabilityDisabled(string(capability)))
	}
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  insight.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	capabilities := make([]string, 0, len(rt.cfg.Service.Capabilities))
	capabilities = append(capabilities, rt.cfg.Service.Capabilities...)
	return c.JSON(http.StatusOK, insight.HealthResponse{
		Status:       "ok",
		Capabilities: capabilities,
	})
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lunabridge/internal/bridge"
	"lunabridge/internal/config"
	"lunabridge/internal/ghl"
)

// CRM is the subset of the GHL client the webhook pipeline needs. Tests
// substitute a mock.
type CRM interface {
	UpsertContact(ctx context.Context, attendee bridge.Attendee, customFields map[string]string) (string, error)
	CreateAppointment(ctx context.Context, appt ghl.AppointmentRequest) (map[string]any, error)
}

// Server wires the webhook pipeline behind a gin router.
type Server struct {
	cfg    *config.Config
	crm    CRM
	router *bridge.Router
	engine *gin.Engine
	log    *zap.Logger
}

// New builds the server and its routes.
func New(cfg *config.Config, crm CRM, log *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		crm:    crm,
		router: bridge.NewRouter(cfg.CalendarRoutes, cfg.DefaultCalendarID),
		log:    log,
	}

	engine := gin.New()
	engine.Use(requestID(), requestLogger(log), recovery())

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.POST("/webhooks/lunacal", s.handleWebhook)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Not found"})
	})

	s.engine = engine
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "lunabridge running"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "healthy"})
}

// requestID tags every request with an id for log correlation, honoring one
// supplied by the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request handled",
			zap.String("requestId", c.GetString("requestID")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// recovery converts panics into the standard 500 envelope so every request
// gets exactly one JSON response.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"message": fmt.Sprintf("internal error: %v", recovered),
		})
	})
}

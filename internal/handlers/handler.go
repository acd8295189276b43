package handlers

import (
	"net/http"
	"strings"
	"time"

	"taskdesk/internal/logger"
	"taskdesk/internal/models"
	"taskdesk/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const requestIDHeader = "X-Request-ID"

// Options tunes how the HTTP layer talks to clients.
type Options struct {
	// Production hides raw error strings from responses.
	Production bool
	// CORSOrigins lists allowed browser origins; empty or "*" allows all.
	CORSOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, cors.New(h.corsConfig()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerRecordRoutes(router, "/tasks", models.KindTask)
	h.registerRecordRoutes(router, "/tickets", models.KindTicket)

	router.GET("/activity", h.userIdMiddleware, h.getActivity)

	ws := router.Group("/ws", h.userIdMiddleware)
	{
		ws.GET("/tasks", h.wsConnect(models.KindTask))
		ws.GET("/tickets", h.wsConnect(models.KindTicket))
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
}

func (h *Handler) registerRecordRoutes(r *gin.Engine, path, kind string) {
	g := r.Group(path, h.userIdMiddleware)
	{
		g.GET("", h.listRecords(kind))
		g.POST("", h.createRecord(kind))
		g.GET("/:id", h.getRecord(kind))
		g.PUT("/:id", h.updateRecord(kind))
		g.DELETE("/:id", h.deleteRecord(kind))
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger tags each request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set("requestId", reqID)
	c.Header(requestIDHeader, reqID)

	c.Next()

	h.log.Infow("http_request",
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	)
}

func (h *Handler) allowAllOrigins() bool {
	if len(h.opts.CORSOrigins) == 0 {
		return true
	}
	for _, o := range h.opts.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if h.allowAllOrigins() {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range h.opts.CORSOrigins {
		// cors.New panics on origins without a scheme
		if strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		} else {
			h.log.Warnw("cors_origin_ignored", "origin", o)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// originAllowed applies the CORS origin list to WebSocket handshakes.
func (h *Handler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowAllOrigins() {
		return true
	}
	for _, o := range h.opts.CORSOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

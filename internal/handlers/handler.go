package handlers

import (
	"net/http"
	"time"

	_ "sticker_market/docs"
	"sticker_market/internal/logger"
	"sticker_market/internal/metrics"
	"sticker_market/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tune the HTTP layer. Zero values are usable.
type Options struct {
	// UploadDir is served under PublicPath when non-empty.
	UploadDir      string
	PublicPath     string
	MaxUploadBytes int64
	CORSOrigins    []string
	WSInterval     time.Duration
}

const (
	defaultPublicPath     = "/uploads/stickers"
	defaultMaxUploadBytes = 5 << 20
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies. log and m may be nil.
func NewHandler(services *service.Service, log *logger.Logger, m *metrics.Metrics, opts Options) *Handler {
	if opts.PublicPath == "" {
		opts.PublicPath = defaultPublicPath
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.WSInterval <= 0 {
		opts.WSInterval = defaultInterval
	}
	return &Handler{services: services, log: log, metrics: m, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(h.corsConfig()))
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	if h.opts.UploadDir != "" {
		router.Static(h.opts.PublicPath, h.opts.UploadDir)
	}

	h.registerAccountRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws/wallet", h.authMiddleware, h.walletStream)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	origins := h.opts.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (h *Handler) registerAccountRoutes(r *gin.Engine) {
	r.POST("/signup", h.signUp)
	r.POST("/login", h.login)
	r.GET("/userinfo", h.authMiddleware, h.userInfo)
	r.POST("/changepassword", h.authMiddleware, h.changePassword)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/stickers", h.listStickers)
		api.POST("/upload-sticker", h.authMiddleware, h.uploadSticker)
		api.GET("/user-stickers", h.authMiddleware, h.userStickers)
		api.POST("/purchase-sticker", h.authMiddleware, h.purchaseSticker)
	}
}

// @Summary      Root
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "server is running")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

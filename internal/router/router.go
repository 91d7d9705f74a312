package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-admin/internal/handler/health"
	"github.com/jwalitptl/hospital-admin/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-admin/internal/middleware"
)

// Handler is a resource that mounts its own routes under /api/v1.
type Handler interface {
	RegisterRoutes(gin.IRoutes)
}

type Router struct {
	engine  *gin.Engine
	config  RouterConfig
	health  *health.Handler
	metrics *prometheus.Handler
}

type RouterConfig struct {
	Mode             string
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MaxBodyBytes     int64
	RequestTimeout   time.Duration
	MetricsPath      string
}

// NewRouter builds the engine and its middleware chain. metrics may be nil
// to run without request metrics.
func NewRouter(config RouterConfig, healthH *health.Handler, metrics *prometheus.Handler) *Router {
	if config.Mode == "" {
		config.Mode = gin.ReleaseMode
	}
	gin.SetMode(config.Mode)

	engine := gin.New()
	r := &Router{
		engine:  engine,
		config:  config,
		health:  healthH,
		metrics: metrics,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}
	engine.Use(
		middleware.CORS(config.CORSConfig),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
	)

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxBodyBytes > 0 {
		sizeLimit.MaxBodySize = config.MaxBodyBytes
	}
	engine.Use(middleware.SizeLimit(sizeLimit))

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

// Setup mounts health, metrics and the resource handlers.
func (r *Router) Setup(handlers ...Handler) {
	if r.metrics != nil {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, r.metrics.Handler())
	}

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	if r.health != nil {
		r.health.RegisterRoutes(api)
	}
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

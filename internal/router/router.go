package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/concealdc/webgate/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// GatedHandler registers under a session gate middleware.
type GatedHandler interface {
	RegisterRoutes(*gin.RouterGroup, gin.HandlerFunc)
}

type Router struct {
	engine        *gin.Engine
	healthH       Handler
	authH         Handler
	scheduleH     Handler
	appointmentH  Handler
	bracketH      Handler
	notificationH GatedHandler
	sessionGate   gin.HandlerFunc
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit     middleware.RateLimiterConfig
	CORSConfig    middleware.CORSConfig
	Timeout       time.Duration
	DailyCacheAge int
	MetricsPrefix string
}

func NewRouter(
	healthH Handler,
	authH Handler,
	scheduleH Handler,
	appointmentH Handler,
	bracketH Handler,
	notificationH GatedHandler,
	sessionGate gin.HandlerFunc,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		healthH:       healthH,
		authH:         authH,
		scheduleH:     scheduleH,
		appointmentH:  appointmentH,
		bracketH:      bracketH,
		notificationH: notificationH,
		sessionGate:   sessionGate,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	if config.Timeout == 0 {
		config.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)
	api.GET("/health/metrics", gin.WrapH(promhttp.Handler()))
	r.authH.RegisterRoutes(api)

	cached := api.Group("", middleware.Cache(middleware.DefaultCacheConfig()))
	r.scheduleH.RegisterRoutes(cached)

	r.appointmentH.RegisterRoutes(api)
	r.bracketH.RegisterRoutes(api)

	r.notificationH.RegisterRoutes(api, r.sessionGate)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}

func (r *Router) Use(middleware ...gin.HandlerFunc) {
	r.engine.Use(middleware...)
}

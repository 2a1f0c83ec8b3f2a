package router

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/handler/health"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// Handler is implemented by every resource handler under /api.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware)
}

type Config struct {
	Mode           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	MaxUploadBytes int64

	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int

	CORS middleware.CORSConfig

	MediaDir string
	MediaURL string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	health   *health.Handler
	gatherer prometheus.Gatherer
	handlers []Handler
	config   Config
}

func NewRouter(
	config Config,
	auth *middleware.AuthMiddleware,
	healthH *health.Handler,
	apiMetrics *metrics.APIMetrics,
	gatherer prometheus.Gatherer,
	handlers ...Handler,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(middleware.NoRoute())
	engine.NoMethod(middleware.NoMethod())

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(apiMetrics),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORS),
	)

	sizes := middleware.DefaultSizeLimitConfig()
	if config.MaxBodyBytes > 0 {
		sizes.MaxBodySize = config.MaxBodyBytes
	}
	if config.MaxUploadBytes > 0 {
		// Leave room for the other multipart fields next to the picture.
		sizes.MaxUploadSize = config.MaxUploadBytes + sizes.MaxBodySize
	}
	engine.Use(
		middleware.SizeLimit(sizes),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
	)

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}
	engine.Use(middleware.ErrorHandler())

	return &Router{
		engine:   engine,
		auth:     auth,
		health:   healthH,
		gatherer: gatherer,
		handlers: handlers,
		config:   config,
	}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api")

	r.health.RegisterRoutes(r.engine, api)
	for _, h := range r.handlers {
		h.RegisterRoutes(api, r.auth)
	}

	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))

	if r.config.MediaDir != "" {
		media := r.engine.Group(mediaPath(r.config.MediaURL),
			middleware.CacheControl(middleware.DefaultMediaCacheConfig()))
		media.Static("", r.config.MediaDir)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// mediaPath extracts the route prefix from a media URL that may be absolute.
func mediaPath(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/media"
	}
	return u.Path
}

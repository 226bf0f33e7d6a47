package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/internal/infrastructure/monitoring"
	"github.com/turtacn/securepay/internal/interfaces/http/handlers"
	"github.com/turtacn/securepay/internal/interfaces/http/middleware"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/logger"
)

// Dependencies 路由器依赖。Health、Risk、Assessment、Plan 必填，其余可为空
type Dependencies struct {
	Health     *handlers.HealthHandler
	Risk       *handlers.RiskHandler
	Assessment *handlers.AssessmentHandler
	Plan       *handlers.PlanHandler
	Middleware *handlers.Middleware
	Metrics    *monitoring.Metrics
	Tracer     trace.Tracer
	Limiter    service.RateLimiter
	Gatherer   prometheus.Gatherer
}

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	config *config.Config
	logger logger.Logger
	deps   Dependencies
	server *http.Server
}

// NewRouter 创建路由器并注册全部路由
func NewRouter(cfg *config.Config, log logger.Logger, deps Dependencies) *Router {
	// 设置 Gin 模式
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	if deps.Metrics == nil {
		deps.Metrics = monitoring.NewMetrics(prometheus.NewRegistry())
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(constants.ServiceName)
	}
	if deps.Middleware == nil {
		deps.Middleware = handlers.NewMiddleware(log)
	}

	r := &Router{
		engine: gin.New(),
		config: cfg,
		logger: log.WithComponent("router"),
		deps:   deps,
	}
	r.setupRoutes()
	r.server = &http.Server{
		Addr:           cfg.Server.HTTPAddr(),
		Handler:        r.engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	return r
}

// Engine 返回底层 gin 引擎，测试中直接驱动 ServeHTTP
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupRoutes() {
	// 全局中间件
	r.engine.Use(r.deps.Middleware.Recovery())
	r.engine.Use(r.deps.Middleware.RequestID())
	r.engine.Use(middleware.ObservabilityMiddleware(r.deps.Tracer, r.deps.Metrics))
	r.engine.Use(r.deps.Middleware.Logger())

	// CORS 配置
	r.engine.Use(cors.New(corsConfig(r.config.Server.CORSOrigins)))

	// 健康检查路由
	r.engine.GET("/health", r.deps.Health.HealthCheck)
	r.engine.GET("/ready", r.deps.Health.ReadinessCheck)
	r.engine.GET("/live", r.deps.Health.LivenessCheck)

	// Prometheus metrics
	metricsHandler := promhttp.Handler()
	if r.deps.Gatherer != nil {
		metricsHandler = promhttp.HandlerFor(r.deps.Gatherer, promhttp.HandlerOpts{})
	}
	r.engine.GET("/metrics", gin.WrapH(metricsHandler))

	// Pprof 性能分析（仅在非生产环境）
	if !r.config.Server.IsProduction() {
		pprof.Register(r.engine)
	}

	// API 路由组
	v1 := r.engine.Group("/api/v1")
	if r.deps.Limiter != nil {
		v1.Use(middleware.RateLimitMiddleware(r.deps.Limiter, &r.config.RateLimit, r.deps.Metrics, r.logger))
	}
	v1.Use(middleware.ETagCache(r.config.Cache.TTL))
	{
		risk := v1.Group("/risk")
		{
			risk.POST("/score", r.deps.Risk.Score)
			risk.GET("/level", r.deps.Risk.Level)
			risk.GET("/insights", r.deps.Risk.Insights)
			risk.GET("/vulnerabilities", r.deps.Risk.Vulnerabilities)
		}

		assessments := v1.Group("/assessments")
		{
			assessments.POST("/signup", r.deps.Assessment.Signup)
			assessments.POST("/domain", r.deps.Assessment.Domain)
		}

		plans := v1.Group("/plans")
		{
			plans.GET("", r.deps.Plan.ListPlans)
			plans.POST("/add-ons", r.deps.Plan.AddOns)
			plans.POST("/quote", r.deps.Plan.Quote)
		}
	}

	// 404 处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NotFoundResponse(c.Request.URL.Path, dto.TraceIDFromGin(c)))
	})
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "If-None-Match", constants.HeaderRequestID, "traceparent"},
		ExposeHeaders: []string{constants.HeaderRequestID, constants.HeaderTraceID, "ETag", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Start 启动 HTTP 服务器，阻塞直到 Stop 被调用或监听失败
func (r *Router) Start() error {
	r.logger.Info(context.Background(), "Starting HTTP server", logger.String("address", r.server.Addr))

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop 优雅关闭 HTTP 服务器。在 Start 之前调用时，随后的 Start 立即返回。
func (r *Router) Stop(ctx context.Context) error {
	r.logger.Info(ctx, "Stopping HTTP server...")
	return r.server.Shutdown(ctx)
}

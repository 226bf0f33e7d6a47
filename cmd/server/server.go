package main

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"

	appservice "github.com/turtacn/securepay/internal/application/service"
	"github.com/turtacn/securepay/internal/config"
	domainservice "github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/internal/infrastructure/audit"
	"github.com/turtacn/securepay/internal/infrastructure/cache"
	"github.com/turtacn/securepay/internal/infrastructure/monitoring"
	"github.com/turtacn/securepay/internal/infrastructure/ratelimit"
	"github.com/turtacn/securepay/internal/infrastructure/redis"
	grpchandlers "github.com/turtacn/securepay/internal/interfaces/grpc"
	"github.com/turtacn/securepay/internal/interfaces/http"
	"github.com/turtacn/securepay/internal/interfaces/http/handlers"
	"github.com/turtacn/securepay/pkg/logger"
)

// limiterIdleTTL is how long an unused in-process bucket is kept.
const limiterIdleTTL = 10 * time.Minute

// server owns every long-lived component of the process.
type server struct {
	cfg        *config.Config
	log        logger.Logger
	router     *http.Router
	grpcServer *grpclib.Server
	tracing    *monitoring.TracingManager
	local      *ratelimit.LocalRateLimiter
	closers    []io.Closer
}

type serverOptions struct {
	registry prometheus.Registerer
	gatherer prometheus.Gatherer
}

// newServer wires the infrastructure, application services and transports.
// Redis and Kafka are optional: when Redis cannot be reached the service runs
// with the local cache and local rate limiter only.
func newServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*server, error) {
	return newServerWithOptions(ctx, cfg, log, serverOptions{
		registry: prometheus.DefaultRegisterer,
		gatherer: prometheus.DefaultGatherer,
	})
}

func newServerWithOptions(ctx context.Context, cfg *config.Config, log logger.Logger, opts serverOptions) (*server, error) {
	s := &server{cfg: cfg, log: log}

	// Initialize tracing
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, log)
	if err != nil {
		return nil, err
	}
	s.tracing = tracing

	// Initialize metrics
	metrics := monitoring.NewMetrics(opts.registry)
	metricsAdapter := monitoring.NewMetricsAdapter(metrics)

	healthHandler := handlers.NewHealthHandler(log)

	// Initialize Redis
	var redisConn *redis.Connection
	if cfg.Redis.Enabled {
		conn := redis.NewConnection(cfg.Redis, log)
		if err := conn.Connect(ctx); err != nil {
			log.Warn(ctx, "Redis unavailable, continuing with local cache and rate limiter", logger.Err(err))
		} else {
			redisConn = conn
			s.closers = append(s.closers, conn)
			healthHandler.WithChecker("redis", conn.Ping)
		}
	}

	// Initialize caches
	var assessmentCache domainservice.AssessmentCache
	if cfg.Cache.Enabled {
		var remote domainservice.AssessmentCache
		if redisConn != nil {
			remote = redis.NewAssessmentCache(redisConn.Client(), cfg.Cache.RemoteTTL)
		}
		assessmentCache = cache.NewTieredCache(cache.NewLocalCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval), remote, metricsAdapter, log)
	}

	// Initialize rate limiter
	var limiter domainservice.RateLimiter
	if cfg.RateLimit.Enabled {
		if redisConn != nil {
			rl, err := ratelimit.NewRedisRateLimiter(redisConn.Client(), &ratelimit.RateLimiterConfig{
				RequestsPerMinute:   cfg.RateLimit.RequestsPerMin,
				Burst:               cfg.RateLimit.BurstSize,
				EnableLocalFallback: true,
			}, log)
			if err != nil {
				return nil, err
			}
			limiter = rl
		} else {
			s.local = ratelimit.NewLocalRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize)
			limiter = s.local
		}
	}

	// Initialize audit sink
	var sink domainservice.AuditSink
	if cfg.Audit.Enabled {
		producer, err := audit.NewKafkaProducer(cfg.Audit, log)
		if err != nil {
			return nil, err
		}
		sink = producer
	} else {
		sink = audit.NewLogSink(log)
	}
	s.closers = append(s.closers, sink)

	// Initialize application services
	assessments := appservice.NewAssessmentAppService(domainservice.NewRiskCalculator(), assessmentCache, sink, metricsAdapter, tracing.Tracer(), log)
	plans := appservice.NewPlanAppService(domainservice.NewPlanCatalog(), sink, metricsAdapter, log)

	// Initialize HTTP router
	s.router = http.NewRouter(cfg, log, http.Dependencies{
		Health:     healthHandler,
		Risk:       handlers.NewRiskHandler(assessments),
		Assessment: handlers.NewAssessmentHandler(assessments),
		Plan:       handlers.NewPlanHandler(plans),
		Middleware: handlers.NewMiddleware(log),
		Metrics:    metrics,
		Tracer:     tracing.Tracer(),
		Limiter:    limiter,
		Gatherer:   opts.gatherer,
	})

	// Initialize gRPC server
	s.grpcServer = grpchandlers.NewRiskGRPCServer(
		grpchandlers.NewRiskGRPCService(assessments, log),
		grpchandlers.NewInterceptorChain(log, limiter, metricsAdapter),
	)

	return s, nil
}

// Run serves HTTP and gRPC until ctx is cancelled or a server fails, then
// shuts everything down within the configured timeout.
func (s *server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Server.GRPCAddr())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.router.Start)

	g.Go(func() error {
		s.log.Info(gctx, "Starting gRPC server", logger.String("address", s.cfg.Server.GRPCAddr()))
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return err
		}
		return nil
	})

	if s.local != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterIdleTTL)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := s.local.Cleanup(limiterIdleTTL); n > 0 {
						s.log.Debug(gctx, "Evicted idle rate limit buckets", logger.Int("count", n))
					}
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

func (s *server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.log.Info(ctx, "Shutting down servers...")
	err := s.router.Stop(ctx)

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.grpcServer.Stop()
	}

	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil {
			s.log.Warn(ctx, "Failed to close component", logger.Err(cerr))
		}
	}
	if terr := s.tracing.Shutdown(ctx); terr != nil && err == nil {
		err = terr
	}
	return err
}

package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/securepay/pkg/logger"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	checkers map[string]HealthChecker
	timeout  time.Duration
	log      logger.Logger
}

// NewHealthHandler creates a new HealthHandler. Optional dependencies such as
// Redis register a checker with WithChecker.
func NewHealthHandler(log logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		timeout:  2 * time.Second,
		log:      log,
	}
}

// WithChecker registers a named dependency check.
func (h *HealthHandler) WithChecker(name string, check HealthChecker) *HealthHandler {
	h.checkers[name] = check
	return h
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Checks the health of the service and its dependencies.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	checks := h.performChecks(c.Request.Context())

	httpStatus := http.StatusOK
	for name, checkStatus := range checks {
		if checkStatus != "ok" {
			h.log.Warn(c.Request.Context(), "Health check failed", logger.String("dependency", name), logger.String("status", checkStatus))
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// ReadinessCheck godoc
// @Summary      Readiness Check
// @Description  Checks if the service is ready to accept traffic.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	h.HealthCheck(c)
}

// LivenessCheck reports that the process is serving requests.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) performChecks(parent context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	var wg sync.WaitGroup
	mu := &sync.Mutex{}
	checks := make(map[string]string, len(h.checkers))

	wg.Add(len(h.checkers))
	for name, check := range h.checkers {
		go func(name string, check HealthChecker) {
			defer wg.Done()
			status := "ok"
			if err := check(ctx); err != nil {
				status = "error: " + err.Error()
			}
			mu.Lock()
			checks[name] = status
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()
	return checks
}

package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Metrics struct {
	mu              sync.RWMutex
	RequestCount    int64            `json:"request_count"`
	RequestDuration time.Duration    `json:"avg_request_duration_ms"`
	ActiveRequests  int64            `json:"active_requests"`
	ErrorCount      int64            `json:"error_count"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoint_calls"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`
	totalDuration   time.Duration
}

type HealthCheckFunc func(ctx context.Context) error

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]HealthCheckFunc
}

var globalMetrics = &Metrics{
	StatusCodes: make(map[string]int64),
	Endpoints:   make(map[string]int64),
	StartTime:   time.Now(),
}

var globalHealthChecker = &HealthChecker{
	checks: make(map[string]HealthCheckFunc),
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests++
		globalMetrics.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		globalMetrics.mu.Lock()
		globalMetrics.RequestCount++
		globalMetrics.ActiveRequests--
		globalMetrics.totalDuration += duration
		globalMetrics.RequestDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.RequestCount)
		globalMetrics.LastRequest = time.Now()

		if statusCode >= 400 {
			globalMetrics.ErrorCount++
		}
		globalMetrics.StatusCodes[http.StatusText(statusCode)]++
		globalMetrics.Endpoints[endpoint]++
		globalMetrics.mu.Unlock()
	}
}

// RegisterHealthCheck adds a named dependency probe, run on every /healthz.
func RegisterHealthCheck(name string, check HealthCheckFunc) {
	globalHealthChecker.mu.Lock()
	defer globalHealthChecker.mu.Unlock()
	globalHealthChecker.checks[name] = check
}

func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		globalMetrics.mu.RLock()
		defer globalMetrics.mu.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"request_count":           globalMetrics.RequestCount,
			"avg_request_duration_ms": globalMetrics.RequestDuration.Milliseconds(),
			"active_requests":         globalMetrics.ActiveRequests,
			"error_count":             globalMetrics.ErrorCount,
			"status_codes":            globalMetrics.StatusCodes,
			"endpoint_calls":          globalMetrics.Endpoints,
			"uptime_seconds":          time.Since(globalMetrics.StartTime).Seconds(),
			"goroutines":              runtime.NumGoroutine(),
			"heap_alloc_bytes":        memStats.HeapAlloc,
		})
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		globalHealthChecker.mu.RLock()
		checks := make(map[string]HealthCheckFunc, len(globalHealthChecker.checks))
		for name, check := range globalHealthChecker.checks {
			checks[name] = check
		}
		globalHealthChecker.mu.RUnlock()

		results := make([]HealthCheck, 0, len(checks))
		healthy := true

		for name, check := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := check(ctx)
			cancel()

			result := HealthCheck{Name: name, Status: "ok", LastRun: time.Now()}
			if err != nil {
				result.Status = "failing"
				result.Message = err.Error()
				healthy = false
			}
			results = append(results, result)
		}

		status := http.StatusOK
		overall := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}

		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}

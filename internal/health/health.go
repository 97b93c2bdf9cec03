// Package health reports whether the backing stores are reachable, over HTTP and gRPC.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Pinger checks a single dependency.
type Pinger func(ctx context.Context) error

// Checker pings every registered dependency.
type Checker struct {
	timeout time.Duration
	pingers map[string]Pinger
}

// NewChecker creates a Checker. Each check is bounded by timeout.
func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		timeout: timeout,
		pingers: make(map[string]Pinger),
	}
}

// Register adds a named dependency.
func (c *Checker) Register(name string, p Pinger) *Checker {
	c.pingers[name] = p
	return c
}

// Check pings all dependencies concurrently and returns the failures by name.
func (c *Checker) Check(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures = make(map[string]error)
	)
	for name, ping := range c.pingers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ping(ctx); err != nil {
				mu.Lock()
				failures[name] = err
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for name, err := range failures {
		logger.Log.Warnw("health check failed", "dependency", name, "error", err)
	}
	return failures
}

// Response is the body of the HTTP health check
// swagger:model HealthResponse
type Response struct {
	// example: ok
	Status string `json:"status"`

	// Per dependency state, "ok" or "unavailable"
	Dependencies map[string]string `json:"dependencies"`
}

// NewHTTPHandler returns the HTTP health handler.
// @Summary Health
// @Description Reports store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} health.Response
// @Failure 503 {object} health.Response
// @Router /health [get]
func NewHTTPHandler(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failures := c.Check(r.Context())

		resp := Response{Status: "ok", Dependencies: make(map[string]string, len(c.pingers))}
		for _, name := range c.names() {
			resp.Dependencies[name] = "ok"
			if _, failed := failures[name]; failed {
				resp.Dependencies[name] = "unavailable"
			}
		}

		code := http.StatusOK
		if len(failures) > 0 {
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (c *Checker) names() []string {
	names := make([]string, 0, len(c.pingers))
	for name := range c.pingers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Server implements grpc.health.v1.Health on top of a Checker.
// The empty service name and "accounting-marathon" are known; other names are NOT_FOUND.
type Server struct {
	healthpb.UnimplementedHealthServer
	checker *Checker
}

// ServiceName is the gRPC health service name of this application.
const ServiceName = "accounting-marathon"

// NewServer creates a gRPC health server.
func NewServer(c *Checker) *Server {
	return &Server{checker: c}
}

// Check reports SERVING when every dependency answers.
func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	st := healthpb.HealthCheckResponse_SERVING
	if len(s.checker.Check(ctx)) > 0 {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	return &healthpb.HealthCheckResponse{Status: st}, nil
}

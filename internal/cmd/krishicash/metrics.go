package krishicash

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/louisbranch/krishicash/internal/platform/timeouts"
)

// metricsServer exposes /metrics while the game runs.
type metricsServer struct {
	listener   net.Listener
	httpServer *http.Server
	serveErr   chan error
}

// startMetricsServer binds addr and serves reg in the background.
func startMetricsServer(addr string, reg *prometheus.Registry) (*metricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	s := &metricsServer{
		listener: listener,
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		serveErr: make(chan error, 1),
	}
	log.Printf("metrics listening on %s", listener.Addr())
	go func() {
		s.serveErr <- s.httpServer.Serve(listener)
	}()
	return s, nil
}

// Addr returns the bound address.
func (s *metricsServer) Addr() string {
	return s.listener.Addr().String()
}

// Close shuts the server down, waiting up to timeouts.Shutdown for scrapes.
func (s *metricsServer) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	if err := <-s.serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}

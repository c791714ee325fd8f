// Package metrics exposes gameplay counters for Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fpsrig_tick_duration_seconds",
		Help:    "Time spent in one simulation tick",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033},
	})

	shotsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpsrig_shots_fired_total",
		Help: "Shots fired, by whether a target was hit",
	}, []string{"result"}) // "hit", "miss"

	reloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fpsrig_reloads_total",
		Help: "Completed magazine refills",
	})

	jumps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fpsrig_jumps_total",
		Help: "Jumps performed",
	})

	magazine = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fpsrig_magazine_rounds",
		Help: "Rounds currently in the magazine",
	})
)

func ObserveTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

func ShotFired(hit bool) {
	if hit {
		shotsFired.WithLabelValues("hit").Inc()
	} else {
		shotsFired.WithLabelValues("miss").Inc()
	}
}

func Reloaded() {
	reloads.Inc()
}

func Jumped() {
	jumps.Inc()
}

func SetMagazine(rounds int) {
	magazine.Set(float64(rounds))
}

// Server serves /metrics until Shutdown.
type Server struct {
	srv *http.Server
}

// Serve starts the metrics endpoint on addr in the background. An empty
// addr disables it and returns a nil server.
func Serve(addr string) (*Server, error) {
	if addr == "" {
		return nil, nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	// surface immediate bind failures
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return nil, fmt.Errorf("metrics: listen %s: %w", addr, err)
		}
	case <-time.After(50 * time.Millisecond):
	}
	log.Info().Str("addr", addr).Msg("metrics endpoint started")
	return s, nil
}

// Shutdown stops the server. Safe on a nil server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

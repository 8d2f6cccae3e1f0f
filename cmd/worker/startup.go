package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"agromap-backend/pkg/container"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	checks []healthCheck
}

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices checks every dependency and starts the probe endpoint
func startServices(c *container.Container) error {
	log.Info().Str("service", "agromap-worker").Msg("[STARTUP] running health checks")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	defer redisClient.Close()

	checker := &HealthChecker{checks: []healthCheck{
		{"Redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		{"PostgreSQL", c.DB.HealthCheck},
		{"MinIO", c.Storage.HealthCheck},
	}}

	if err := checker.checkAll(context.Background()); err != nil {
		return err
	}

	go startHealthCheckServer(c.Config.Jobs.WorkerHealthPort)
	return nil
}

// checkAll runs the checks in order and stops at the first failure
func (h *HealthChecker) checkAll(ctx context.Context) error {
	for _, check := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("[STARTUP] check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("[STARTUP] check ok")
	}
	return nil
}

func healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler)
	return mux
}

func startHealthCheckServer(port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           healthMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("port", port).Msg("[HEALTH] starting health check server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("[HEALTH] failed to start")
	}
}

func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"UP","service":"agromap-worker"}`))
}

// readyCheckHandler is the readiness probe
func readyCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"READY"}`))
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/fundlane/fundlane-edge/internal/api/gateway"
	"github.com/fundlane/fundlane-edge/internal/config"
	"github.com/fundlane/fundlane-edge/internal/pkg/logger"
	"github.com/fundlane/fundlane-edge/internal/pkg/tracing"
	"github.com/fundlane/fundlane-edge/internal/ratelimit"
)

func main() {
	log := logger.StdLogger()
	log.Info("Fundlane edge gateway starting")

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		log.Warn("no session secret configured; every session-gated route will reject")
	}
	if cfg.CronSecret == "" {
		log.Warn("no cron secret configured; cron routes fail closed")
	}

	cleanup, err := tracing.Init("fundlane-edge", cfg.OTLPEndpoint, 1.0)
	if err != nil {
		log.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	store := ratelimit.NewRedisStore(redisClient, cfg.RateLimitPerWindow,
		time.Duration(cfg.RateLimitWindowSec)*time.Second)

	upstream, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		log.Error("invalid upstream URL", "url", cfg.UpstreamURL, "error", err)
		os.Exit(1)
	}
	proxy := httputil.NewSingleHostReverseProxy(upstream)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error("upstream unreachable", "error", err, "path", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Upstream unavailable"}`))
	}

	edge := gateway.New(cfg, store, log, proxy)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","service":"fundlane-edge"}`))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/").Handler(edge)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins(cfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("edge gateway listening", "port", cfg.Port, "upstream", cfg.UpstreamURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// corsOrigins builds the CORS allow-list from the same configuration the
// CSRF check uses: platform apex and subdomains, the app URL, and extras.
func corsOrigins(cfg *config.Config) []string {
	origins := []string{
		"https://" + cfg.PlatformDomain,
		"https://*." + cfg.PlatformDomain,
		cfg.AppURL,
	}
	origins = append(origins, cfg.AllowedOrigins...)
	if !cfg.IsProduction() {
		origins = append(origins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	return origins
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/events"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/handler"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/policy"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/repository"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/service"
	"github.com/fleetgate/fleetgate-backend/pkg/config"
	"github.com/fleetgate/fleetgate-backend/pkg/database"
	"github.com/fleetgate/fleetgate-backend/pkg/httputil"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
	"github.com/fleetgate/fleetgate-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.Load("mvr-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("mvr-service", cfg.Server.Environment)
	log.Info().Str("policy", cfg.Policy.Version).Msg("starting MVR Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ. Events are best-effort, so a missing broker
	// degrades to no-op publishing instead of refusing to start.
	var eventSink events.Publisher
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Warn().Err(err).Msg("message broker unavailable, events disabled")
	} else {
		defer rmq.Close()
		pub, err := messaging.NewPublisher(rmq, messaging.ExchangeMVREvents, "mvr-service", log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to create event publisher, events disabled")
		} else {
			eventSink = pub
		}
	}
	publisher := events.NewEvaluationPublisher(eventSink, log)

	// Initialize policy engine, repository, service, handler
	engine := policy.NewEngine(cfg.Policy)
	evalRepo := repository.NewEvaluationRepository(db)
	evalService := service.NewService(engine, evalRepo, publisher, log)
	evalHandler := handler.NewHandler(evalService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for the review UI
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":   "healthy",
			"service":  "mvr-service",
			"database": db.Health(r.Context()),
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/evaluations", evalHandler.Routes())
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

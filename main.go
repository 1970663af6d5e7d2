// Command almoxarifado-go runs the HTTP backend: it loads configuration,
// connects the database pool, starts the password hashing workers, wires the
// feature services and handlers onto the router, and serves until a shutdown
// signal arrives.
//
// @title Almoxarifado API
// @version 1.0
// @description Users, authentication and place catalog backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/usguri/almoxarifado-go/auth"
	"github.com/usguri/almoxarifado-go/config"
	"github.com/usguri/almoxarifado-go/db"
	"github.com/usguri/almoxarifado-go/password"
	"github.com/usguri/almoxarifado-go/places"
	"github.com/usguri/almoxarifado-go/token"
	"github.com/usguri/almoxarifado-go/users"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// In production the variables are set directly; the .env file is a
	// development convenience.
	if err := godotenv.Load(); err != nil {
		slog.Info(".env file not loaded", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		return fmt.Errorf("creating database pool: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	hashes := password.NewPool(cfg.Hashing.Workers, cfg.Hashing.QueueDepth)
	defer hashes.Close()

	issuer := token.NewIssuer(cfg.Auth.HMACSecret, cfg.Auth.TokenLifetime)

	authService := auth.NewService(pool, hashes, issuer)
	authHandlers := auth.NewHandlers(authService)
	userService := users.NewService(pool, hashes)
	userHandlers := users.NewHandlers(userService, issuer)
	placeService := places.NewService(pool)
	placeHandlers := places.NewHandlers(placeService)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Authenticated endpoints carry token verification inside their pipeline
	// adapters rather than as route-group middleware, keeping the step order
	// decode, validate, authenticate.
	r.Route("/users", func(r chi.Router) {
		r.Post("/create", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Get("/me", userHandlers.HandleMe())
		r.Patch("/update/{id}", userHandlers.HandleUpdate())
		r.Delete("/delete/{id}", userHandlers.HandleDelete())
	})

	r.Route("/profile", userHandlers.RegisterProfileRoutes)
	r.Route("/place", placeHandlers.RegisterRoutes)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

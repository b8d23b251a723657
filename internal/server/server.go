// Package server wires handlers, middleware, and routes together and owns
// the HTTP server lifecycle. It is the composition root: every dependency
// (database, services, handlers) is constructed here, and each layer only
// receives what it needs — handlers get services, services get repository
// interfaces, nothing reaches around its neighbour.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/handler"
	"github.com/sakif/bloglist/internal/middleware"
	sqliteRepo "github.com/sakif/bloglist/internal/repository/sqlite"
	"github.com/sakif/bloglist/internal/service"
)

// Config holds everything the server needs from the environment, collected
// once at startup. Business code never reads env vars directly.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Server is the HTTP server and its owned resources. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the API routes:
//
//	GET    /api/blogs       → list all blogs (public)
//	POST   /api/blogs       → create a blog (auth required)
//	PUT    /api/blogs/{id}  → update a blog (public — see BlogService.Update)
//	DELETE /api/blogs/{id}  → delete a blog (auth + ownership required)
//	POST   /api/login       → exchange credentials for a token
//	POST   /api/users       → register an account
//	GET    /api/users       → list accounts with owned blog ids
//
// The auth.Extractor middleware runs on every /api route; it resolves a
// bearer token to a user when one is present and otherwise lets the request
// through anonymous. Handlers that need identity enforce it themselves.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	blogService := service.NewBlogService(s.db, s.logger)
	userService := service.NewUserService(s.db, passwords, s.logger)
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)

	blogHandler := handler.NewBlogHandler(blogService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Extractor(tokens, s.db))

		r.Get("/blogs", blogHandler.HandleList)
		r.Post("/blogs", blogHandler.HandleCreate)
		r.Put("/blogs/{id}", blogHandler.HandleUpdate)
		r.Delete("/blogs/{id}", blogHandler.HandleDelete)

		r.Post("/login", authHandler.HandleLogin)

		r.Post("/users", userHandler.HandleRegister)
		r.Get("/users", userHandler.HandleList)
	})

	return nil
}

// Handler exposes the configured router. Integration tests mount it on an
// httptest.Server instead of binding a real port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's owned resources. Tests that use Handler()
// directly should defer this.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

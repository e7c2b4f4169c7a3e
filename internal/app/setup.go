// Package app contains the application setup: dependency wiring and route
// registration for all four resources.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkravets/resource-api/internal/config"
	productservice "github.com/mkravets/resource-api/internal/product/service"
	productstore "github.com/mkravets/resource-api/internal/product/store"
	productrest "github.com/mkravets/resource-api/internal/product/transport/rest"
	studentservice "github.com/mkravets/resource-api/internal/student/service"
	studentstore "github.com/mkravets/resource-api/internal/student/store"
	studentrest "github.com/mkravets/resource-api/internal/student/transport/rest"
	taskservice "github.com/mkravets/resource-api/internal/task/service"
	taskstore "github.com/mkravets/resource-api/internal/task/store"
	taskrest "github.com/mkravets/resource-api/internal/task/transport/rest"
	userservice "github.com/mkravets/resource-api/internal/user/service"
	userstore "github.com/mkravets/resource-api/internal/user/store"
	userrest "github.com/mkravets/resource-api/internal/user/transport/rest"
	"github.com/mkravets/resource-api/pkg/server"
)

type Dependencies struct {
	ProductService productservice.ProductService
	StudentService studentservice.StudentService
	TaskService    taskservice.TaskService
	UserService    userservice.UserService
	Logger         *slog.Logger
}

// SetupDependencies wires the four resource services. Products are backed by
// PostgreSQL; the other collections live in process memory, seeded once here
// and kept for the process lifetime.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: productservice.NewService(productstore.NewPgStore(dbPool)),
		StudentService: studentservice.NewService(studentstore.NewMemoryStore(studentstore.SeedData()...)),
		TaskService:    taskservice.NewService(taskstore.NewMemoryStore(taskstore.SeedData()...)),
		UserService:    userservice.NewService(userstore.NewMemoryStore(userstore.SeedData()...)),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and registers all resource routes.
// Also used by tests to exercise the full HTTP surface.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for all resources.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productrest.NewHandler(deps.ProductService, deps.Logger).RegisterRoutes(mux)
	studentrest.NewHandler(deps.StudentService, deps.Logger).RegisterRoutes(mux)
	taskrest.NewHandler(deps.TaskService, deps.Logger).RegisterRoutes(mux)
	userrest.NewHandler(deps.UserService, deps.Logger).RegisterRoutes(mux)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// SetupHttpServer creates and configures the HTTP server for the application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// Package server wires configuration, storage, services, and routes
// into a runnable HTTP application.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/announcement"
	"hrms/internal/domain/attendance"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/payroll"
	"hrms/internal/domain/registration"
	"hrms/internal/domain/report"
	"hrms/internal/platform/config"
	"hrms/internal/platform/store"
	"hrms/internal/transport/http/api"
	announcementshandler "hrms/internal/transport/http/handlers/announcements"
	attendancehandler "hrms/internal/transport/http/handlers/attendance"
	authhandler "hrms/internal/transport/http/handlers/auth"
	employeeshandler "hrms/internal/transport/http/handlers/employees"
	leaveshandler "hrms/internal/transport/http/handlers/leaves"
	payrollhandler "hrms/internal/transport/http/handlers/payroll"
	reportshandler "hrms/internal/transport/http/handlers/reports"
	"hrms/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Store  *store.Store
	Router chi.Router
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	employees := employee.NewService(st, cfg.UpdatePolicy)
	registrations := registration.NewService(st)
	attendanceSvc := attendance.NewService(st)
	leaves := leave.NewService(st)
	payrollSvc := payroll.NewService(st)
	announcements := announcement.NewService(st)
	reports := report.NewService(st)

	authH := authhandler.NewHandler(st, registrations, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword)
	employeesH := employeeshandler.NewHandler(employees)
	attendanceH := attendancehandler.NewHandler(attendanceSvc)
	leavesH := leaveshandler.NewHandler(leaves)
	payrollH := payrollhandler.NewHandler(payrollSvc)
	announcementsH := announcementshandler.NewHandler(announcements)
	reportsH := reportshandler.NewHandler(reports, employees)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		authH.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret))
			employeesH.RegisterRoutes(r)
			attendanceH.RegisterRoutes(r)
			leavesH.RegisterRoutes(r)
			payrollH.RegisterRoutes(r)
			announcementsH.RegisterRoutes(r)
			reportsH.RegisterRoutes(r)
		})
	})

	r.NotFound(spaHandler(cfg.FrontendDir))

	return &App{Config: cfg, Store: st, Router: r}, nil
}

// Run serves until the context is cancelled, then drains in-flight
// requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// spaHandler serves the built frontend, falling back to index.html for
// client-side routes. API paths never reach it with a 200.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			api.Error(w, http.StatusNotFound, "Not found")
			return
		}

		requested := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			api.Error(w, http.StatusNotFound, "Not found")
			return
		}
		http.ServeFile(w, r, index)
	}
}

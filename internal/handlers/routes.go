package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteOptions struct {
	StaticDir      string
	RequestTimeout time.Duration
	EnableMetrics  bool
}

func RegisterRoutes(r *chi.Mux, opts RouteOptions, activityHandler *ActivityHandler) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Mergington High School API", "1.0.0")
	config.Info.Description = "API for viewing and signing up for extracurricular activities"
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	if opts.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	RegisterStatic(r, opts.StaticDir)

	huma.Register(api, huma.Operation{
		OperationID:   "list-activities",
		Method:        http.MethodGet,
		Path:          "/activities",
		Summary:       "List activities with their participants",
		Tags:          []string{"Activities"},
		DefaultStatus: http.StatusOK,
	}, activityHandler.HandleList)

	huma.Register(api, huma.Operation{
		OperationID:   "export-activities",
		Method:        http.MethodGet,
		Path:          "/activities/export",
		Summary:       "Download the roster as an Excel workbook",
		Tags:          []string{"Activities"},
		DefaultStatus: http.StatusOK,
	}, activityHandler.HandleExport)

	huma.Register(api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/activities/{name}/signup",
		Summary:       "Sign up a student for an activity",
		Tags:          []string{"Activities"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, activityHandler.HandleSignup)

	huma.Register(api, huma.Operation{
		OperationID:   "unregister",
		Method:        http.MethodDelete,
		Path:          "/activities/{name}/unregister",
		Summary:       "Unregister a student from an activity",
		Tags:          []string{"Activities"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, activityHandler.HandleUnregister)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
)

// defaultMaxBodyBytes bounds request bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AllocationDependencies
	TemplateDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	allocationsHandler *AllocationsHandler
	templatesHandler   *TemplatesHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes limits
// request bodies; non-positive values select 1 MiB.
func NewServer(deps Dependencies, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		allocationsHandler: NewAllocationsHandler(deps, maxBodyBytes),
		templatesHandler:   NewTemplatesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/allocations", MetricsMiddleware(s.allocationsHandler.HandlePostAllocation, "allocations"))
	mux.HandleFunc("/allocations/batch", MetricsMiddleware(s.allocationsHandler.HandlePostBatch, "allocations_batch"))
	mux.HandleFunc("/templates/default", MetricsMiddleware(s.templatesHandler.HandleGetDefault, "templates_default"))
}

// batchRequest mirrors the OpenAPI schema for POST /allocations/batch.
type batchRequest struct {
	Requests []types.AllocationRequest `json:"requests"`
}

type batchResponse struct {
	Items []types.BatchItem `json:"items"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

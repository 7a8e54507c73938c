// Package http exposes the JSON API: record creation endpoints, the
// maintenance listing, the income/expense summary and raw access to
// uploaded attachments.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"contabilidad/internal/filestore"
	"contabilidad/internal/services"
)

type Server struct {
	http.Server
	records        *services.RecordService
	files          *filestore.Store
	maxUploadBytes int64
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, records *services.RecordService, files *filestore.Store, maxUploadBytes int64) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		records:        records,
		files:          files,
		maxUploadBytes: maxUploadBytes,
	}

	mux.HandleFunc("POST /api/ingresos", s.withMiddleware(s.handleCreateIncome))
	mux.HandleFunc("POST /api/gastos", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("POST /api/mantenimientos", s.withMiddleware(s.handleCreateMaintenance))
	mux.HandleFunc("GET /api/mantenimientos", s.withMiddleware(s.handleListMaintenance))
	mux.HandleFunc("GET /api/resumen", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /uploads/{filename}", s.withMiddleware(s.handleGetUpload))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady verifies the database is reachable before reporting ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.records.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready", "error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

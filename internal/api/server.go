// Package api is the HTTP surface consumed by dashboards and
// operators: snapshot, statistics, alert log, threshold configuration,
// window clear and explicit export triggers.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ime-grupo10/vibration-monitor/internal/export"
	"github.com/ime-grupo10/vibration-monitor/internal/model"
	"github.com/ime-grupo10/vibration-monitor/internal/monitor"
)

type Server struct {
	core      *monitor.Core
	exporters map[string]export.Exporter
}

// NewServer builds the API over the core. exporters maps a format name
// ("csv", "influx") to the exporter invoked by POST /api/v1/export.
func NewServer(core *monitor.Core, exporters map[string]export.Exporter) *Server {
	if exporters == nil {
		exporters = map[string]export.Exporter{}
	}
	return &Server{core: core, exporters: exporters}
}

// Router wires all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	v1.HandleFunc("/readings", s.handleReadings).Methods(http.MethodGet)
	v1.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	v1.HandleFunc("/alerts", s.handleAlerts).Methods(http.MethodGet)
	v1.HandleFunc("/threshold", s.handleSetThreshold).Methods(http.MethodPut)
	v1.HandleFunc("/clear", s.handleClear).Methods(http.MethodPost)
	v1.HandleFunc("/export", s.handleExport).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Snapshot())
}

func (s *Server) handleReadings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Readings())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Stats())
}

type alertsResponse struct {
	State     model.AlertState   `json:"state"`
	Threshold int                `json:"threshold"`
	Events    []model.AlertEvent `json:"events"`
}

func (s *Server) handleAlerts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, alertsResponse{
		State:     s.core.AlertState(),
		Threshold: s.core.Threshold(),
		Events:    s.core.Events(),
	})
}

type thresholdRequest struct {
	Threshold int `json:"threshold"`
}

func (s *Server) handleSetThreshold(w http.ResponseWriter, r *http.Request) {
	var req thresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %v", err))
		return
	}
	if req.Threshold < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("threshold must be >= 0"))
		return
	}
	s.core.SetThreshold(req.Threshold)
	log.Printf("api: threshold set to %d", req.Threshold)
	writeJSON(w, http.StatusOK, map[string]int{"threshold": req.Threshold})
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.core.Clear()
	log.Printf("api: window cleared")
	w.WriteHeader(http.StatusNoContent)
}

type exportRequest struct {
	Format string `json:"format"`
}

type exportResponse struct {
	Format      string    `json:"format"`
	Readings    int       `json:"readings"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %v", err))
		return
	}
	exp, ok := s.exporters[req.Format]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown export format %q", req.Format))
		return
	}

	snap := s.core.Snapshot()
	if len(snap.Readings) == 0 {
		writeError(w, http.StatusConflict, fmt.Errorf("no data to export yet"))
		return
	}
	if err := exp.Export(snap); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{
		Format:      req.Format,
		Readings:    len(snap.Readings),
		GeneratedAt: snap.GeneratedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

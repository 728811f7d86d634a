package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/llmsplit/internal/pipeline"
	"github.com/dgallion1/llmsplit/internal/source"
	"github.com/dgallion1/llmsplit/internal/vectordb"
	"github.com/go-chi/chi/v5"
)

type startRunRequest struct {
	// Sources selects a subset of the configured sources by name.
	// Empty means all of them.
	Sources []string `json:"sources"`
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var req startRunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	srcs, err := source.Filter(source.Defaults(), req.Sources)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	names := make([]string, len(srcs))
	for i, src := range srcs {
		names[i] = src.Name
	}

	run := pipeline.NewRun(names)
	s.runs.Put(run)

	// The run outlives the request; detach it from the request context.
	go s.runner.Execute(context.Background(), run, srcs)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   run.ID,
		"status":   pipeline.RunQueued,
		"sources":  names,
		"poll_url": fmt.Sprintf("/api/runs/%s", run.ID),
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run := s.runs.Get(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run.Snapshot())
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"sources": source.Defaults()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req startRunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	srcs, err := source.Filter(source.Defaults(), req.Sources)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	checks, err := s.runner.ValidateAll(r.Context(), srcs)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":     vectordb.AllOK(checks),
		"checks": checks,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

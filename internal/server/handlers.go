package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julianstephens/engage/internal/logger"
	"github.com/julianstephens/engage/internal/models"
	"github.com/julianstephens/engage/internal/storage"
)

type statusResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.store.GetAllPlans()
	if err != nil {
		s.internalError(w, "list plans", err)
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.store.GetPlan(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, "get plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// handleCreatePlan accepts a full plan object, id included; the caller
// generates ids.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodePlan(w, r)
	if !ok {
		return
	}
	if err := s.store.SavePlan(plan); err != nil {
		s.saveError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{Success: true, ID: plan.ID})
}

// handleReplacePlan overwrites the plan wholesale: the plan row is
// updated and every step deleted and reinserted from the request body.
func (s *Server) handleReplacePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodePlan(w, r)
	if !ok {
		return
	}
	if id := r.PathValue("id"); plan.ID != id {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "plan id in body does not match path"})
		return
	}
	if err := s.store.SavePlan(plan); err != nil {
		s.saveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePlan(r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, "delete plan", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

// saveError distinguishes rejected shapes (bad request) from storage
// failures. The store validates plan invariants at the boundary, so a
// validation failure surfaces here as a 400 with the reason.
func (s *Server) saveError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrInvalidPlan) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.internalError(w, "save plan", err)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	logger.Error("Storage operation failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage failure"})
}

func decodePlan(w http.ResponseWriter, r *http.Request) (models.Plan, bool) {
	var plan models.Plan
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed plan body: " + err.Error()})
		return models.Plan{}, false
	}
	return plan, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

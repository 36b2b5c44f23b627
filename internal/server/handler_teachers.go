package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	teachers, err := s.store.ListTeachers(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	respondOK(w, reqID, map[string]any{"teachers": teachers, "count": len(teachers)})
}

func (s *Server) handleAddTeacher(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("missing required field",
				model.FieldError{Field: "name", Message: "name is required"}))
		return
	}

	t := &model.Teacher{
		ID:   "tch_" + uuid.New().String(),
		Name: req.Name,
	}
	if err := s.store.AddTeacher(r.Context(), t); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("teacher added", "id", t.ID, "name", t.Name, "position", t.Position)
	respondCreated(w, reqID, t)
}

func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	t, err := s.store.GetTeacher(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	if t == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("teacher", id))
		return
	}

	respondOK(w, reqID, t)
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	t, err := s.store.GetTeacher(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	if t == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("teacher", id))
		return
	}

	// Overrides naming this teacher stay in place and go stale: the
	// schedule shows those days unassigned until the override is cleared.
	if err := s.store.DeleteTeacher(r.Context(), id); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("teacher deleted", "id", id, "name", t.Name)
	respondOK(w, reqID, map[string]any{"id": id, "deleted": true})
}

func (s *Server) handleReorderTeachers(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	teachers, err := s.store.ListTeachers(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	if len(req.IDs) != len(teachers) {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("order must list every teacher exactly once",
				model.FieldError{Field: "ids", Message: fmt.Sprintf("got %d ids, roster has %d", len(req.IDs), len(teachers))}))
		return
	}
	known := make(map[string]bool, len(teachers))
	for _, t := range teachers {
		known[t.ID] = true
	}
	seen := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		if !known[id] {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("order must list every teacher exactly once",
					model.FieldError{Field: "ids", Message: "unknown teacher id " + id}))
			return
		}
		if seen[id] {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("order must list every teacher exactly once",
					model.FieldError{Field: "ids", Message: "duplicate teacher id " + id}))
			return
		}
		seen[id] = true
	}

	if err := s.store.ReorderTeachers(r.Context(), req.IDs); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	reordered, err := s.store.ListTeachers(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("roster reordered", "count", len(reordered))
	respondOK(w, reqID, map[string]any{"teachers": reordered, "count": len(reordered)})
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func (s *Server) handleListOverrides(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	overrides, err := s.store.ListOverrides(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	respondOK(w, reqID, map[string]any{"overrides": overrides, "count": len(overrides)})
}

func (s *Server) handleSetOverride(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	date := chi.URLParam(r, "date")

	if _, err := model.ParseDate(date); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid date",
				model.FieldError{Field: "date", Message: err.Error()}))
		return
	}

	var req struct {
		Kind      string `json:"kind"`
		TeacherID string `json:"teacher_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	var ov model.Override
	switch model.OverrideKind(req.Kind) {
	case model.OverrideEmpty:
		ov = model.EmptyOverride()
	case model.OverrideTeacher:
		if req.TeacherID == "" {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("missing required field",
					model.FieldError{Field: "teacher_id", Message: "teacher_id is required for a teacher override"}))
			return
		}
		// Reject ids that are not on the roster right now. Overrides only
		// go stale later, when their teacher is deleted.
		t, err := s.store.GetTeacher(r.Context(), req.TeacherID)
		if err != nil {
			respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
			return
		}
		if t == nil {
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("teacher", req.TeacherID))
			return
		}
		ov = model.TeacherOverride(req.TeacherID)
	default:
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid override",
				model.FieldError{Field: "kind", Message: "kind must be empty or teacher"}))
		return
	}

	if err := s.store.SetOverride(r.Context(), date, ov); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("override set", "date", date, "kind", ov.Kind, "teacher_id", ov.TeacherID)
	respondOK(w, reqID, map[string]any{"date": date, "override": ov})
}

func (s *Server) handleClearOverride(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	date := chi.URLParam(r, "date")

	overrides, err := s.store.ListOverrides(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	if _, ok := overrides[date]; !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("override", date))
		return
	}

	if err := s.store.ClearOverride(r.Context(), date); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("override cleared", "date", date)
	respondOK(w, reqID, map[string]any{"date": date, "cleared": true})
}

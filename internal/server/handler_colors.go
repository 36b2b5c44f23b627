package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func (s *Server) handleListDayColors(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	colors, err := s.store.ListDayColors(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	respondOK(w, reqID, map[string]any{"colors": colors, "count": len(colors)})
}

func (s *Server) handleSetDayColor(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	date := chi.URLParam(r, "date")

	if _, err := model.ParseDate(date); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid date",
				model.FieldError{Field: "date", Message: err.Error()}))
		return
	}

	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	if !model.ValidColor(req.Color) {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid color",
				model.FieldError{Field: "color", Message: "color must be #rgb or #rrggbb"}))
		return
	}

	if err := s.store.SetDayColor(r.Context(), date, req.Color); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("day color set", "date", date, "color", req.Color)
	respondOK(w, reqID, model.DayColor{Date: date, Color: req.Color})
}

func (s *Server) handleClearDayColor(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	date := chi.URLParam(r, "date")

	colors, err := s.store.ListDayColors(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	if _, ok := colors[date]; !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("day color", date))
		return
	}

	if err := s.store.ClearDayColor(r.Context(), date); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("day color cleared", "date", date)
	respondOK(w, reqID, map[string]any{"date": date, "cleared": true})
}

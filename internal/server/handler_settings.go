package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

type startDateResponse struct {
	StartDate string `json:"start_date"`
	Set       bool   `json:"set"`
}

func (s *Server) handleGetStartDate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	start, err := s.store.GetStartDate(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	resp := startDateResponse{}
	if !start.IsZero() {
		resp.StartDate = model.FormatDate(start)
		resp.Set = true
	}
	respondOK(w, reqID, resp)
}

func (s *Server) handleSetStartDate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		StartDate string `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	if req.StartDate == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("missing required field",
				model.FieldError{Field: "start_date", Message: "start_date is required"}))
		return
	}
	day, err := model.ParseDate(req.StartDate)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid date",
				model.FieldError{Field: "start_date", Message: err.Error()}))
		return
	}

	if err := s.store.SetStartDate(r.Context(), day); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("start date set", "start_date", req.StartDate)
	respondOK(w, reqID, startDateResponse{StartDate: req.StartDate, Set: true})
}

func (s *Server) handleClearStartDate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	if err := s.store.SetStartDate(r.Context(), time.Time{}); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("start date cleared")
	respondOK(w, reqID, startDateResponse{})
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/DuyDuc2014/l-ch/internal/share"
	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func (s *Server) handleCreateShareCode(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	st, err := s.store.ExportState(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	code, err := share.Encode(st)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("share code created", "length", len(code), "teachers", len(st.Teachers))
	respondOK(w, reqID, map[string]any{
		"code":     code,
		"length":   len(code),
		"teachers": len(st.Teachers),
	})
}

// handlePreviewShareCode decodes a code without touching the store, so
// callers can inspect what an import would bring in before committing.
func (s *Server) handlePreviewShareCode(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	if req.Code == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("missing required field",
				model.FieldError{Field: "code", Message: "code is required"}))
		return
	}

	st, err := share.Decode(req.Code)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid share code",
				model.FieldError{Field: "code", Message: err.Error()}))
		return
	}

	respondOK(w, reqID, map[string]any{
		"teachers":   st.Teachers,
		"overrides":  len(st.Overrides),
		"colors":     len(st.Colors),
		"start_date": st.StartDate,
	})
}

func (s *Server) handleImportShareCode(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	if req.Code == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("missing required field",
				model.FieldError{Field: "code", Message: "code is required"}))
		return
	}

	st, err := share.Decode(req.Code)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid share code",
				model.FieldError{Field: "code", Message: err.Error()}))
		return
	}

	// Import replaces the whole state: roster, overrides, colors and
	// start date all come from the decoded snapshot.
	if err := s.store.ImportState(r.Context(), st); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	s.logger.Info("state imported from share code",
		"teachers", len(st.Teachers), "overrides", len(st.Overrides), "colors", len(st.Colors))
	respondOK(w, reqID, map[string]any{
		"imported":  true,
		"teachers":  len(st.Teachers),
		"overrides": len(st.Overrides),
		"colors":    len(st.Colors),
	})
}

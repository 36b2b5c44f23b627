package server

import (
	"net/http"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func (s *Server) handleRunBackup(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	if s.backup == nil || !s.backup.Configured() {
		respondError(w, reqID, http.StatusServiceUnavailable,
			model.NewUnavailableError("no backup target configured"))
		return
	}

	locations, err := s.backup.Run(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	respondOK(w, reqID, map[string]any{"written": locations})
}

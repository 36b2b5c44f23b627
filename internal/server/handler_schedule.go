package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/DuyDuc2014/l-ch/internal/export"
	"github.com/DuyDuc2014/l-ch/internal/schedule"
	"github.com/DuyDuc2014/l-ch/pkg/model"
)

// scheduleDay is one calendar day of the decorated month view.
// Overridden marks days with a stored override, including stale ones
// whose teacher no longer exists.
type scheduleDay struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	TeacherID   string `json:"teacher_id,omitempty"`
	TeacherName string `json:"teacher_name,omitempty"`
	Overridden  bool   `json:"overridden,omitempty"`
	Color       string `json:"color,omitempty"`
}

type monthSchedule struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []scheduleDay `json:"days"`
}

// monthQuery reads ?year= and ?month=, defaulting to the current UTC
// month when absent.
func monthQuery(r *http.Request) (int, time.Month, *model.APIError) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 9999 {
			return 0, 0, model.NewValidationError("invalid query parameter",
				model.FieldError{Field: "year", Message: "year must be an integer between 1 and 9999"})
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, model.NewValidationError("invalid query parameter",
				model.FieldError{Field: "month", Message: "month must be an integer between 1 and 12"})
		}
		month = n
	}
	return year, time.Month(month), nil
}

// generate runs the month generator against the current store state and
// records generation metrics.
func (s *Server) generate(ctx context.Context, year int, month time.Month) ([]model.Assignment, []model.Teacher, map[string]model.Override, error) {
	teachers, err := s.store.ListTeachers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	start, err := s.store.GetStartDate(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	overrides, err := s.store.ListOverrides(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	begin := time.Now()
	assignments := schedule.Generate(teachers, start, overrides, year, month)
	s.metrics.generateSeconds.Observe(time.Since(begin).Seconds())
	s.metrics.generations.Inc()

	return assignments, teachers, overrides, nil
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	year, month, apiErr := monthQuery(r)
	if apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	assignments, teachers, overrides, err := s.generate(r.Context(), year, month)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	colors, err := s.store.ListDayColors(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}

	days := make([]scheduleDay, len(assignments))
	for i, a := range assignments {
		d, _ := model.ParseDate(a.Date)
		_, overridden := overrides[a.Date]
		days[i] = scheduleDay{
			Date:        a.Date,
			Weekday:     d.Weekday().String(),
			TeacherID:   a.TeacherID,
			TeacherName: names[a.TeacherID],
			Overridden:  overridden,
			Color:       colors[a.Date],
		}
	}

	respondOK(w, reqID, monthSchedule{Year: year, Month: int(month), Days: days})
}

func (s *Server) handleExportSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	year, month, apiErr := monthQuery(r)
	if apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid query parameter",
				model.FieldError{Field: "format", Message: "format must be csv or json"}))
		return
	}

	assignments, teachers, _, err := s.generate(r.Context(), year, month)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	rows := export.Rows(assignments, teachers)

	name := fmt.Sprintf("lich-%04d-%02d.%s", year, int(month), format)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

	// Exports are raw downloads, not enveloped API responses.
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		err = export.WriteCSV(w, rows)
	case "json":
		w.Header().Set("Content-Type", "application/json")
		err = export.WriteJSON(w, rows)
	}
	if err != nil {
		s.logger.Error("write export", "format", format, "error", err)
	}
}

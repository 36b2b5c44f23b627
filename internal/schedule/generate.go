package schedule

import (
	"time"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

// Generate derives the duty assignment for every calendar day of the
// given month. It is a pure function of its inputs: the roster in
// rotation order, the global start date, and the override map. Callers
// invoke it fresh after every mutation; no rotation state is carried
// between calls.
//
// The function is total. An empty roster, an unset start date, or a
// start date past the end of the month all yield a fully unassigned
// month rather than an error.
func Generate(teachers []model.Teacher, start time.Time, overrides map[string]model.Override, year int, month time.Month) []model.Assignment {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	out := make([]model.Assignment, last.Day())
	for i := range out {
		out[i].Date = model.FormatDate(first.AddDate(0, 0, i))
	}
	if len(teachers) == 0 || start.IsZero() {
		return out
	}
	start = model.NormalizeDate(start)
	if start.After(last) {
		return out
	}

	// Replay the rotation from the global start date every time. The
	// cursor is a function of every day since then: an override anywhere
	// in that span shifts it, so it cannot be derived from the visible
	// month alone. Replay keeps the cursor correct across override edits
	// and roster reordering at O(days since start) per call, which is
	// cheap for realistic horizons.
	cursor := 0
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		assigned := ""
		if ov, ok := overrides[model.FormatDate(d)]; ok {
			// An empty override leaves the day unassigned and the cursor
			// untouched. A stale override (teacher no longer on the
			// roster) behaves the same way.
			if ov.Kind == model.OverrideTeacher {
				if idx := model.TeacherIndex(teachers, ov.TeacherID); idx >= 0 {
					assigned = ov.TeacherID
					cursor = idx + 1
				}
			}
		} else {
			assigned = teachers[cursor%len(teachers)].ID
			cursor++
		}
		// Days before the first of the month feed the cursor but are not
		// part of the output; days before the start date stay unassigned.
		if !d.Before(first) {
			out[d.Day()-1].TeacherID = assigned
		}
	}
	return out
}

// MonthDays returns the number of calendar days in the given month.
func MonthDays(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

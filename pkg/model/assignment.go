package model

// Assignment is the generator's verdict for one calendar day: either a
// teacher id or nobody. An empty TeacherID means the day is unassigned;
// real ids always carry the "tch_" prefix, so the empty string is
// unambiguous.
type Assignment struct {
	Date      string `json:"date"`
	TeacherID string `json:"teacher_id,omitempty"`
}

// Assigned reports whether a teacher is on duty that day.
func (a Assignment) Assigned() bool {
	return a.TeacherID != ""
}

// DayColor is a per-date color annotation. Colors are presentation-only
// metadata; they never influence assignment.
type DayColor struct {
	Date  string `json:"date"`
	Color string `json:"color"`
}

package model

// OverrideKind distinguishes the two stored override forms. A day with
// no override simply has no key in the override map, so "unset" never
// needs a representation of its own.
type OverrideKind string

const (
	// OverrideEmpty forces a day to have no assignee. The rotation
	// cursor does not advance over such a day.
	OverrideEmpty OverrideKind = "empty"
	// OverrideTeacher pins a day to one teacher and re-synchronizes the
	// rotation so the next unoverridden day continues after that teacher.
	OverrideTeacher OverrideKind = "teacher"
)

// Override is a manually forced assignment (or explicit absence) for a
// single date.
type Override struct {
	Kind      OverrideKind `json:"kind"`
	TeacherID string       `json:"teacher_id,omitempty"`
}

// EmptyOverride returns an override that keeps a day unassigned.
func EmptyOverride() Override {
	return Override{Kind: OverrideEmpty}
}

// TeacherOverride returns an override pinning a day to the given teacher.
func TeacherOverride(id string) Override {
	return Override{Kind: OverrideTeacher, TeacherID: id}
}

// Valid reports whether the override is one of the two well-formed
// shapes. Used when accepting overrides from share blobs.
func (o Override) Valid() bool {
	switch o.Kind {
	case OverrideEmpty:
		return o.TeacherID == ""
	case OverrideTeacher:
		return o.TeacherID != ""
	}
	return false
}

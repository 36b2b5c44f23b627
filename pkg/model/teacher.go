package model

// Teacher is one member of the duty roster.
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Position is the teacher's slot in the rotation order (0-based,
	// dense). Roster order decides who is due next; reordering changes
	// every future non-overridden assignment on recomputation.
	Position int `json:"position"`
}

// TeacherIndex returns the position of id in the roster, or -1 when the
// id is not present. Overrides pointing at a deleted teacher resolve to
// -1 and leave the day unassigned.
func TeacherIndex(teachers []Teacher, id string) int {
	for i, t := range teachers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

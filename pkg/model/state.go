package model

import "fmt"

// StateSchemaVersion is the current share/backup snapshot schema.
const StateSchemaVersion = 1

// State is the complete planner snapshot: everything needed to rebuild
// the roster, the rotation anchor, and every manual annotation. It is the
// unit of share codes, backups, and imports. Derived assignments are
// never part of it; they are always recomputed.
type State struct {
	SchemaVersion int                 `json:"schema_version"`
	StartDate     string              `json:"start_date,omitempty"`
	Teachers      []Teacher           `json:"teachers"`
	Overrides     map[string]Override `json:"overrides,omitempty"`
	Colors        map[string]string   `json:"colors,omitempty"`
}

// Validate checks that a snapshot is internally consistent. Imported
// snapshots (share codes, restored backups) pass through here before
// touching the store; a failure means the collaborator should keep its
// current state rather than apply the blob.
func (s *State) Validate() error {
	if s.SchemaVersion != StateSchemaVersion {
		return fmt.Errorf("unsupported schema version %d", s.SchemaVersion)
	}
	if s.StartDate != "" {
		if _, err := ParseDate(s.StartDate); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}
	seen := make(map[string]bool, len(s.Teachers))
	for i, t := range s.Teachers {
		if t.ID == "" {
			return fmt.Errorf("teacher %d: empty id", i)
		}
		if t.Name == "" {
			return fmt.Errorf("teacher %s: empty name", t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate teacher id %s", t.ID)
		}
		seen[t.ID] = true
	}
	for date, ov := range s.Overrides {
		if _, err := ParseDate(date); err != nil {
			return fmt.Errorf("override date: %w", err)
		}
		if !ov.Valid() {
			return fmt.Errorf("override %s: malformed", date)
		}
		// Overrides may reference deleted teachers; that is the defined
		// stale-override case, not a validation failure.
	}
	for date, color := range s.Colors {
		if _, err := ParseDate(date); err != nil {
			return fmt.Errorf("color date: %w", err)
		}
		if !ValidColor(color) {
			return fmt.Errorf("color %s: %q is not a hex color", date, color)
		}
	}
	return nil
}

// ValidColor reports whether s is a #rgb or #rrggbb hex color.
func ValidColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

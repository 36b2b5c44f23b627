package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/DuyDuc2014/l-ch/pkg/model"

	_ "modernc.org/sqlite"
)

// settingStartDate is the settings key holding the global rotation start.
const settingStartDate = "start_date"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Teacher roster ---

func (s *SQLiteStore) ListTeachers(ctx context.Context) ([]model.Teacher, error) {
	s.logger.Debug("sql", "op", "list", "table", "teachers")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, position FROM teachers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Position); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (s *SQLiteStore) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	s.logger.Debug("sql", "op", "select", "table", "teachers", "id", id)

	var t model.Teacher
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, position FROM teachers WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Position)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddTeacher appends a teacher at the end of the rotation and fills in
// t.Position with the assigned slot.
func (s *SQLiteStore) AddTeacher(ctx context.Context, t *model.Teacher) error {
	s.logger.Debug("sql", "op", "insert", "table", "teachers", "id", t.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM teachers`,
	).Scan(&t.Position); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO teachers (id, name, position) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.Position,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteTeacher removes a teacher and renumbers the remaining positions
// so they stay dense. Overrides referencing the deleted id are left in
// place on purpose.
func (s *SQLiteStore) DeleteTeacher(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "teachers", "id", id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM teachers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("teacher %s not found", id)
	}

	if err := compactPositions(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ReorderTeachers replaces the rotation order with the given id
// sequence, which must be a permutation of the current roster.
func (s *SQLiteStore) ReorderTeachers(ctx context.Context, ids []string) error {
	s.logger.Debug("sql", "op", "reorder", "table", "teachers", "count", len(ids))

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("duplicate teacher id %s", id)
		}
		seen[id] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&total); err != nil {
		return err
	}
	if total != len(ids) {
		return fmt.Errorf("reorder needs all %d teacher ids, got %d", total, len(ids))
	}

	for pos, id := range ids {
		result, err := tx.ExecContext(ctx,
			`UPDATE teachers SET position = ? WHERE id = ?`, pos, id)
		if err != nil {
			return err
		}
		n, _ := result.RowsAffected()
		if n == 0 {
			return fmt.Errorf("teacher %s not found", id)
		}
	}
	return tx.Commit()
}

// compactPositions renumbers teachers 0..n-1 preserving current order.
func compactPositions(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM teachers ORDER BY position`)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE teachers SET position = ? WHERE id = ?`, pos, id); err != nil {
			return err
		}
	}
	return nil
}

// --- Overrides ---

func (s *SQLiteStore) ListOverrides(ctx context.Context) (map[string]model.Override, error) {
	s.logger.Debug("sql", "op", "list", "table", "overrides")

	rows, err := s.db.QueryContext(ctx, `SELECT date, teacher_id, empty FROM overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[string]model.Override)
	for rows.Next() {
		var date, teacherID string
		var empty int
		if err := rows.Scan(&date, &teacherID, &empty); err != nil {
			return nil, err
		}
		if empty != 0 {
			overrides[date] = model.EmptyOverride()
		} else {
			overrides[date] = model.TeacherOverride(teacherID)
		}
	}
	return overrides, rows.Err()
}

func (s *SQLiteStore) SetOverride(ctx context.Context, date string, ov model.Override) error {
	s.logger.Debug("sql", "op", "upsert", "table", "overrides", "date", date, "kind", ov.Kind)

	empty := 0
	if ov.Kind == model.OverrideEmpty {
		empty = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO overrides (date, teacher_id, empty) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET teacher_id = excluded.teacher_id, empty = excluded.empty`,
		date, ov.TeacherID, empty,
	)
	return err
}

func (s *SQLiteStore) ClearOverride(ctx context.Context, date string) error {
	s.logger.Debug("sql", "op", "delete", "table", "overrides", "date", date)

	result, err := s.db.ExecContext(ctx, `DELETE FROM overrides WHERE date = ?`, date)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("override %s not found", date)
	}
	return nil
}

// --- Day colors ---

func (s *SQLiteStore) ListDayColors(ctx context.Context) (map[string]string, error) {
	s.logger.Debug("sql", "op", "list", "table", "day_colors")

	rows, err := s.db.QueryContext(ctx, `SELECT date, color FROM day_colors`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := make(map[string]string)
	for rows.Next() {
		var date, color string
		if err := rows.Scan(&date, &color); err != nil {
			return nil, err
		}
		colors[date] = color
	}
	return colors, rows.Err()
}

func (s *SQLiteStore) SetDayColor(ctx context.Context, date, color string) error {
	s.logger.Debug("sql", "op", "upsert", "table", "day_colors", "date", date)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO day_colors (date, color) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET color = excluded.color`,
		date, color,
	)
	return err
}

func (s *SQLiteStore) ClearDayColor(ctx context.Context, date string) error {
	s.logger.Debug("sql", "op", "delete", "table", "day_colors", "date", date)

	result, err := s.db.ExecContext(ctx, `DELETE FROM day_colors WHERE date = ?`, date)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("color %s not found", date)
	}
	return nil
}

// --- Settings ---

// GetStartDate returns the global rotation start, or the zero time when
// no start date has been set yet.
func (s *SQLiteStore) GetStartDate(ctx context.Context) (time.Time, error) {
	s.logger.Debug("sql", "op", "select", "table", "settings", "key", settingStartDate)

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingStartDate,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return model.ParseDate(value)
}

// SetStartDate stores the global rotation start. A zero time clears it.
func (s *SQLiteStore) SetStartDate(ctx context.Context, start time.Time) error {
	s.logger.Debug("sql", "op", "upsert", "table", "settings", "key", settingStartDate)

	if start.IsZero() {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM settings WHERE key = ?`, settingStartDate)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingStartDate, model.FormatDate(start),
	)
	return err
}

// --- Snapshot import/export ---

// ExportState reads the full planner state in one shot for share codes
// and backups.
func (s *SQLiteStore) ExportState(ctx context.Context) (*model.State, error) {
	s.logger.Debug("sql", "op", "export_state")

	teachers, err := s.ListTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("export teachers: %w", err)
	}
	overrides, err := s.ListOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("export overrides: %w", err)
	}
	colors, err := s.ListDayColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("export colors: %w", err)
	}
	start, err := s.GetStartDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("export start date: %w", err)
	}

	st := &model.State{
		SchemaVersion: model.StateSchemaVersion,
		Teachers:      teachers,
		Overrides:     overrides,
		Colors:        colors,
	}
	if !start.IsZero() {
		st.StartDate = model.FormatDate(start)
	}
	return st, nil
}

// ImportState atomically replaces the whole planner state with the given
// snapshot. Callers validate the snapshot first; roster order in the
// snapshot becomes the new rotation order.
func (s *SQLiteStore) ImportState(ctx context.Context, st *model.State) error {
	s.logger.Debug("sql", "op", "import_state",
		"teachers", len(st.Teachers), "overrides", len(st.Overrides))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"teachers", "overrides", "day_colors", "settings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, t := range st.Teachers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO teachers (id, name, position) VALUES (?, ?, ?)`,
			t.ID, t.Name, i,
		); err != nil {
			return fmt.Errorf("import teacher %s: %w", t.ID, err)
		}
	}
	for date, ov := range st.Overrides {
		empty := 0
		if ov.Kind == model.OverrideEmpty {
			empty = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO overrides (date, teacher_id, empty) VALUES (?, ?, ?)`,
			date, ov.TeacherID, empty,
		); err != nil {
			return fmt.Errorf("import override %s: %w", date, err)
		}
	}
	for date, color := range st.Colors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO day_colors (date, color) VALUES (?, ?)`,
			date, color,
		); err != nil {
			return fmt.Errorf("import color %s: %w", date, err)
		}
	}
	if st.StartDate != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)`,
			settingStartDate, st.StartDate,
		); err != nil {
			return fmt.Errorf("import start date: %w", err)
		}
	}
	return tx.Commit()
}

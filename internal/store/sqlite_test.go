package store

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// seedTeachers adds teachers in order and returns them with assigned
// positions.
func seedTeachers(t *testing.T, st *SQLiteStore, names ...string) []model.Teacher {
	t.Helper()
	ctx := context.Background()
	teachers := make([]model.Teacher, len(names))
	for i, name := range names {
		teachers[i] = model.Teacher{ID: "tch_" + name, Name: name}
		if err := st.AddTeacher(ctx, &teachers[i]); err != nil {
			t.Fatalf("add teacher %s: %v", name, err)
		}
	}
	return teachers
}

// --- Migration tests ---

func TestMigrate_Idempotent(t *testing.T) {
	st := testStore(t)
	// Migrating a second time must not error.
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

// --- Teacher roster tests ---

func TestAddAndListTeachers(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seedTeachers(t, st, "An", "Binh", "Chi")

	teachers, err := st.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teachers) != 3 {
		t.Fatalf("len = %d, want 3", len(teachers))
	}
	for i, want := range []string{"An", "Binh", "Chi"} {
		if teachers[i].Name != want {
			t.Errorf("teachers[%d].Name = %q, want %q", i, teachers[i].Name, want)
		}
		if teachers[i].Position != i {
			t.Errorf("teachers[%d].Position = %d, want %d", i, teachers[i].Position, i)
		}
	}
}

func TestGetTeacher(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seeded := seedTeachers(t, st, "An")

	got, err := st.GetTeacher(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("got nil teacher")
	}
	if got.Name != "An" {
		t.Errorf("name = %q, want An", got.Name)
	}
}

func TestGetTeacher_NotFound(t *testing.T) {
	st := testStore(t)
	got, err := st.GetTeacher(context.Background(), "tch_nonexistent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestDeleteTeacher_CompactsPositions(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seeded := seedTeachers(t, st, "An", "Binh", "Chi")

	if err := st.DeleteTeacher(ctx, seeded[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	teachers, err := st.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teachers) != 2 {
		t.Fatalf("len = %d, want 2", len(teachers))
	}
	if teachers[0].Name != "An" || teachers[0].Position != 0 {
		t.Errorf("teachers[0] = %+v, want An at 0", teachers[0])
	}
	if teachers[1].Name != "Chi" || teachers[1].Position != 1 {
		t.Errorf("teachers[1] = %+v, want Chi at 1", teachers[1])
	}
}

func TestDeleteTeacher_NotFound(t *testing.T) {
	st := testStore(t)
	if err := st.DeleteTeacher(context.Background(), "tch_nonexistent"); err == nil {
		t.Error("expected error for nonexistent teacher")
	}
}

func TestDeleteTeacher_KeepsOverride(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seeded := seedTeachers(t, st, "An", "Binh")
	if err := st.SetOverride(ctx, "2024-01-03", model.TeacherOverride(seeded[1].ID)); err != nil {
		t.Fatalf("set override: %v", err)
	}

	if err := st.DeleteTeacher(ctx, seeded[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	overrides, err := st.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("list overrides: %v", err)
	}
	ov, ok := overrides["2024-01-03"]
	if !ok {
		t.Fatal("override removed with teacher, want it retained")
	}
	if ov.TeacherID != seeded[1].ID {
		t.Errorf("override teacher = %q, want %q", ov.TeacherID, seeded[1].ID)
	}
}

func TestReorderTeachers(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seeded := seedTeachers(t, st, "An", "Binh", "Chi")

	order := []string{seeded[2].ID, seeded[0].ID, seeded[1].ID}
	if err := st.ReorderTeachers(ctx, order); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	teachers, err := st.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, id := range order {
		if teachers[i].ID != id {
			t.Errorf("teachers[%d].ID = %q, want %q", i, teachers[i].ID, id)
		}
	}
}

func TestReorderTeachers_WrongCount(t *testing.T) {
	st := testStore(t)
	seeded := seedTeachers(t, st, "An", "Binh")

	if err := st.ReorderTeachers(context.Background(), []string{seeded[0].ID}); err == nil {
		t.Error("expected error for partial id list")
	}
}

func TestReorderTeachers_UnknownID(t *testing.T) {
	st := testStore(t)
	seeded := seedTeachers(t, st, "An", "Binh")

	if err := st.ReorderTeachers(context.Background(), []string{seeded[0].ID, "tch_nonexistent"}); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestReorderTeachers_DuplicateID(t *testing.T) {
	st := testStore(t)
	seeded := seedTeachers(t, st, "An", "Binh")

	if err := st.ReorderTeachers(context.Background(), []string{seeded[0].ID, seeded[0].ID}); err == nil {
		t.Error("expected error for duplicate id")
	}
}

// --- Override tests ---

func TestSetAndListOverrides(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.SetOverride(ctx, "2024-01-03", model.EmptyOverride()); err != nil {
		t.Fatalf("set empty: %v", err)
	}
	if err := st.SetOverride(ctx, "2024-01-05", model.TeacherOverride("tch_a")); err != nil {
		t.Fatalf("set teacher: %v", err)
	}

	overrides, err := st.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(overrides) != 2 {
		t.Fatalf("len = %d, want 2", len(overrides))
	}
	if ov := overrides["2024-01-03"]; ov.Kind != model.OverrideEmpty {
		t.Errorf("2024-01-03 kind = %q, want empty", ov.Kind)
	}
	if ov := overrides["2024-01-05"]; ov.Kind != model.OverrideTeacher || ov.TeacherID != "tch_a" {
		t.Errorf("2024-01-05 = %+v, want teacher tch_a", ov)
	}
}

func TestSetOverride_Upsert(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	st.SetOverride(ctx, "2024-01-03", model.TeacherOverride("tch_a"))
	if err := st.SetOverride(ctx, "2024-01-03", model.EmptyOverride()); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	overrides, _ := st.ListOverrides(ctx)
	if ov := overrides["2024-01-03"]; ov.Kind != model.OverrideEmpty || ov.TeacherID != "" {
		t.Errorf("override = %+v, want empty", ov)
	}
}

func TestClearOverride(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	st.SetOverride(ctx, "2024-01-03", model.EmptyOverride())
	if err := st.ClearOverride(ctx, "2024-01-03"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	overrides, _ := st.ListOverrides(ctx)
	if len(overrides) != 0 {
		t.Errorf("len = %d, want 0 after clear", len(overrides))
	}
}

func TestClearOverride_NotFound(t *testing.T) {
	st := testStore(t)
	if err := st.ClearOverride(context.Background(), "2024-01-03"); err == nil {
		t.Error("expected error for absent override")
	}
}

// --- Day color tests ---

func TestSetAndListDayColors(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.SetDayColor(ctx, "2024-01-10", "#ff0000"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Overwrite.
	if err := st.SetDayColor(ctx, "2024-01-10", "#00ff00"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	colors, err := st.ListDayColors(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if colors["2024-01-10"] != "#00ff00" {
		t.Errorf("color = %q, want #00ff00", colors["2024-01-10"])
	}
}

func TestClearDayColor(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	st.SetDayColor(ctx, "2024-01-10", "#ff0000")
	if err := st.ClearDayColor(ctx, "2024-01-10"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := st.ClearDayColor(ctx, "2024-01-10"); err == nil {
		t.Error("expected error for second clear")
	}
}

// --- Settings tests ---

func TestStartDate_UnsetReturnsZero(t *testing.T) {
	st := testStore(t)
	got, err := st.GetStartDate(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("start = %v, want zero time", got)
	}
}

func TestSetAndGetStartDate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := st.SetStartDate(ctx, want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := st.GetStartDate(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("start = %v, want %v", got, want)
	}

	// Replacing the start date keeps a single settings row.
	next := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if err := st.SetStartDate(ctx, next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ = st.GetStartDate(ctx)
	if !got.Equal(next) {
		t.Errorf("start = %v, want %v", got, next)
	}
}

func TestSetStartDate_ZeroClears(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	st.SetStartDate(ctx, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err := st.SetStartDate(ctx, time.Time{}); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, _ := st.GetStartDate(ctx)
	if !got.IsZero() {
		t.Errorf("start = %v, want zero after clear", got)
	}
}

// --- Snapshot tests ---

func TestExportImportState_RoundTrip(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seeded := seedTeachers(t, st, "An", "Binh")
	st.SetOverride(ctx, "2024-01-03", model.EmptyOverride())
	st.SetOverride(ctx, "2024-01-05", model.TeacherOverride(seeded[0].ID))
	st.SetDayColor(ctx, "2024-01-10", "#ff0000")
	st.SetStartDate(ctx, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	exported, err := st.ExportState(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.SchemaVersion != model.StateSchemaVersion {
		t.Errorf("schema version = %d, want %d", exported.SchemaVersion, model.StateSchemaVersion)
	}
	if exported.StartDate != "2024-01-01" {
		t.Errorf("start date = %q, want 2024-01-01", exported.StartDate)
	}

	// Import into a fresh store.
	st2 := testStore(t)
	if err := st2.ImportState(ctx, exported); err != nil {
		t.Fatalf("import: %v", err)
	}

	teachers, _ := st2.ListTeachers(ctx)
	if len(teachers) != 2 || teachers[0].Name != "An" || teachers[1].Name != "Binh" {
		t.Errorf("teachers = %+v, want An, Binh in order", teachers)
	}
	overrides, _ := st2.ListOverrides(ctx)
	if len(overrides) != 2 {
		t.Errorf("overrides len = %d, want 2", len(overrides))
	}
	colors, _ := st2.ListDayColors(ctx)
	if colors["2024-01-10"] != "#ff0000" {
		t.Errorf("color = %q, want #ff0000", colors["2024-01-10"])
	}
	start, _ := st2.GetStartDate(ctx)
	if model.FormatDate(start) != "2024-01-01" {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
}

func TestImportState_ReplacesExisting(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	seedTeachers(t, st, "Old1", "Old2", "Old3")
	st.SetOverride(ctx, "2024-02-01", model.EmptyOverride())
	st.SetStartDate(ctx, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))

	incoming := &model.State{
		SchemaVersion: model.StateSchemaVersion,
		Teachers:      []model.Teacher{{ID: "tch_new", Name: "New"}},
	}
	if err := st.ImportState(ctx, incoming); err != nil {
		t.Fatalf("import: %v", err)
	}

	teachers, _ := st.ListTeachers(ctx)
	if len(teachers) != 1 || teachers[0].ID != "tch_new" {
		t.Errorf("teachers = %+v, want only tch_new", teachers)
	}
	overrides, _ := st.ListOverrides(ctx)
	if len(overrides) != 0 {
		t.Errorf("overrides len = %d, want 0", len(overrides))
	}
	start, _ := st.GetStartDate(ctx)
	if !start.IsZero() {
		t.Errorf("start = %v, want zero (snapshot had none)", start)
	}
}

package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func roster(ids ...string) []model.Teacher {
	ts := make([]model.Teacher, len(ids))
	for i, id := range ids {
		ts[i] = model.Teacher{ID: id, Name: strings.ToUpper(id), Position: i}
	}
	return ts
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// assignedIDs flattens a month into one id per day, "" for unassigned.
func assignedIDs(assignments []model.Assignment) []string {
	out := make([]string, len(assignments))
	for i, a := range assignments {
		out[i] = a.TeacherID
	}
	return out
}

func TestGenerate_EmptyRoster(t *testing.T) {
	overrides := map[string]model.Override{
		"2024-01-05": model.TeacherOverride("tch_a"),
	}
	got := Generate(nil, date(t, "2024-01-01"), overrides, 2024, time.January)
	if len(got) != 31 {
		t.Fatalf("len = %d, want 31", len(got))
	}
	for _, a := range got {
		if a.Assigned() {
			t.Errorf("%s = %q, want unassigned", a.Date, a.TeacherID)
		}
	}
}

func TestGenerate_UnsetStartDate(t *testing.T) {
	got := Generate(roster("tch_a", "tch_b"), time.Time{}, nil, 2024, time.January)
	for _, a := range got {
		if a.Assigned() {
			t.Errorf("%s = %q, want unassigned", a.Date, a.TeacherID)
		}
	}
}

func TestGenerate_StartAfterMonth(t *testing.T) {
	got := Generate(roster("tch_a", "tch_b"), date(t, "2024-02-01"), nil, 2024, time.January)
	for _, a := range got {
		if a.Assigned() {
			t.Errorf("%s = %q, want unassigned", a.Date, a.TeacherID)
		}
	}
}

func TestGenerate_StartOnLastDay(t *testing.T) {
	got := Generate(roster("tch_a", "tch_b"), date(t, "2024-01-31"), nil, 2024, time.January)
	for i, a := range got[:30] {
		if a.Assigned() {
			t.Errorf("day %d = %q, want unassigned", i+1, a.TeacherID)
		}
	}
	if got[30].TeacherID != "tch_a" {
		t.Errorf("Jan 31 = %q, want tch_a", got[30].TeacherID)
	}
}

// Roster [A,B,C] from Jan 1: day d assigns teachers[(d-1) mod 3], so
// Jan 31 wraps back to A.
func TestGenerate_RoundRobin(t *testing.T) {
	teachers := roster("tch_a", "tch_b", "tch_c")
	got := Generate(teachers, date(t, "2024-01-01"), nil, 2024, time.January)
	if len(got) != 31 {
		t.Fatalf("len = %d, want 31", len(got))
	}
	for i, a := range got {
		wantDate := time.Date(2024, time.January, i+1, 0, 0, 0, 0, time.UTC)
		if a.Date != model.FormatDate(wantDate) {
			t.Errorf("entry %d date = %q, want %q", i, a.Date, model.FormatDate(wantDate))
		}
		want := teachers[i%3].ID
		if a.TeacherID != want {
			t.Errorf("%s = %q, want %q", a.Date, a.TeacherID, want)
		}
	}
	if got[30].TeacherID != "tch_a" {
		t.Errorf("Jan 31 = %q, want tch_a", got[30].TeacherID)
	}
}

func TestGenerate_StartMidMonth(t *testing.T) {
	got := Generate(roster("tch_a", "tch_b"), date(t, "2024-01-10"), nil, 2024, time.January)
	for i := 0; i < 9; i++ {
		if got[i].Assigned() {
			t.Errorf("day %d = %q, want unassigned before start", i+1, got[i].TeacherID)
		}
	}
	want := []string{"tch_a", "tch_b", "tch_a", "tch_b"}
	if diff := cmp.Diff(want, assignedIDs(got[9:13])); diff != "" {
		t.Errorf("days 10-13 mismatch (-want +got):\n%s", diff)
	}
}

// The cursor replays from the global start date, so days in earlier
// months shift the rotation seen in the visible month.
func TestGenerate_StartInPreviousMonth(t *testing.T) {
	teachers := roster("tch_a", "tch_b", "tch_c")

	got := Generate(teachers, date(t, "2023-12-30"), nil, 2024, time.January)
	// Dec 30 = A, Dec 31 = B, so Jan 1 continues with C.
	want := []string{"tch_c", "tch_a", "tch_b"}
	if diff := cmp.Diff(want, assignedIDs(got[:3])); diff != "" {
		t.Errorf("Jan 1-3 mismatch (-want +got):\n%s", diff)
	}

	// An empty override in December holds the cursor back a day.
	overrides := map[string]model.Override{
		"2023-12-31": model.EmptyOverride(),
	}
	got = Generate(teachers, date(t, "2023-12-30"), overrides, 2024, time.January)
	if got[0].TeacherID != "tch_b" {
		t.Errorf("Jan 1 = %q, want tch_b after held cursor", got[0].TeacherID)
	}
}

// Roster [A,B], empty override on Jan 3: the day is skipped without
// advancing the cursor, so Jan 4 gets what Jan 3 would have.
func TestGenerate_EmptyOverride(t *testing.T) {
	overrides := map[string]model.Override{
		"2024-01-03": model.EmptyOverride(),
	}
	got := Generate(roster("tch_a", "tch_b"), date(t, "2024-01-01"), overrides, 2024, time.January)
	want := []string{"tch_a", "tch_b", "", "tch_a", "tch_b"}
	if diff := cmp.Diff(want, assignedIDs(got[:5])); diff != "" {
		t.Errorf("Jan 1-5 mismatch (-want +got):\n%s", diff)
	}
}

// A manual pick resets the cursor: the day after the override continues
// with the teacher immediately after the picked one in roster order.
func TestGenerate_TeacherOverrideResetsCursor(t *testing.T) {
	teachers := roster("tch_a", "tch_b", "tch_c")
	overrides := map[string]model.Override{
		"2024-01-02": model.TeacherOverride("tch_c"),
	}
	got := Generate(teachers, date(t, "2024-01-01"), overrides, 2024, time.January)
	want := []string{"tch_a", "tch_c", "tch_a", "tch_b", "tch_c"}
	if diff := cmp.Diff(want, assignedIDs(got[:5])); diff != "" {
		t.Errorf("Jan 1-5 mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_OverrideToSelf(t *testing.T) {
	// Overriding a day to the teacher rotation would pick anyway still
	// resets the cursor past that teacher.
	teachers := roster("tch_a", "tch_b")
	overrides := map[string]model.Override{
		"2024-01-01": model.TeacherOverride("tch_a"),
	}
	got := Generate(teachers, date(t, "2024-01-01"), overrides, 2024, time.January)
	want := []string{"tch_a", "tch_b", "tch_a"}
	if diff := cmp.Diff(want, assignedIDs(got[:3])); diff != "" {
		t.Errorf("Jan 1-3 mismatch (-want +got):\n%s", diff)
	}
}

// An override pointing at a deleted teacher is inert: the day resolves
// unassigned and the cursor is not perturbed, exactly like an empty
// override.
func TestGenerate_StaleOverride(t *testing.T) {
	teachers := roster("tch_a", "tch_c") // tch_b deleted after the override was set
	overrides := map[string]model.Override{
		"2024-01-03": model.TeacherOverride("tch_b"),
	}
	got := Generate(teachers, date(t, "2024-01-01"), overrides, 2024, time.January)
	want := []string{"tch_a", "tch_c", "", "tch_a", "tch_c"}
	if diff := cmp.Diff(want, assignedIDs(got[:5])); diff != "" {
		t.Errorf("Jan 1-5 mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_OverrideBeforeStartIgnored(t *testing.T) {
	teachers := roster("tch_a", "tch_b")
	overrides := map[string]model.Override{
		"2024-01-02": model.TeacherOverride("tch_b"),
	}
	got := Generate(teachers, date(t, "2024-01-05"), overrides, 2024, time.January)
	if got[1].Assigned() {
		t.Errorf("Jan 2 = %q, want unassigned before start", got[1].TeacherID)
	}
	// The pre-start override must not shift the cursor either.
	want := []string{"tch_a", "tch_b", "tch_a"}
	if diff := cmp.Diff(want, assignedIDs(got[4:7])); diff != "" {
		t.Errorf("Jan 5-7 mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	teachers := roster("tch_a", "tch_b", "tch_c")
	overrides := map[string]model.Override{
		"2024-01-03": model.EmptyOverride(),
		"2024-01-10": model.TeacherOverride("tch_b"),
		"2024-01-20": model.TeacherOverride("tch_gone"),
	}
	start := date(t, "2023-11-15")
	first := Generate(teachers, start, overrides, 2024, time.January)
	second := Generate(teachers, start, overrides, 2024, time.January)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated call diverged (-first +second):\n%s", diff)
	}
}

func TestGenerate_LeapFebruary(t *testing.T) {
	got := Generate(roster("tch_a"), date(t, "2024-02-01"), nil, 2024, time.February)
	if len(got) != 29 {
		t.Fatalf("len = %d, want 29", len(got))
	}
	if got[28].Date != "2024-02-29" {
		t.Errorf("last date = %q, want 2024-02-29", got[28].Date)
	}
	if got[28].TeacherID != "tch_a" {
		t.Errorf("Feb 29 = %q, want tch_a", got[28].TeacherID)
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := MonthDays(tt.year, tt.month); got != tt.want {
			t.Errorf("MonthDays(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

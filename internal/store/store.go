package store

import (
	"context"
	"time"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

// Store defines the persistence layer for Lich entities.
type Store interface {
	// Teacher roster
	ListTeachers(ctx context.Context) ([]model.Teacher, error)
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
	AddTeacher(ctx context.Context, t *model.Teacher) error
	DeleteTeacher(ctx context.Context, id string) error
	ReorderTeachers(ctx context.Context, ids []string) error

	// Overrides
	ListOverrides(ctx context.Context) (map[string]model.Override, error)
	SetOverride(ctx context.Context, date string, ov model.Override) error
	ClearOverride(ctx context.Context, date string) error

	// Day colors
	ListDayColors(ctx context.Context) (map[string]string, error)
	SetDayColor(ctx context.Context, date, color string) error
	ClearDayColor(ctx context.Context, date string) error

	// Settings
	GetStartDate(ctx context.Context) (time.Time, error)
	SetStartDate(ctx context.Context, start time.Time) error

	// Snapshot import/export
	ExportState(ctx context.Context) (*model.State, error)
	ImportState(ctx context.Context, st *model.State) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}

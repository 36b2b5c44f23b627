package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DuyDuc2014/l-ch/internal/store"
)

// Target writes one state snapshot somewhere durable and returns the
// location it ended up at.
type Target interface {
	Write(ctx context.Context, name string, data []byte) (location string, err error)
}

// SnapshotName derives the file/object name for a snapshot taken at t.
func SnapshotName(t time.Time) string {
	return "lich-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Runner snapshots the full planner state to every configured target.
type Runner struct {
	store   store.Store
	targets []Target
	logger  *slog.Logger
}

// NewRunner wires a backup runner. An empty target list is allowed; Run
// then reports that no target is configured.
func NewRunner(st store.Store, targets []Target, logger *slog.Logger) *Runner {
	return &Runner{
		store:   st,
		targets: targets,
		logger:  logger.With("component", "backup"),
	}
}

// Configured reports whether at least one target is set up.
func (r *Runner) Configured() bool {
	return len(r.targets) > 0
}

// Run exports the current state and writes it to every target. Returns
// the locations written.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if len(r.targets) == 0 {
		return nil, fmt.Errorf("no backup target configured")
	}

	st, err := r.store.ExportState(ctx)
	if err != nil {
		return nil, fmt.Errorf("export state: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}

	name := SnapshotName(time.Now())
	locations := make([]string, 0, len(r.targets))
	for _, target := range r.targets {
		loc, err := target.Write(ctx, name, data)
		if err != nil {
			return locations, err
		}
		r.logger.Info("snapshot written", "location", loc, "bytes", len(data))
		locations = append(locations, loc)
	}
	return locations, nil
}

// DirTarget writes snapshots as files under a local directory.
type DirTarget struct {
	dir string
}

// NewDirTarget creates a target rooted at dir. The directory is created
// on first write.
func NewDirTarget(dir string) *DirTarget {
	return &DirTarget{dir: dir}
}

func (t *DirTarget) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir %s: %w", t.dir, err)
	}
	path := filepath.Join(t.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return path, nil
}

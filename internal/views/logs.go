package views

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
)

// LogLimit caps the log view to the most recent entries.
const LogLimit = 100

// LogsView shows the newest system log entries, optionally narrowed to one
// level on the server and by a text filter locally.
type LogsView struct {
	backend backend.Backend
	opts    options
	list    *collection[models.SystemLogEntry]
	level   models.LogLevel
}

func NewLogsView(b backend.Backend, opts ...Option) *LogsView {
	return &LogsView{
		backend: b,
		opts:    buildOptions(opts),
		list: newCollection(func(e *models.SystemLogEntry) []string {
			entityType := ""
			if e.EntityType != nil {
				entityType = *e.EntityType
			}
			return []string{e.Action, entityType}
		}),
	}
}

// SetLevel selects the level filter applied by the next Load. An empty level
// clears it.
func (v *LogsView) SetLevel(level models.LogLevel) error {
	if level != "" && !level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	v.list.mu.Lock()
	v.level = level
	v.list.mu.Unlock()
	return nil
}

func (v *LogsView) Level() models.LogLevel {
	v.list.mu.RLock()
	defer v.list.mu.RUnlock()
	return v.level
}

func (v *LogsView) Load(ctx context.Context) error {
	level := v.Level()
	gen := v.list.begin()
	entries, err := v.backend.ListSystemLogs(ctx, backend.LogQuery{Level: level, Limit: LogLimit})
	if err != nil {
		v.opts.logger.Error("failed to load system logs", "level", string(level), "error", err)
		entries = nil
	}
	v.list.finish(ctx, gen, capEntries(entries, level))
	return err
}

func capEntries(entries []models.SystemLogEntry, level models.LogLevel) []models.SystemLogEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if len(out) == LogLimit {
			break
		}
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (v *LogsView) SetFilter(q string) { v.list.setQuery(q) }
func (v *LogsView) Filter() string     { return v.list.Query() }
func (v *LogsView) Loading() bool      { return v.list.isLoading() }

// Entries returns the loaded entries that pass the text filter.
func (v *LogsView) Entries() []models.SystemLogEntry { return v.list.visible() }

package views

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLogs(t *testing.T, m *backend.Memory, n int, level models.LogLevel, start time.Time) {
	t.Helper()
	entries := make([]models.SystemLogEntry, n)
	for i := range entries {
		entries[i] = models.SystemLogEntry{
			Level:     level,
			Action:    fmt.Sprintf("%s_action_%d", level, i),
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		}
	}
	require.NoError(t, m.InsertSystemLogs(context.Background(), entries...))
}

func TestLogsView_CapAndLevel(t *testing.T) {
	mem := backend.NewMemory()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedLogs(t, mem, 150, models.LevelInfo, start)
	seedLogs(t, mem, 120, models.LevelError, start)

	v := NewLogsView(mem)
	ctx := context.Background()
	require.NoError(t, v.Load(ctx))
	assert.Len(t, v.Entries(), LogLimit)

	require.NoError(t, v.SetLevel(models.LevelError))
	require.NoError(t, v.Load(ctx))
	entries := v.Entries()
	assert.Len(t, entries, LogLimit)
	for _, e := range entries {
		assert.Equal(t, models.LevelError, e.Level)
	}
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt))
	}
}

func TestLogsView_CapEvenIfBackendIgnoresLimit(t *testing.T) {
	mem := backend.NewMemory()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedLogs(t, mem, 130, models.LevelWarning, start)
	seedLogs(t, mem, 30, models.LevelInfo, start)

	hooked := &hookedBackend{Memory: mem}
	hooked.listLogs = func(ctx context.Context, q backend.LogQuery) ([]models.SystemLogEntry, error) {
		// Ignore both the level and the limit.
		return mem.ListSystemLogs(ctx, backend.LogQuery{})
	}

	v := NewLogsView(hooked)
	require.NoError(t, v.SetLevel(models.LevelInfo))
	require.NoError(t, v.Load(context.Background()))
	entries := v.Entries()
	assert.Len(t, entries, 30)
	for _, e := range entries {
		assert.Equal(t, models.LevelInfo, e.Level)
	}
}

func TestLogsView_EmptyCritical(t *testing.T) {
	mem := backend.NewMemory()
	seedLogs(t, mem, 5, models.LevelInfo, time.Now())

	v := NewLogsView(mem)
	require.NoError(t, v.SetLevel(models.LevelCritical))
	require.NoError(t, v.Load(context.Background()))
	assert.NotNil(t, v.Entries())
	assert.Empty(t, v.Entries())
}

func TestLogsView_TextFilter(t *testing.T) {
	mem := backend.NewMemory()
	entity := "trash_location"
	require.NoError(t, mem.InsertSystemLogs(context.Background(),
		models.SystemLogEntry{Level: models.LevelInfo, Action: "project_user_created"},
		models.SystemLogEntry{Level: models.LevelInfo, Action: "status_changed", EntityType: &entity},
	))

	v := NewLogsView(mem)
	require.NoError(t, v.Load(context.Background()))

	v.SetFilter("TRASH")
	require.Len(t, v.Entries(), 1)
	assert.Equal(t, "status_changed", v.Entries()[0].Action)

	v.SetFilter("user")
	require.Len(t, v.Entries(), 1)
	assert.Equal(t, "project_user_created", v.Entries()[0].Action)
}

func TestLogsView_InvalidLevel(t *testing.T) {
	v := NewLogsView(backend.NewMemory())
	assert.ErrorIs(t, v.SetLevel("debug"), ErrInvalidLevel)
	assert.Equal(t, models.LogLevel(""), v.Level())
}

func TestLogsView_LoadFailure(t *testing.T) {
	hooked := &hookedBackend{Memory: backend.NewMemory()}
	hooked.listLogs = func(context.Context, backend.LogQuery) ([]models.SystemLogEntry, error) {
		return nil, errBackendDown
	}
	v := NewLogsView(hooked)
	assert.ErrorIs(t, v.Load(context.Background()), errBackendDown)
	assert.Empty(t, v.Entries())
	assert.False(t, v.Loading())
}

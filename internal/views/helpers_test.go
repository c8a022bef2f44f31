package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errBackendDown = errors.New("backend unavailable")

// hookedBackend wraps a Memory backend and lets a test intercept list calls.
type hookedBackend struct {
	*backend.Memory
	listUsers func(ctx context.Context) ([]models.ProjectUser, error)
	listLogs  func(ctx context.Context, q backend.LogQuery) ([]models.SystemLogEntry, error)
	updateLoc func(ctx context.Context) error
}

func (h *hookedBackend) ListProjectUsers(ctx context.Context) ([]models.ProjectUser, error) {
	if h.listUsers != nil {
		return h.listUsers(ctx)
	}
	return h.Memory.ListProjectUsers(ctx)
}

func (h *hookedBackend) ListSystemLogs(ctx context.Context, q backend.LogQuery) ([]models.SystemLogEntry, error) {
	if h.listLogs != nil {
		return h.listLogs(ctx, q)
	}
	return h.Memory.ListSystemLogs(ctx, q)
}

func (h *hookedBackend) UpdateTrashLocation(ctx context.Context, id uuid.UUID, patch models.LocationPatch) error {
	if h.updateLoc != nil {
		if err := h.updateLoc(ctx); err != nil {
			return err
		}
	}
	return h.Memory.UpdateTrashLocation(ctx, id, patch)
}

// recorderSpy collects audit entries.
type recorderSpy struct {
	mu      sync.Mutex
	entries []models.SystemLogEntry
}

func (r *recorderSpy) Record(_ context.Context, e models.SystemLogEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
}

func (r *recorderSpy) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

// fixedClock returns the same instant on every call.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedUser(t *testing.T, m *backend.Memory, u models.ProjectUser) models.ProjectUser {
	t.Helper()
	require.NoError(t, m.InsertProjectUser(context.Background(), &u))
	return u
}

func seedLocation(t *testing.T, m *backend.Memory, l models.TrashLocation) models.TrashLocation {
	t.Helper()
	require.NoError(t, m.InsertTrashLocation(context.Background(), &l))
	return l
}

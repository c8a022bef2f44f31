package backend

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMemory_InsertAssignsIdentity(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	preset := uuid.New()
	u := &models.ProjectUser{ID: preset, Email: "ivan@example.com", Name: "Иван"}
	require.NoError(t, m.InsertProjectUser(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, preset, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	dup := &models.ProjectUser{Email: "IVAN@example.com", Name: "Другой"}
	assert.ErrorIs(t, m.InsertProjectUser(ctx, dup), ErrDuplicateEmail)
}

func TestMemory_LocationDefaultsAndJoin(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u := &models.ProjectUser{Email: "maria@example.com", Name: "Мария Сидорова"}
	require.NoError(t, m.InsertProjectUser(ctx, u))
	loc := &models.TrashLocation{UserID: &u.ID, Latitude: 1, Longitude: 2}
	require.NoError(t, m.InsertTrashLocation(ctx, loc))
	assert.Equal(t, models.StatusReported, loc.Status)
	assert.Equal(t, models.PriorityMedium, loc.Priority)

	locs, err := m.ListTrashLocations(ctx, LocationQuery{})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "Мария Сидорова", locs[0].UserName())

	users, err := m.ListProjectUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 1, users[0].ReportsCount)

	m.DeleteProjectUser(u.ID)
	locs, err = m.ListTrashLocations(ctx, LocationQuery{})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Nil(t, locs[0].UserID)
	assert.Equal(t, "", locs[0].UserName())
}

func TestMemory_ListReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	img := "a.jpg"
	require.NoError(t, m.InsertTrashLocation(ctx, &models.TrashLocation{ImageURL: &img}))

	locs, err := m.ListTrashLocations(ctx, LocationQuery{})
	require.NoError(t, err)
	*locs[0].ImageURL = "mutated.jpg"
	locs[0].Status = models.StatusCleaned

	again, err := m.ListTrashLocations(ctx, LocationQuery{})
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", *again[0].ImageURL)
	assert.Equal(t, models.StatusReported, again[0].Status)
}

func TestMemory_UpdateLocation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	loc := &models.TrashLocation{}
	require.NoError(t, m.InsertTrashLocation(ctx, loc))

	now := time.Now().UTC()
	require.NoError(t, m.UpdateTrashLocation(ctx, loc.ID, models.LocationPatch{Status: models.StatusCleaned, UpdatedAt: now, CleanedAt: &now}))
	require.NoError(t, m.UpdateTrashLocation(ctx, loc.ID, models.LocationPatch{Status: models.StatusReported, UpdatedAt: now.Add(time.Second)}))

	locs, err := m.ListTrashLocations(ctx, LocationQuery{Status: models.StatusReported})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.NotNil(t, locs[0].CleanedAt)
	assert.True(t, now.Equal(*locs[0].CleanedAt))

	assert.ErrorIs(t, m.UpdateTrashLocation(ctx, uuid.New(), models.LocationPatch{}), ErrNotFound)
}

func TestMemory_SystemLogs(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(WithClock(func() time.Time { return base }))
	ctx := context.Background()

	require.NoError(t, m.InsertSystemLogs(ctx,
		models.SystemLogEntry{Level: models.LevelInfo, Action: "first", CreatedAt: base},
		models.SystemLogEntry{Level: models.LevelError, Action: "second", CreatedAt: base.Add(time.Minute)},
		models.SystemLogEntry{Level: models.LevelInfo, Action: "third", CreatedAt: base.Add(2 * time.Minute)},
		models.SystemLogEntry{Level: models.LevelInfo, Action: "no time"},
	))

	all, err := m.ListSystemLogs(ctx, LogQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "third", all[0].Action)
	assert.Equal(t, datatypes.JSON("{}"), all[0].Details)

	info, err := m.ListSystemLogs(ctx, LogQuery{Level: models.LevelInfo, Limit: 2})
	require.NoError(t, err)
	require.Len(t, info, 2)
	assert.Equal(t, "third", info[0].Action)
	for _, e := range info {
		assert.Equal(t, models.LevelInfo, e.Level)
	}
}

func TestMemory_SortTiesNewestInsertFirst(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(WithClock(func() time.Time { return at }))
	ctx := context.Background()
	require.NoError(t, m.InsertProjectUser(ctx, &models.ProjectUser{Email: "a@example.com"}))
	require.NoError(t, m.InsertProjectUser(ctx, &models.ProjectUser{Email: "b@example.com"}))

	users, err := m.ListProjectUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[0].Email)
}

func TestMemory_SyncReportCounts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	u := &models.ProjectUser{Email: "ivan@example.com"}
	require.NoError(t, m.InsertProjectUser(ctx, u))
	require.NoError(t, m.InsertTrashLocation(ctx, &models.TrashLocation{UserID: &u.ID}))
	require.NoError(t, m.InsertTrashLocation(ctx, &models.TrashLocation{UserID: &u.ID}))

	changed, err := m.SyncReportCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	changed, err = m.SyncReportCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)
}

func TestMemory_CancelledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.ListProjectUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.InsertTrashLocation(ctx, &models.TrashLocation{}), context.Canceled)
	assert.ErrorIs(t, m.Ping(ctx), context.Canceled)
}

func TestMemory_AdminUsers(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.SeedAdminUsers(models.AdminUser{Email: "Ops@Example.com", Name: "Ops", IsActive: true})

	a, err := m.FindAdminUserByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, a.Role)

	inactive := false
	require.NoError(t, m.UpdateAdminUser(ctx, a.ID, models.AdminUserPatch{IsActive: &inactive}))
	a, err = m.FindAdminUserByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.False(t, a.IsActive)

	_, err = m.FindAdminUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedDemo(t *testing.T) {
	m := NewMemory()
	SeedDemo(m, "admin@example.com")
	ctx := context.Background()

	admin, err := m.FindAdminUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsActive)

	users, err := m.ListProjectUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	locs, err := m.ListTrashLocations(ctx, LocationQuery{})
	require.NoError(t, err)
	assert.Len(t, locs, 3)

	logs, err := m.ListSystemLogs(ctx, LogQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, logs)
}

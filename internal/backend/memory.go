package backend

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Memory keeps the four tables in process. It backs the demo mode and the
// package tests, and mirrors the column defaults of the SQL schema.
type Memory struct {
	mu        sync.RWMutex
	now       func() time.Time
	admins    []models.AdminUser
	users     []models.ProjectUser
	locations []models.TrashLocation
	logs      []models.SystemLogEntry
}

type MemoryOption func(*Memory)

// WithClock sets the time source used for default timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SeedAdminUsers inserts admin accounts, which the dashboard itself cannot
// create.
func (m *Memory) SeedAdminUsers(admins ...models.AdminUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range admins {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = m.now()
		}
		if a.Role == "" {
			a.Role = models.RoleViewer
		}
		m.admins = append(m.admins, a)
	}
}

func (m *Memory) ListAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]models.AdminUser(nil), m.admins...)
	sortDesc(out, func(a models.AdminUser) time.Time { return a.CreatedAt })
	return out, nil
}

func (m *Memory) FindAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			found := a
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateAdminUser(ctx context.Context, id uuid.UUID, patch models.AdminUserPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.admins {
		if m.admins[i].ID != id {
			continue
		}
		if patch.Name != nil {
			m.admins[i].Name = *patch.Name
		}
		if patch.Role != nil {
			m.admins[i].Role = *patch.Role
		}
		if patch.IsActive != nil {
			m.admins[i].IsActive = *patch.IsActive
		}
		return nil
	}
	return ErrNotFound
}

func (m *Memory) ListProjectUsers(ctx context.Context) ([]models.ProjectUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := m.reportCounts()
	out := make([]models.ProjectUser, len(m.users))
	for i, u := range m.users {
		u.Phone = clonePtr(u.Phone)
		u.ReportsCount = counts[u.ID]
		out[i] = u
	}
	sortDesc(out, func(u models.ProjectUser) time.Time { return u.CreatedAt })
	return out, nil
}

func (m *Memory) InsertProjectUser(ctx context.Context, user *models.ProjectUser) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(user.Email, uuid.Nil) {
		return ErrDuplicateEmail
	}
	user.ID = uuid.New()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	row := *user
	row.Phone = clonePtr(user.Phone)
	m.users = append(m.users, row)
	return nil
}

func (m *Memory) UpdateProjectUser(ctx context.Context, id uuid.UUID, patch models.ProjectUserPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID != id {
			continue
		}
		if patch.Email != nil && m.emailTaken(*patch.Email, id) {
			return ErrDuplicateEmail
		}
		patch.Apply(&m.users[i])
		return nil
	}
	return ErrNotFound
}

func (m *Memory) ListTrashLocations(ctx context.Context, q LocationQuery) ([]models.TrashLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.TrashLocation, 0, len(m.locations))
	for _, l := range m.locations {
		if q.Status != "" && l.Status != q.Status {
			continue
		}
		l.ImageURL = clonePtr(l.ImageURL)
		l.CleanedAt = clonePtr(l.CleanedAt)
		l.User = nil
		if l.UserID != nil {
			uid := *l.UserID
			l.UserID = &uid
			if u := m.findUser(uid); u != nil {
				l.User = &models.ProjectUser{ID: u.ID, Name: u.Name}
			}
		}
		out = append(out, l)
	}
	sortDesc(out, func(l models.TrashLocation) time.Time { return l.CreatedAt })
	return out, nil
}

func (m *Memory) InsertTrashLocation(ctx context.Context, loc *models.TrashLocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	loc.ApplyDefaults()
	loc.ID = uuid.New()
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = m.now()
	}
	if loc.UpdatedAt.IsZero() {
		loc.UpdatedAt = loc.CreatedAt
	}
	row := *loc
	row.User = nil
	row.UserID = clonePtr(loc.UserID)
	row.ImageURL = clonePtr(loc.ImageURL)
	row.CleanedAt = clonePtr(loc.CleanedAt)
	m.locations = append(m.locations, row)
	return nil
}

func (m *Memory) UpdateTrashLocation(ctx context.Context, id uuid.UUID, patch models.LocationPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.locations {
		if m.locations[i].ID == id {
			patch.Apply(&m.locations[i])
			return nil
		}
	}
	return ErrNotFound
}

// DeleteProjectUser removes a user and detaches their locations, mirroring
// the ON DELETE SET NULL foreign key. The dashboard never calls it; it exists
// so the demo data and tests can model deletions made elsewhere.
func (m *Memory) DeleteProjectUser(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			break
		}
	}
	for i := range m.locations {
		if m.locations[i].UserID != nil && *m.locations[i].UserID == id {
			m.locations[i].UserID = nil
		}
	}
}

func (m *Memory) ListSystemLogs(ctx context.Context, q LogQuery) ([]models.SystemLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.SystemLogEntry, 0, len(m.logs))
	for _, e := range m.logs {
		if q.Level != "" && e.Level != q.Level {
			continue
		}
		out = append(out, e)
	}
	sortDesc(out, func(e models.SystemLogEntry) time.Time { return e.CreatedAt })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *Memory) InsertSystemLogs(ctx context.Context, entries ...models.SystemLogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		e.ID = uuid.New()
		if e.CreatedAt.IsZero() {
			e.CreatedAt = m.now()
		}
		if len(e.Details) == 0 {
			e.Details = datatypes.JSON("{}")
		} else {
			e.Details = append(datatypes.JSON(nil), e.Details...)
		}
		m.logs = append(m.logs, e)
	}
	return nil
}

func (m *Memory) SyncReportCounts(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := m.reportCounts()
	var changed int64
	for i := range m.users {
		if c := counts[m.users[i].ID]; m.users[i].ReportsCount != c {
			m.users[i].ReportsCount = c
			changed++
		}
	}
	return changed, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *Memory) reportCounts() map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, l := range m.locations {
		if l.UserID != nil {
			counts[*l.UserID]++
		}
	}
	return counts
}

func (m *Memory) findUser(id uuid.UUID) *models.ProjectUser {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i]
		}
	}
	return nil
}

func (m *Memory) emailTaken(email string, except uuid.UUID) bool {
	for _, u := range m.users {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// sortDesc orders rows newest first; rows inserted later win ties.
func sortDesc[T any](rows []T, created func(T) time.Time) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return created(rows[i]).After(created(rows[j]))
	})
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

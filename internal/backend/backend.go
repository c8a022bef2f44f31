// Package backend is the data access layer for the hosted relational backend.
// Every view talks to the four tables exclusively through Backend; row-level
// authorization is enforced on the other side of this interface.
package backend

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// LocationQuery narrows a trash location fetch. A zero Status selects all.
type LocationQuery struct {
	Status models.TrashStatus
}

// LogQuery narrows a system log fetch. A zero Level selects all levels;
// Limit <= 0 means no limit.
type LogQuery struct {
	Level models.LogLevel
	Limit int
}

// Backend issues select, insert and update calls against the four tables.
// All list calls order rows by created_at descending. Inserts receive their
// identity from the backend and write it back into the passed row.
type Backend interface {
	ListAdminUsers(ctx context.Context) ([]models.AdminUser, error)
	FindAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	UpdateAdminUser(ctx context.Context, id uuid.UUID, patch models.AdminUserPatch) error

	// ListProjectUsers returns users with ReportsCount derived from the
	// number of locations they own.
	ListProjectUsers(ctx context.Context) ([]models.ProjectUser, error)
	InsertProjectUser(ctx context.Context, user *models.ProjectUser) error
	UpdateProjectUser(ctx context.Context, id uuid.UUID, patch models.ProjectUserPatch) error

	// ListTrashLocations returns locations with their owning user attached.
	ListTrashLocations(ctx context.Context, q LocationQuery) ([]models.TrashLocation, error)
	InsertTrashLocation(ctx context.Context, loc *models.TrashLocation) error
	UpdateTrashLocation(ctx context.Context, id uuid.UUID, patch models.LocationPatch) error

	ListSystemLogs(ctx context.Context, q LogQuery) ([]models.SystemLogEntry, error)
	InsertSystemLogs(ctx context.Context, entries ...models.SystemLogEntry) error

	// SyncReportCounts writes the derived report count back into the
	// project_users.reports_count column and returns the number of rows
	// whose stored value changed.
	SyncReportCounts(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}

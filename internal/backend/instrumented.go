package backend

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
)

// Instrumented records call counts and latency for every Backend call.
type Instrumented struct {
	next Backend
}

func NewInstrumented(next Backend) *Instrumented {
	return &Instrumented{next: next}
}

func track(op string) func(error) {
	start := time.Now()
	return func(err error) {
		metrics.BackendLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.BackendCalls.WithLabelValues(op, metrics.Outcome(err)).Inc()
	}
}

func (b *Instrumented) ListAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	done := track("list_admin_users")
	out, err := b.next.ListAdminUsers(ctx)
	done(err)
	return out, err
}

func (b *Instrumented) FindAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	done := track("find_admin_user")
	out, err := b.next.FindAdminUserByEmail(ctx, email)
	done(err)
	return out, err
}

func (b *Instrumented) UpdateAdminUser(ctx context.Context, id uuid.UUID, patch models.AdminUserPatch) error {
	done := track("update_admin_user")
	err := b.next.UpdateAdminUser(ctx, id, patch)
	done(err)
	return err
}

func (b *Instrumented) ListProjectUsers(ctx context.Context) ([]models.ProjectUser, error) {
	done := track("list_project_users")
	out, err := b.next.ListProjectUsers(ctx)
	done(err)
	return out, err
}

func (b *Instrumented) InsertProjectUser(ctx context.Context, user *models.ProjectUser) error {
	done := track("insert_project_user")
	err := b.next.InsertProjectUser(ctx, user)
	done(err)
	return err
}

func (b *Instrumented) UpdateProjectUser(ctx context.Context, id uuid.UUID, patch models.ProjectUserPatch) error {
	done := track("update_project_user")
	err := b.next.UpdateProjectUser(ctx, id, patch)
	done(err)
	return err
}

func (b *Instrumented) ListTrashLocations(ctx context.Context, q LocationQuery) ([]models.TrashLocation, error) {
	done := track("list_trash_locations")
	out, err := b.next.ListTrashLocations(ctx, q)
	done(err)
	return out, err
}

func (b *Instrumented) InsertTrashLocation(ctx context.Context, loc *models.TrashLocation) error {
	done := track("insert_trash_location")
	err := b.next.InsertTrashLocation(ctx, loc)
	done(err)
	return err
}

func (b *Instrumented) UpdateTrashLocation(ctx context.Context, id uuid.UUID, patch models.LocationPatch) error {
	done := track("update_trash_location")
	err := b.next.UpdateTrashLocation(ctx, id, patch)
	done(err)
	return err
}

func (b *Instrumented) ListSystemLogs(ctx context.Context, q LogQuery) ([]models.SystemLogEntry, error) {
	done := track("list_system_logs")
	out, err := b.next.ListSystemLogs(ctx, q)
	done(err)
	return out, err
}

func (b *Instrumented) InsertSystemLogs(ctx context.Context, entries ...models.SystemLogEntry) error {
	done := track("insert_system_logs")
	err := b.next.InsertSystemLogs(ctx, entries...)
	done(err)
	return err
}

func (b *Instrumented) SyncReportCounts(ctx context.Context) (int64, error) {
	done := track("sync_report_counts")
	n, err := b.next.SyncReportCounts(ctx)
	done(err)
	return n, err
}

func (b *Instrumented) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}

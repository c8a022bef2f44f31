package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
)

type actorKey struct{}

// Actor identifies who issued a mutation and from where.
type Actor struct {
	AdminID uuid.UUID
	IP      string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// AuditService appends audit entries to system_logs. A failed append is
// logged and otherwise ignored.
type AuditService struct {
	backend backend.Backend
	now     func() time.Time
}

func NewAuditService(b backend.Backend) *AuditService {
	return &AuditService{backend: b, now: time.Now}
}

func (s *AuditService) Record(ctx context.Context, entry models.SystemLogEntry) {
	if actor, ok := ActorFrom(ctx); ok {
		if actor.AdminID != uuid.Nil {
			id := actor.AdminID
			entry.UserID = &id
		}
		if actor.IP != "" {
			ip := actor.IP
			entry.IPAddress = &ip
		}
	}
	if entry.Level == "" {
		entry.Level = models.LevelInfo
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	if err := s.backend.InsertSystemLogs(ctx, entry); err != nil {
		metrics.AuditFailures.Inc()
		slog.Warn("failed to append audit entry", "audit_action", entry.Action, "error", err)
	}
}

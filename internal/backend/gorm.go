package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const projectUserColumns = "project_users.id, project_users.email, project_users.name, " +
	"project_users.phone, project_users.is_active, project_users.created_at, project_users.updated_at, " +
	"(SELECT COUNT(*) FROM trash_locations tl WHERE tl.user_id = project_users.id) AS reports_count"

// Gorm talks to the backend's PostgreSQL database through GORM.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) ListAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	if err := g.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}
	return admins, nil
}

func (g *Gorm) FindAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := g.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}
	return &admin, nil
}

func (g *Gorm) UpdateAdminUser(ctx context.Context, id uuid.UUID, patch models.AdminUserPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if len(updates) == 0 {
		return nil
	}
	return g.update(ctx, &models.AdminUser{}, id, updates)
}

func (g *Gorm) ListProjectUsers(ctx context.Context) ([]models.ProjectUser, error) {
	var users []models.ProjectUser
	err := g.db.WithContext(ctx).
		Model(&models.ProjectUser{}).
		Select(projectUserColumns).
		Order("project_users.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project users: %w", err)
	}
	return users, nil
}

// InsertProjectUser lets the database assign the id and writes it back.
func (g *Gorm) InsertProjectUser(ctx context.Context, user *models.ProjectUser) error {
	user.ID = uuid.Nil
	if err := g.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create project user: %w", err)
	}
	return nil
}

func (g *Gorm) UpdateProjectUser(ctx context.Context, id uuid.UUID, patch models.ProjectUserPatch) error {
	updates := map[string]interface{}{"updated_at": patch.UpdatedAt}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Phone != nil {
		if *patch.Phone == "" {
			updates["phone"] = nil
		} else {
			updates["phone"] = *patch.Phone
		}
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	return g.update(ctx, &models.ProjectUser{}, id, updates)
}

func (g *Gorm) ListTrashLocations(ctx context.Context, q LocationQuery) ([]models.TrashLocation, error) {
	var locs []models.TrashLocation
	query := g.db.WithContext(ctx).Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if err := query.Order("created_at DESC").Find(&locs).Error; err != nil {
		return nil, fmt.Errorf("failed to list trash locations: %w", err)
	}
	return locs, nil
}

func (g *Gorm) InsertTrashLocation(ctx context.Context, loc *models.TrashLocation) error {
	loc.ID = uuid.Nil
	if err := g.db.WithContext(ctx).Omit("User").Create(loc).Error; err != nil {
		return fmt.Errorf("failed to create trash location: %w", err)
	}
	return nil
}

func (g *Gorm) UpdateTrashLocation(ctx context.Context, id uuid.UUID, patch models.LocationPatch) error {
	updates := map[string]interface{}{
		"status":     patch.Status,
		"updated_at": patch.UpdatedAt,
	}
	if patch.CleanedAt != nil {
		updates["cleaned_at"] = *patch.CleanedAt
	}
	return g.update(ctx, &models.TrashLocation{}, id, updates)
}

func (g *Gorm) ListSystemLogs(ctx context.Context, q LogQuery) ([]models.SystemLogEntry, error) {
	var entries []models.SystemLogEntry
	query := g.db.WithContext(ctx).Model(&models.SystemLogEntry{})
	if q.Level != "" {
		query = query.Where("level = ?", q.Level)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list system logs: %w", err)
	}
	return entries, nil
}

func (g *Gorm) InsertSystemLogs(ctx context.Context, entries ...models.SystemLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := g.db.WithContext(ctx).CreateInBatches(entries, 50).Error; err != nil {
		return fmt.Errorf("failed to insert system logs: %w", err)
	}
	return nil
}

func (g *Gorm) SyncReportCounts(ctx context.Context) (int64, error) {
	result := g.db.WithContext(ctx).Exec(`
		UPDATE project_users pu
		SET reports_count = c.cnt
		FROM (
			SELECT u.id, COUNT(t.id) AS cnt
			FROM project_users u
			LEFT JOIN trash_locations t ON t.user_id = u.id
			GROUP BY u.id
		) c
		WHERE c.id = pu.id AND pu.reports_count <> c.cnt`)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sync report counts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *Gorm) update(ctx context.Context, model interface{}, id uuid.UUID, updates map[string]interface{}) error {
	result := g.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

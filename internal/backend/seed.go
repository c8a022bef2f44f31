package backend

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"gorm.io/datatypes"
)

// SeedDemo fills an empty in-memory backend with a small data set for demo
// mode. adminEmail becomes an active admin so a session token carrying that
// email can sign in.
func SeedDemo(m *Memory, adminEmail string) {
	ctx := context.Background()
	now := time.Now().UTC()

	m.SeedAdminUsers(models.AdminUser{
		Email:     adminEmail,
		Name:      "Demo Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now.Add(-72 * time.Hour),
	})

	phone := "+7 900 123-45-67"
	users := []*models.ProjectUser{
		{Email: "ivan.petrov@example.com", Name: "Иван Петров", Phone: &phone, IsActive: true, CreatedAt: now.Add(-48 * time.Hour)},
		{Email: "maria.sidorova@example.com", Name: "Мария Сидорова", IsActive: true, CreatedAt: now.Add(-36 * time.Hour)},
		{Email: "alexey.kozlov@example.com", Name: "Алексей Козлов", IsActive: false, CreatedAt: now.Add(-24 * time.Hour)},
	}
	for _, u := range users {
		if err := m.InsertProjectUser(ctx, u); err != nil {
			slog.Warn("demo seed: user skipped", "email", u.Email, "error", err)
		}
	}

	locations := []*models.TrashLocation{
		{UserID: &users[0].ID, Latitude: 55.7558, Longitude: 37.6173, Description: "Пакеты у входа в парк", TrashType: models.TrashPlastic, Priority: models.PriorityHigh, CreatedAt: now.Add(-20 * time.Hour)},
		{UserID: &users[1].ID, Latitude: 55.7601, Longitude: 37.6055, Description: "Битые бутылки на детской площадке", TrashType: models.TrashGlass, Status: models.StatusInProgress, CreatedAt: now.Add(-12 * time.Hour)},
		{UserID: &users[0].ID, Latitude: 55.7489, Longitude: 37.6321, Description: "Строительный мусор во дворе", TrashType: models.TrashMixed, Priority: models.PriorityLow, CreatedAt: now.Add(-6 * time.Hour)},
	}
	for _, l := range locations {
		if err := m.InsertTrashLocation(ctx, l); err != nil {
			slog.Warn("demo seed: location skipped", "error", err)
		}
	}

	entity := "trash_location"
	logs := []models.SystemLogEntry{
		{Level: models.LevelInfo, Action: "trash_location_created", EntityType: &entity, Details: datatypes.JSON(`{"source":"demo"}`), CreatedAt: now.Add(-20 * time.Hour)},
		{Level: models.LevelWarning, Action: "image_link_failed", EntityType: &entity, Details: datatypes.JSON(`{"reason":"bucket not configured"}`), CreatedAt: now.Add(-8 * time.Hour)},
		{Level: models.LevelError, Action: "counter_sync_failed", Details: datatypes.JSON(`{"error":"timeout"}`), CreatedAt: now.Add(-2 * time.Hour)},
	}
	if err := m.InsertSystemLogs(ctx, logs...); err != nil {
		slog.Warn("demo seed: logs skipped", "error", err)
	}

	slog.Info("demo data seeded", "users", len(users), "locations", len(locations), "logs", len(logs))
}

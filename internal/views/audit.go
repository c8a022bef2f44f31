package views

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"gorm.io/datatypes"
)

// Audit action tags written to system_logs.
const (
	ActionUserCreated          = "project_user_created"
	ActionUserUpdated          = "project_user_updated"
	ActionUserActivated        = "project_user_activated"
	ActionUserDeactivated      = "project_user_deactivated"
	ActionAdminUpdated         = "admin_user_updated"
	ActionLocationCreated      = "trash_location_created"
	ActionLocationStatusChange = "trash_location_status_changed"
)

const (
	entityProjectUser   = "project_user"
	entityAdminUser     = "admin_user"
	entityTrashLocation = "trash_location"
)

func auditEntry(action, entityType, entityID string, details map[string]interface{}) models.SystemLogEntry {
	entry := models.SystemLogEntry{
		Level:      models.LevelInfo,
		Action:     action,
		EntityType: strPtr(entityType),
		EntityID:   strPtr(entityID),
		Details:    datatypes.JSON("{}"),
	}
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(b)
		}
	}
	return entry
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLogEntry is an immutable audit/diagnostic record. Rows are only ever
// inserted.
type SystemLogEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Level      LogLevel       `gorm:"size:10;not null;index;check:chk_system_logs_level,level IN ('info','warning','error','critical')" json:"level"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	UserID     *uuid.UUID     `gorm:"type:uuid" json:"user_id,omitempty"`
	EntityType *string        `gorm:"size:50" json:"entity_type,omitempty"`
	EntityID   *string        `gorm:"size:64" json:"entity_id,omitempty"`
	Details    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"details"`
	IPAddress  *string        `gorm:"size:64" json:"ip_address,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (SystemLogEntry) TableName() string {
	return "system_logs"
}

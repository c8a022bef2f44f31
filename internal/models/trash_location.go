package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrashLocation is a geotagged trash report submitted from the mobile app.
type TrashLocation struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      *uuid.UUID   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User        *ProjectUser `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Latitude    float64      `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude   float64      `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Description string       `gorm:"type:text" json:"description"`
	TrashType   TrashType    `gorm:"size:20;not null;default:'mixed'" json:"trash_type"`
	Status      TrashStatus  `gorm:"size:20;not null;default:'reported';index" json:"status"`
	Priority    Priority     `gorm:"size:10;not null;default:'medium'" json:"priority"`
	ImageURL    *string      `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CleanedAt   *time.Time   `json:"cleaned_at,omitempty"`
}

func (TrashLocation) TableName() string {
	return "trash_locations"
}

// ApplyDefaults fills the enum fields a fresh report may leave unset.
func (l *TrashLocation) ApplyDefaults() {
	if l.Status == "" {
		l.Status = StatusReported
	}
	if l.Priority == "" {
		l.Priority = PriorityMedium
	}
	if l.TrashType == "" {
		l.TrashType = TrashMixed
	}
}

// BeforeCreate keeps the Go-side defaults in line with the column defaults.
func (l *TrashLocation) BeforeCreate(tx *gorm.DB) error {
	l.ApplyDefaults()
	return nil
}

// UserName returns the reporting user's display name, if the row was loaded
// together with its owner.
func (l *TrashLocation) UserName() string {
	if l.User == nil {
		return ""
	}
	return l.User.Name
}

// LocationPatch is the complete set of columns a status transition writes.
type LocationPatch struct {
	Status    TrashStatus
	UpdatedAt time.Time
	CleanedAt *time.Time
}

// Apply copies the patch onto l. A nil CleanedAt leaves the column alone.
func (p LocationPatch) Apply(l *TrashLocation) {
	l.Status = p.Status
	l.UpdatedAt = p.UpdatedAt
	if p.CleanedAt != nil {
		t := *p.CleanedAt
		l.CleanedAt = &t
	}
}

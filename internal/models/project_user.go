package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectUser is an end user of the reporting app.
//
// ReportsCount is denormalized: backends derive it from the number of
// trash_locations rows owned by the user when reading.
type ProjectUser struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Phone        *string   `gorm:"size:50" json:"phone,omitempty"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	ReportsCount int       `gorm:"not null;default:0" json:"reports_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ProjectUser) TableName() string {
	return "project_users"
}

// ProjectUserPatch replaces the submitted subset of editable fields.
// UpdatedAt is always written. A Phone pointing at "" clears the phone.
type ProjectUserPatch struct {
	Email     *string
	Name      *string
	Phone     *string
	IsActive  *bool
	UpdatedAt time.Time
}

// Apply copies the patch onto u.
func (p ProjectUserPatch) Apply(u *ProjectUser) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		if *p.Phone == "" {
			u.Phone = nil
		} else {
			phone := *p.Phone
			u.Phone = &phone
		}
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	u.UpdatedAt = p.UpdatedAt
}

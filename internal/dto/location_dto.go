package dto

import (
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/mapping"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/google/uuid"
)

type StatusChangeRequest struct {
	Status models.TrashStatus `json:"status" validate:"required,oneof=reported in_progress cleaned rejected"`
}

type CreateLocationRequest struct {
	UserID      *uuid.UUID       `json:"user_id"`
	Latitude    *float64         `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   *float64         `json:"longitude" validate:"required,gte=-180,lte=180"`
	Description string           `json:"description" validate:"max=2000"`
	TrashType   models.TrashType `json:"trash_type" validate:"omitempty,oneof=plastic glass paper metal organic hazardous mixed"`
	Priority    models.Priority  `json:"priority" validate:"omitempty,oneof=low medium high"`
	ImageURL    string           `json:"image_url"`
}

type LocationRow struct {
	models.TrashLocation
	UserName string `json:"user_name,omitempty"`
}

type MapResponse struct {
	Map       mapping.Map   `json:"map"`
	Locations []LocationRow `json:"locations"`
	Status    string        `json:"status_filter"`
	Total     int           `json:"total"`
}

type DetailResponse struct {
	*views.Detail
	ImageLink string `json:"image_link,omitempty"`
}

type LocationMutationResponse struct {
	Location *models.TrashLocation `json:"location,omitempty"`
	Map      MapResponse           `json:"list"`
}

func NewLocationRows(locs []models.TrashLocation) []LocationRow {
	rows := make([]LocationRow, len(locs))
	for i := range locs {
		rows[i] = LocationRow{TrashLocation: locs[i], UserName: locs[i].UserName()}
	}
	return rows
}

package dto

import "github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"

type LogsResponse struct {
	Logs   []models.SystemLogEntry `json:"logs"`
	Total  int                     `json:"total"`
	Level  string                  `json:"level"`
	Filter string                  `json:"filter"`
}

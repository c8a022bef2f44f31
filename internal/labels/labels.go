// Package labels holds the display strings and marker styles keyed by the
// closed enum sets. The tables are plain data so a deployment can swap them
// out without touching view logic.
package labels

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
)

// Set is a full collection of lookup tables.
type Set struct {
	TrashTypes    map[models.TrashType]string   `json:"trash_types"`
	Statuses      map[models.TrashStatus]string `json:"statuses"`
	Priorities    map[models.Priority]string    `json:"priorities"`
	Roles         map[models.Role]string        `json:"roles"`
	LogLevels     map[models.LogLevel]string    `json:"log_levels"`
	StatusColors  map[models.TrashStatus]string `json:"status_colors"`
	StatusPresets map[models.TrashStatus]string `json:"status_presets"`
}

// Default returns the Russian tables the dashboard ships with.
func Default() *Set {
	return &Set{
		TrashTypes: map[models.TrashType]string{
			models.TrashPlastic:   "Пластик",
			models.TrashGlass:     "Стекло",
			models.TrashPaper:     "Бумага",
			models.TrashMetal:     "Металл",
			models.TrashOrganic:   "Органические отходы",
			models.TrashHazardous: "Опасные отходы",
			models.TrashMixed:     "Смешанный мусор",
		},
		Statuses: map[models.TrashStatus]string{
			models.StatusReported:   "Новая заявка",
			models.StatusInProgress: "В работе",
			models.StatusCleaned:    "Убрано",
			models.StatusRejected:   "Отклонено",
		},
		Priorities: map[models.Priority]string{
			models.PriorityLow:    "Низкий",
			models.PriorityMedium: "Средний",
			models.PriorityHigh:   "Высокий",
		},
		Roles: map[models.Role]string{
			models.RoleAdmin:     "Администратор",
			models.RoleModerator: "Модератор",
			models.RoleViewer:    "Наблюдатель",
		},
		LogLevels: map[models.LogLevel]string{
			models.LevelInfo:     "Информация",
			models.LevelWarning:  "Предупреждение",
			models.LevelError:    "Ошибка",
			models.LevelCritical: "Критическая ошибка",
		},
		StatusColors: map[models.TrashStatus]string{
			models.StatusReported:   "red",
			models.StatusInProgress: "blue",
			models.StatusCleaned:    "green",
			models.StatusRejected:   "gray",
		},
		StatusPresets: map[models.TrashStatus]string{
			models.StatusReported:   "islands#redDotIcon",
			models.StatusInProgress: "islands#blueDotIcon",
			models.StatusCleaned:    "islands#greenDotIcon",
			models.StatusRejected:   "islands#grayDotIcon",
		},
	}
}

// LoadFromFile reads a JSON label file and lays it over the defaults, so a
// file may override only the entries it cares about.
func LoadFromFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var override Set
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse labels file: %w", err)
	}

	set := Default()
	merge(set.TrashTypes, override.TrashTypes)
	merge(set.Statuses, override.Statuses)
	merge(set.Priorities, override.Priorities)
	merge(set.Roles, override.Roles)
	merge(set.LogLevels, override.LogLevels)
	merge(set.StatusColors, override.StatusColors)
	merge(set.StatusPresets, override.StatusPresets)
	return set, nil
}

func merge[K ~string](dst, src map[K]string) {
	for k, v := range src {
		if v != "" {
			dst[k] = v
		}
	}
}

// lookup falls back to the raw token when the table has no entry.
func lookup[K ~string](table map[K]string, key K) string {
	if v, ok := table[key]; ok && v != "" {
		return v
	}
	return string(key)
}

func (s *Set) TrashType(t models.TrashType) string      { return lookup(s.TrashTypes, t) }
func (s *Set) Status(st models.TrashStatus) string      { return lookup(s.Statuses, st) }
func (s *Set) Priority(p models.Priority) string        { return lookup(s.Priorities, p) }
func (s *Set) Role(r models.Role) string                { return lookup(s.Roles, r) }
func (s *Set) LogLevel(l models.LogLevel) string        { return lookup(s.LogLevels, l) }
func (s *Set) StatusColor(st models.TrashStatus) string { return lookup(s.StatusColors, st) }
func (s *Set) StatusPreset(st models.TrashStatus) string {
	return lookup(s.StatusPresets, st)
}

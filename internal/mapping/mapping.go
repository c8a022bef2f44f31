// Package mapping turns trash locations into the marker descriptors consumed
// by the map widget.
package mapping

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/labels"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
)

// Point is a [latitude, longitude] pair, the order the widget expects.
type Point [2]float64

type Marker struct {
	ID          uuid.UUID          `json:"id"`
	Coordinates Point              `json:"coordinates"`
	Status      models.TrashStatus `json:"status"`
	Preset      string             `json:"preset"`
	Color       string             `json:"color"`
	Hint        string             `json:"hint"`
	Balloon     Balloon            `json:"balloon"`
}

// Balloon is the hover summary shown next to a marker.
type Balloon struct {
	Description string `json:"description"`
	TrashType   string `json:"trash_type"`
	Status      string `json:"status"`
}

type Map struct {
	Center  Point    `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// Viewport is where the map opens.
type Viewport struct {
	Center Point
	Zoom   int
}

// Build places one marker per location, keeping the input order.
func Build(view Viewport, locs []models.TrashLocation, set *labels.Set) Map {
	m := Map{
		Center:  view.Center,
		Zoom:    view.Zoom,
		Markers: make([]Marker, 0, len(locs)),
	}
	for i := range locs {
		m.Markers = append(m.Markers, NewMarker(&locs[i], set))
	}
	return m
}

func NewMarker(loc *models.TrashLocation, set *labels.Set) Marker {
	balloon := Balloon{
		Description: loc.Description,
		TrashType:   set.TrashType(loc.TrashType),
		Status:      set.Status(loc.Status),
	}
	return Marker{
		ID:          loc.ID,
		Coordinates: Point{loc.Latitude, loc.Longitude},
		Status:      loc.Status,
		Preset:      set.StatusPreset(loc.Status),
		Color:       set.StatusColor(loc.Status),
		Hint:        hint(balloon),
		Balloon:     balloon,
	}
}

func hint(b Balloon) string {
	parts := make([]string, 0, 3)
	if d := strings.TrimSpace(b.Description); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, b.TrashType, b.Status)
	return strings.Join(parts, " · ")
}

// Resolve finds the location a marker click refers to.
func Resolve(locs []models.TrashLocation, id uuid.UUID) (*models.TrashLocation, bool) {
	for i := range locs {
		if locs[i].ID == id {
			return &locs[i], true
		}
	}
	return nil, false
}

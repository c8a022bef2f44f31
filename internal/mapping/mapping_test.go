package mapping

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/labels"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	locs := []models.TrashLocation{
		{ID: uuid.New(), Latitude: 55.1, Longitude: 37.2, Description: "Пакеты у входа", TrashType: models.TrashPlastic, Status: models.StatusReported},
		{ID: uuid.New(), Latitude: 55.3, Longitude: 37.4, TrashType: models.TrashGlass, Status: models.StatusCleaned},
	}
	view := Viewport{Center: Point{55.75, 37.61}, Zoom: 11}

	m := Build(view, locs, labels.Default())
	assert.Equal(t, view.Center, m.Center)
	assert.Equal(t, 11, m.Zoom)
	require.Len(t, m.Markers, 2)

	first := m.Markers[0]
	assert.Equal(t, locs[0].ID, first.ID)
	assert.Equal(t, Point{55.1, 37.2}, first.Coordinates)
	assert.Equal(t, "red", first.Color)
	assert.Equal(t, "islands#redDotIcon", first.Preset)
	assert.Equal(t, "Пакеты у входа · Пластик · Новая заявка", first.Hint)
	assert.Equal(t, Balloon{Description: "Пакеты у входа", TrashType: "Пластик", Status: "Новая заявка"}, first.Balloon)

	second := m.Markers[1]
	assert.Equal(t, "green", second.Color)
	assert.Equal(t, "Стекло · Убрано", second.Hint)
}

func TestBuildEmpty(t *testing.T) {
	m := Build(Viewport{}, nil, labels.Default())
	assert.NotNil(t, m.Markers)
	assert.Empty(t, m.Markers)
}

func TestMarkerWithUnknownValues(t *testing.T) {
	loc := models.TrashLocation{ID: uuid.New(), TrashType: "rubble", Status: "archived"}
	mk := NewMarker(&loc, labels.Default())
	assert.Equal(t, "archived", mk.Color)
	assert.Equal(t, "rubble · archived", mk.Hint)
}

func TestResolve(t *testing.T) {
	id := uuid.New()
	locs := []models.TrashLocation{{ID: uuid.New()}, {ID: id, Description: "target"}}

	got, ok := Resolve(locs, id)
	require.True(t, ok)
	assert.Equal(t, "target", got.Description)

	_, ok = Resolve(locs, uuid.New())
	assert.False(t, ok)
}

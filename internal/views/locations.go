package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/labels"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/mapping"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/workflow"
	"github.com/google/uuid"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrInvalidTrashType = errors.New("invalid trash type")
	ErrInvalidPriority  = errors.New("invalid priority")
)

// Action is a status change offered in the detail panel.
type Action struct {
	Status models.TrashStatus `json:"status"`
	Label  string             `json:"label"`
	Color  string             `json:"color"`
}

// Detail is the content of the detail panel for the selected location.
type Detail struct {
	Location    models.TrashLocation `json:"location"`
	UserName    string               `json:"user_name,omitempty"`
	TrashType   string               `json:"trash_type_label"`
	Status      string               `json:"status_label"`
	Priority    string               `json:"priority_label"`
	StatusColor string               `json:"status_color"`
	Actions     []Action             `json:"actions"`
}

// NewLocation is an operator-entered report.
type NewLocation struct {
	UserID      *uuid.UUID
	Latitude    float64
	Longitude   float64
	Description string
	TrashType   models.TrashType
	Priority    models.Priority
	ImageURL    string
}

type MapConfig struct {
	Viewport mapping.Viewport
	Labels   *labels.Set
	Policy   workflow.Policy
}

// LocationsView renders trash locations as map markers and drives the
// selected location through its status workflow.
type LocationsView struct {
	backend backend.Backend
	opts    options
	cfg     MapConfig
	list    *collection[models.TrashLocation]

	mu       sync.RWMutex
	status   models.TrashStatus
	selected *uuid.UUID
}

func NewLocationsView(b backend.Backend, cfg MapConfig, opts ...Option) *LocationsView {
	if cfg.Labels == nil {
		cfg.Labels = labels.Default()
	}
	if cfg.Policy == "" {
		cfg.Policy = workflow.PolicyOpen
	}
	return &LocationsView{
		backend: b,
		opts:    buildOptions(opts),
		cfg:     cfg,
		list:    newCollection[models.TrashLocation](nil),
	}
}

// SetStatusFilter selects the exact status the next Load asks for. An empty
// status clears the filter.
func (v *LocationsView) SetStatusFilter(status models.TrashStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("%w: %q", workflow.ErrInvalidStatus, status)
	}
	v.mu.Lock()
	v.status = status
	v.mu.Unlock()
	return nil
}

func (v *LocationsView) StatusFilter() models.TrashStatus {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

func (v *LocationsView) Load(ctx context.Context) error {
	status := v.StatusFilter()
	gen := v.list.begin()
	locs, err := v.backend.ListTrashLocations(ctx, backend.LocationQuery{Status: status})
	if err != nil {
		v.opts.logger.Error("failed to load trash locations", "status", string(status), "error", err)
		locs = nil
	}
	v.list.finish(ctx, gen, locs)
	return err
}

func (v *LocationsView) Loading() bool                     { return v.list.isLoading() }
func (v *LocationsView) Locations() []models.TrashLocation { return v.list.all() }

// Map returns the marker set for the loaded locations.
func (v *LocationsView) Map() mapping.Map {
	return mapping.Build(v.cfg.Viewport, v.list.all(), v.cfg.Labels)
}

// Select handles a marker click: it opens the detail panel for the loaded
// location with the given id.
func (v *LocationsView) Select(id uuid.UUID) (*Detail, error) {
	loc, ok := mapping.Resolve(v.list.all(), id)
	if !ok {
		return nil, ErrNotLoaded
	}
	v.mu.Lock()
	v.selected = &id
	v.mu.Unlock()
	return v.detail(*loc), nil
}

// Selected returns the open detail panel, or nil.
func (v *LocationsView) Selected() *Detail {
	v.mu.RLock()
	id := v.selected
	v.mu.RUnlock()
	if id == nil {
		return nil
	}
	loc, ok := mapping.Resolve(v.list.all(), *id)
	if !ok {
		return nil
	}
	return v.detail(*loc)
}

func (v *LocationsView) ClearSelection() {
	v.mu.Lock()
	v.selected = nil
	v.mu.Unlock()
}

func (v *LocationsView) detail(loc models.TrashLocation) *Detail {
	set := v.cfg.Labels
	targets := v.cfg.Policy.Targets(loc.Status)
	actions := make([]Action, 0, len(targets))
	for _, s := range targets {
		actions = append(actions, Action{Status: s, Label: set.Status(s), Color: set.StatusColor(s)})
	}
	return &Detail{
		Location:    loc,
		UserName:    loc.UserName(),
		TrashType:   set.TrashType(loc.TrashType),
		Status:      set.Status(loc.Status),
		Priority:    set.Priority(loc.Priority),
		StatusColor: set.StatusColor(loc.Status),
		Actions:     actions,
	}
}

// Transition moves the selected location to target. On success the list is
// re-fetched and the selection is cleared; on failure both are left as is.
func (v *LocationsView) Transition(ctx context.Context, target models.TrashStatus) error {
	v.mu.RLock()
	id := v.selected
	v.mu.RUnlock()
	if id == nil {
		return ErrNoSelection
	}
	loc, ok := mapping.Resolve(v.list.all(), *id)
	if !ok {
		return ErrNotLoaded
	}

	patch, err := v.cfg.Policy.Plan(loc.Status, target, v.opts.stamp(loc.UpdatedAt))
	if err != nil {
		return err
	}
	if err := v.backend.UpdateTrashLocation(ctx, loc.ID, patch); err != nil {
		v.opts.logger.Error("failed to change location status",
			"location_id", loc.ID.String(), "from", string(loc.Status), "to", string(target), "error", err)
		return err
	}

	metrics.StatusTransitions.WithLabelValues(string(loc.Status), string(target)).Inc()
	v.opts.recorder.Record(ctx, auditEntry(ActionLocationStatusChange, entityTrashLocation, loc.ID.String(), map[string]interface{}{
		"from": string(loc.Status),
		"to":   string(target),
	}))

	_ = v.Load(ctx)
	v.ClearSelection()
	return nil
}

// Create inserts an operator-entered report and re-fetches. Status and
// priority fall back to reported and medium.
func (v *LocationsView) Create(ctx context.Context, in NewLocation) (*models.TrashLocation, error) {
	if in.Latitude < -90 || in.Latitude > 90 {
		return nil, ErrInvalidLatitude
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return nil, ErrInvalidLongitude
	}
	if in.TrashType != "" && !in.TrashType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTrashType, in.TrashType)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, in.Priority)
	}

	now := v.opts.now().UTC()
	loc := &models.TrashLocation{
		UserID:      in.UserID,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: strings.TrimSpace(in.Description),
		TrashType:   in.TrashType,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if img := strings.TrimSpace(in.ImageURL); img != "" {
		loc.ImageURL = &img
	}

	if err := v.backend.InsertTrashLocation(ctx, loc); err != nil {
		v.opts.logger.Error("failed to create trash location", "error", err)
		return nil, err
	}
	v.opts.recorder.Record(ctx, auditEntry(ActionLocationCreated, entityTrashLocation, loc.ID.String(), map[string]interface{}{
		"latitude":   loc.Latitude,
		"longitude":  loc.Longitude,
		"trash_type": string(loc.TrashType),
		"priority":   string(loc.Priority),
	}))

	_ = v.Load(ctx)
	return loc, nil
}

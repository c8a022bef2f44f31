// Package workflow implements the status lifecycle of trash reports.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrSameStatus    = errors.New("location already has this status")
	ErrNotAllowed    = errors.New("status transition not allowed")
)

// Policy decides which status changes an operator may make.
type Policy string

const (
	// PolicyOpen allows a change from any status to any other status.
	PolicyOpen Policy = "open"
	// PolicyForward only allows reported -> in_progress -> cleaned, with
	// rejected reachable from reported and in_progress. This restricts the
	// dashboard's historical behavior and must be opted into.
	PolicyForward Policy = "forward"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyOpen:
		return PolicyOpen, nil
	case PolicyForward:
		return PolicyForward, nil
	}
	return "", fmt.Errorf("unknown status workflow %q", s)
}

var forward = map[models.TrashStatus][]models.TrashStatus{
	models.StatusReported:   {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress: {models.StatusCleaned, models.StatusRejected},
}

// Targets returns the statuses offered as actions for a report currently in
// status from, in the canonical enum order.
func (p Policy) Targets(from models.TrashStatus) []models.TrashStatus {
	if p == PolicyForward {
		return append([]models.TrashStatus(nil), forward[from]...)
	}
	out := make([]models.TrashStatus, 0, len(models.TrashStatuses)-1)
	for _, s := range models.TrashStatuses {
		if s != from {
			out = append(out, s)
		}
	}
	return out
}

func (p Policy) CanTransition(from, to models.TrashStatus) bool {
	for _, s := range p.Targets(from) {
		if s == to {
			return true
		}
	}
	return false
}

// Plan validates a transition and returns the exact columns it writes:
// status and updated_at, plus cleaned_at only when the target is cleaned.
// cleaned_at is never cleared.
func (p Policy) Plan(from, to models.TrashStatus, now time.Time) (models.LocationPatch, error) {
	if !to.Valid() {
		return models.LocationPatch{}, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if from == to {
		return models.LocationPatch{}, ErrSameStatus
	}
	if !p.CanTransition(from, to) {
		return models.LocationPatch{}, fmt.Errorf("%w: %s -> %s", ErrNotAllowed, from, to)
	}

	patch := models.LocationPatch{Status: to, UpdatedAt: now}
	if to == models.StatusCleaned {
		cleaned := now
		patch.CleanedAt = &cleaned
	}
	return patch, nil
}

// Package views holds the per-screen state of the dashboard: the fetched
// rows, the active filters and the selection, plus the load and mutate
// operations that move that state forward. Views never share state.
package views

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
)

var (
	ErrNotLoaded     = errors.New("row is not in the loaded list")
	ErrEmailRequired = errors.New("email is required")
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrNoSelection   = errors.New("no location selected")
)

// Recorder appends audit entries for successful mutations. Implementations
// must not fail the mutation; they log their own errors.
type Recorder interface {
	Record(ctx context.Context, entry models.SystemLogEntry)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, models.SystemLogEntry) {}

type options struct {
	logger   *slog.Logger
	now      func() time.Time
	recorder Recorder
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.Default(),
		now:      time.Now,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stamp returns the current time, nudged past prev so that successive
// updates of one row always carry increasing timestamps. Microseconds match
// the precision of the timestamp columns.
func (o options) stamp(prev time.Time) time.Time {
	now := o.now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func strPtr(s string) *string {
	return &s
}

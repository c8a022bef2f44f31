package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second

	// LevelCritical is the slog level stored as "critical".
	LevelCritical = slog.LevelError + 4
)

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs,
// so operators see server-side failures in the log view.
type DBHandler struct {
	*sink
	attrs []slog.Attr
}

type sink struct {
	backend  backend.Backend
	fallback *slog.Logger
	mu       sync.Mutex
	buffer   []models.SystemLogEntry
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewDBHandler starts the flush loop. Flush failures are reported through
// fallback so they never re-enter the handler.
func NewDBHandler(b backend.Backend, fallback slog.Handler) *DBHandler {
	s := &sink{
		backend:  b,
		fallback: slog.New(fallback),
		buffer:   make([]models.SystemLogEntry, 0, batchSize),
		ticker:   time.NewTicker(flushInterval),
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.flushLoop()
	return &DBHandler{sink: s}
}

func (s *sink) flushLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *sink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLogEntry, 0, batchSize)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.backend.InsertSystemLogs(ctx, batch...); err != nil {
		s.fallback.Error("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush loop to exit.
func (s *sink) Stop() {
	s.ticker.Stop()
	close(s.done)
	s.wg.Wait()
}

func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := recordToEntry(record, h.attrs)

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= batchSize
	h.mu.Unlock()

	if needFlush {
		go h.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}

// recordToEntry maps well-known attribute keys onto columns and keeps the
// rest in details.
func recordToEntry(record slog.Record, preset []slog.Attr) models.SystemLogEntry {
	entry := models.SystemLogEntry{
		Level:     models.LevelError,
		Action:    record.Message,
		CreatedAt: record.Time.UTC(),
	}
	if record.Level >= LevelCritical {
		entry.Level = models.LevelCritical
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	extra := map[string]interface{}{"message": record.Message}
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "action":
			entry.Action = a.Value.String()
		case "actor_id", "admin_id":
			if id, err := uuid.Parse(a.Value.String()); err == nil {
				entry.UserID = &id
			}
		case "entity_type":
			s := a.Value.String()
			entry.EntityType = &s
		case "entity_id":
			s := a.Value.String()
			entry.EntityID = &s
		case "ip":
			s := a.Value.String()
			entry.IPAddress = &s
		default:
			extra[a.Key] = attrValue(a.Value)
		}
		return true
	}
	for _, a := range preset {
		apply(a)
	}
	record.Attrs(apply)

	if b, err := json.Marshal(extra); err == nil {
		entry.Details = datatypes.JSON(b)
	}
	return entry
}

func attrValue(v slog.Value) interface{} {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	case slog.KindGroup:
		group := map[string]interface{}{}
		for _, a := range v.Group() {
			group[a.Key] = attrValue(a.Value)
		}
		return group
	default:
		return v.Any()
	}
}

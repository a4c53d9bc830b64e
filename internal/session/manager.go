// Package session gives every client its own dashboard over the shared,
// read-only dataset.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"github.com/aevon-lab/salary-crossfilter/internal/core/index"
	"github.com/aevon-lab/salary-crossfilter/internal/core/panel"
	"github.com/aevon-lab/salary-crossfilter/internal/core/storage"
	"github.com/aevon-lab/salary-crossfilter/internal/dashboard"
	"github.com/google/uuid"
)

// ErrNotFound is returned for ids that expired, were deleted or never existed.
var ErrNotFound = dashboard.ErrSessionNotFound

// Session owns one dashboard. Its mutex serializes every filter and snapshot.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	dashboard *dashboard.Dashboard
	closed    bool
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.dashboard.Dispose()
	s.closed = true
}

// Manager creates, looks up and evicts sessions.
type Manager struct {
	records []*v1.Record
	panels  []panel.Panel
	cache   *LRUCache
	now     func() time.Time
}

// Load reads the panel set and the dataset and returns a manager serving them.
func Load(ctx context.Context, store storage.RecordStore, panels panel.Repository, capacity int) (*Manager, error) {
	defs, err := panels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing panels: %w", err)
	}
	records, err := store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	if len(records) == 0 {
		slog.Warn("[Sessions] Dataset is empty, every panel will report zero")
	}
	return NewManager(records, defs, capacity)
}

// NewManager returns a manager keeping at most capacity live sessions.
// The panel set is built once up front so a bad definition fails at startup.
func NewManager(records []*v1.Record, panels []panel.Panel, capacity int) (*Manager, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("session capacity must be positive, got %d", capacity)
	}

	check, err := dashboard.New(index.New(records), panels)
	if err != nil {
		return nil, fmt.Errorf("building dashboard: %w", err)
	}
	check.Dispose()

	slog.Info("[Sessions] Manager ready",
		"records", len(records),
		"panels", len(panels),
		"capacity", capacity)

	return &Manager{
		records: records,
		panels:  panels,
		cache:   NewLRUCache(capacity),
		now:     time.Now,
	}, nil
}

// Create builds a fresh dashboard over the dataset and returns its session id.
func (m *Manager) Create(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d, err := dashboard.New(index.New(m.records), m.panels)
	if err != nil {
		return "", fmt.Errorf("building dashboard: %w", err)
	}

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: m.now(),
		dashboard: d,
	}
	if evicted := m.cache.Put(s); evicted != nil {
		evicted.close()
		slog.Info("[Sessions] Evicted least recently used session", "session_id", evicted.ID)
	}

	slog.Debug("[Sessions] Created session", "session_id", s.ID, "active", m.cache.Len())
	return s.ID, nil
}

// Delete disposes a session.
func (m *Manager) Delete(id string) error {
	s := m.cache.Invalidate(id)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.close()
	return nil
}

// With runs fn holding the session's lock.
func (m *Manager) With(id string, fn func(*dashboard.Dashboard) error) error {
	s := m.cache.Get(id)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Evicted between lookup and lock.
	if s.closed {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fn(s.dashboard)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int { return m.cache.Len() }

// Records returns the dataset size.
func (m *Manager) Records() int { return len(m.records) }

// Close disposes every session.
func (m *Manager) Close() {
	sessions := m.cache.Clear()
	for _, s := range sessions {
		s.close()
	}
	slog.Info("[Sessions] Closed all sessions", "count", len(sessions))
}

var _ dashboard.Sessions = (*Manager)(nil)

package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/brightpaw/vetcare-platform/internal/session"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// SlotStore is the persistence surface the manager needs.
type SlotStore interface {
	ListDay(ctx context.Context, providerID, date string) ([]Slot, error)
	Put(ctx context.Context, slot *Slot) error
	Delete(ctx context.Context, providerID, slotKey string) error
}

// Manager orchestrates slot reads and mutations for one provider and day.
// It owns the in-memory slot list for the selected day; the store owns
// durable state. Each successful mutation reloads the cache (read after
// write), so the local list is eventually consistent with the store but can
// go stale under concurrent edits by other staff.
type Manager struct {
	store  SlotStore
	logger *logging.Logger

	mu       sync.RWMutex
	provider session.CurrentProvider
	date     string
	slots    []Slot
}

// NewManager creates a manager for the given provider's calendar.
func NewManager(store SlotStore, provider session.CurrentProvider, logger *logging.Logger) *Manager {
	if store == nil {
		panic("schedule: slot store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{store: store, provider: provider, logger: logger}
}

// Load fetches the provider's slots for a day and replaces the cache. On
// store failure the cache is left unchanged (stale but consistent) and the
// error is surfaced.
func (m *Manager) Load(ctx context.Context, date string) ([]Slot, error) {
	slots, err := m.store.ListDay(ctx, m.provider.ID, date)
	if err != nil {
		m.logger.Error("failed to load slots", "provider_id", m.provider.ID, "date", date, "error", err)
		return nil, err
	}
	sortSlots(slots)

	m.mu.Lock()
	m.date = date
	m.slots = slots
	m.mu.Unlock()

	return m.Slots(), nil
}

// Add validates the candidate against the cached day and persists it.
// Validation and conflict failures return before any store call; a persist
// failure is reported without reloading the cache.
func (m *Manager) Add(ctx context.Context, req NewSlotRequest) (*Slot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	date := m.date
	existing := make([]Slot, len(m.slots))
	copy(existing, m.slots)
	m.mu.RUnlock()

	if req.Date != date {
		return nil, fmt.Errorf("%w: date %s is not the loaded day %s", ErrInvalidInput, req.Date, date)
	}
	if err := Validate(TimeRange{Start: req.StartTime, End: req.EndTime}, existing); err != nil {
		return nil, err
	}

	slot := &Slot{
		ID:           uuid.NewString(),
		ProviderID:   m.provider.ID,
		ProviderName: m.provider.Name,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsReserved:   false,
	}
	if err := m.store.Put(ctx, slot); err != nil {
		m.logger.Error("failed to persist slot", "provider_id", m.provider.ID, "date", req.Date, "error", err)
		return nil, err
	}

	if _, err := m.Load(ctx, date); err != nil {
		// The write landed; the reload failure only leaves the cache stale.
		m.logger.Warn("slot persisted but reload failed", "provider_id", m.provider.ID, "error", err)
	}
	return slot, nil
}

// Delete removes a slot by id. Reserved slots are rejected locally with zero
// store calls; callers are expected to have confirmed the action with the
// user already.
func (m *Manager) Delete(ctx context.Context, slotID string) error {
	m.mu.RLock()
	var target *Slot
	for i := range m.slots {
		if m.slots[i].ID == slotID {
			target = &m.slots[i]
			break
		}
	}
	date := m.date
	m.mu.RUnlock()

	if target == nil {
		return ErrSlotNotFound
	}
	if target.IsReserved {
		return ErrSlotReserved
	}

	if err := m.store.Delete(ctx, m.provider.ID, Key(target.Date, target.StartTime)); err != nil {
		m.logger.Error("failed to delete slot", "provider_id", m.provider.ID, "slot_id", slotID, "error", err)
		return err
	}

	if _, err := m.Load(ctx, date); err != nil {
		m.logger.Warn("slot deleted but reload failed", "provider_id", m.provider.ID, "error", err)
	}
	return nil
}

// Slots returns a copy of the cached day, ascending by start time.
func (m *Manager) Slots() []Slot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Slot, len(m.slots))
	copy(out, m.slots)
	return out
}

// Date returns the currently loaded day.
func (m *Manager) Date() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.date
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
}

package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Lister is the persistence surface the service needs.
type Lister interface {
	List(ctx context.Context, providerID string, filter DateFilter, today string) ([]Appointment, error)
	UpdateStatus(ctx context.Context, providerID, apptKey string, to Status) error
}

// Service applies the status machine to one provider's appointment list and
// maintains a local projection of it. After UpdateStatus the projection is
// patched in place rather than reloaded, so it is the sole source of truth
// for the current render cycle only; callers who care about concurrent staff
// edits must call Resync.
type Service struct {
	repo     Lister
	provider string
	logger   *logging.Logger
	now      func() time.Time

	mu     sync.RWMutex
	filter DateFilter
	appts  []Appointment
}

// NewService creates an appointment service for one provider.
func NewService(repo Lister, providerID string, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, provider: providerID, logger: logger, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() string {
	return s.now().UTC().Format(DateLayout)
}

// List loads the provider's appointments under the given filter, replacing
// the projection. Results are ascending by (date, startTime).
func (s *Service) List(ctx context.Context, filter DateFilter) ([]Appointment, error) {
	appts, err := s.repo.List(ctx, s.provider, filter, s.today())
	if err != nil {
		s.logger.Error("failed to list appointments", "provider_id", s.provider, "filter", filter, "error", err)
		return nil, err
	}
	sortAppointments(appts)

	s.mu.Lock()
	s.filter = filter
	s.appts = appts
	s.mu.Unlock()

	return s.Appointments(), nil
}

// UpdateStatus applies a status transition to one appointment. The move is
// checked against the projection before any store call; on success the
// projection entry is patched by id without a reload.
func (s *Service) UpdateStatus(ctx context.Context, apptID string, to Status) (*Appointment, error) {
	s.mu.RLock()
	var current *Appointment
	for i := range s.appts {
		if s.appts[i].ID == apptID {
			copied := s.appts[i]
			current = &copied
			break
		}
	}
	s.mu.RUnlock()

	if current == nil {
		return nil, ErrNotFound
	}
	if err := CheckTransition(current.Status, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, s.provider, current.ApptKey, to); err != nil {
		s.logger.Error("failed to update appointment status",
			"provider_id", s.provider, "appointment_id", apptID, "to", to, "error", err)
		return nil, err
	}

	updatedAt := s.now().UTC().Format(time.RFC3339Nano)
	s.mu.Lock()
	for i := range s.appts {
		if s.appts[i].ID == apptID {
			s.appts[i].Status = to
			s.appts[i].UpdatedAt = updatedAt
			copied := s.appts[i]
			current = &copied
			break
		}
	}
	s.mu.Unlock()

	return current, nil
}

// Resync reloads the projection under its current filter. This is the
// explicit recovery path for the divergence the optimistic update allows.
func (s *Service) Resync(ctx context.Context) ([]Appointment, error) {
	s.mu.RLock()
	filter := s.filter
	s.mu.RUnlock()
	if filter == "" {
		filter = FilterAll
	}
	return s.List(ctx, filter)
}

// Appointments returns a copy of the local projection.
func (s *Service) Appointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Appointment, len(s.appts))
	copy(out, s.appts)
	return out
}

func sortAppointments(appts []Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].StartTime < appts[j].StartTime
	})
}

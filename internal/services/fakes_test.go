package services

import (
	"context"
	"distance-service/internal/domain"
	"distance-service/internal/ports"
	"strings"
	"sync"
	"time"
)

// scriptedGeocoder answers from a map keyed by query and records every call.
type scriptedGeocoder struct {
	mu      sync.Mutex
	answers map[string][]ports.GeocodeResult
	err     error
	calls   []string
	limits  []int
}

func (g *scriptedGeocoder) Search(_ context.Context, query string, limit int) ([]ports.GeocodeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, query)
	g.limits = append(g.limits, limit)
	if g.err != nil {
		return nil, g.err
	}
	return g.answers[strings.ToLower(query)], nil
}

type memQueries struct {
	mu      sync.Mutex
	saved   []*domain.DistanceQuery
	saveErr error
	listErr error
	filters []ports.QueryFilter
}

func (m *memQueries) Save(_ context.Context, q *domain.DistanceQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, q)
	return nil
}

func (m *memQueries) List(_ context.Context, f ports.QueryFilter) ([]*domain.DistanceQuery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filters = append(m.filters, f)
	if m.listErr != nil {
		return nil, m.listErr
	}

	out := make([]*domain.DistanceQuery, 0, len(m.saved))
	for i := len(m.saved) - 1; i >= 0; i-- {
		q := m.saved[i]
		if f.UserID != "" && q.UserID != f.UserID {
			continue
		}
		out = append(out, q)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	getErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*domain.User{}}
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type staticIssuer struct{ err error }

func (s staticIssuer) Issue(userID, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + userID, nil
}

// newTestDistanceService wires fakes and records waits instead of sleeping.
func newTestDistanceService(g ports.Geocoder, q ports.QueryRepository, waits *[]time.Duration) *DistanceService {
	svc := NewDistanceService(g, q, DefaultGeocodeDelay)
	svc.wait = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	svc.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "q-1" }
	return svc
}

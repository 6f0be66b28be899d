package session

import (
	"github.com/google/uuid"

	"CourseHub/internal/models"
)

type Status int

const (
	// StatusLoading is the initial state, before bootstrap resolved. Consumers
	// must not render personalized content while it holds.
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is one version of the session. User is non-nil only when
// authenticated, and is replaced wholesale with each confirmed mutation.
type State struct {
	Status  Status
	User    *models.UserSnapshot
	Version uint64
}

// apply runs a transform against the current state under the manager lock.
// Each transform sees the latest committed state, so two concurrent confirmed
// mutations compose instead of overwriting each other. Subscribers get a
// non-blocking notification with the new state.
func (m *Manager) apply(transform func(prev State) State) State {
	m.mu.Lock()
	next := transform(m.state)
	next.Version = m.state.Version + 1
	m.state = next
	subs := make([]chan State, 0, len(m.subs))
	for _, ch := range m.subs {
		subs = append(subs, ch)
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- next:
		default:
		}
	}
	return next
}

// applyUser is apply for the common case of mutating an authenticated
// snapshot. The mutate func receives a deep copy; if the session is not
// authenticated, nothing changes.
func (m *Manager) applyUser(mutate func(user *models.UserSnapshot)) State {
	return m.apply(func(prev State) State {
		if prev.Status != StatusAuthenticated || prev.User == nil {
			return prev
		}
		user := prev.User.Clone()
		mutate(user)
		return State{Status: StatusAuthenticated, User: user}
	})
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers a change listener. The returned cancel func must be
// called on teardown; notifications that arrive faster than the consumer
// drains are dropped (the consumer re-reads State for the latest version).
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 1)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// mergeCatalog folds course summaries seen on enrollments and favorites into
// the locally cached catalog extension. First seen wins: catalog entries are
// authoritative once loaded.
func (m *Manager) mergeCatalog(courses ...models.CourseSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range courses {
		if c.ID == uuid.Nil {
			continue
		}
		if _, ok := m.catalog[c.ID]; !ok {
			m.catalog[c.ID] = c
		}
	}
}

// Catalog returns the current catalog extension set.
func (m *Manager) Catalog() []models.CourseSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.CourseSummary, 0, len(m.catalog))
	for _, c := range m.catalog {
		out = append(out, c)
	}
	return out
}

// CatalogCourse looks up one cached course summary.
func (m *Manager) CatalogCourse(id uuid.UUID) (models.CourseSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.catalog[id]
	return c, ok
}

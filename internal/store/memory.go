package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"church-api/internal/models"
)

// Memory is a map-backed Store used by the test suite and the
// STORE_DRIVER=memory mode for local development. All methods copy on
// the way in and out, so callers never share row memory.
type Memory struct {
	mu            sync.RWMutex
	users         map[string]models.User
	children      map[string]models.Child
	events        map[string]models.Event
	checkins      map[string]models.Checkin
	announcements map[string]models.Announcement
	prayers       map[string]models.PrayerRequest
	donations     map[string]models.Donation
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[string]models.User),
		children:      make(map[string]models.Child),
		events:        make(map[string]models.Event),
		checkins:      make(map[string]models.Checkin),
		announcements: make(map[string]models.Announcement),
		prayers:       make(map[string]models.PrayerRequest),
		donations:     make(map[string]models.Donation),
	}
}

// --- users ---

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.Email = strings.ToLower(u.Email)
	for id, existing := range m.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// --- children ---

func (m *Memory) CreateChild(_ context.Context, c *models.Child) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.NewString()
	m.children[c.ID] = *c
	return nil
}

func (m *Memory) GetChild(_ context.Context, id string) (*models.Child, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.children[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListChildrenByUser(_ context.Context, userID string) ([]models.Child, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	children := []models.Child{}
	for _, c := range m.children {
		if c.UserID == userID {
			children = append(children, c)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

func (m *Memory) UpdateChild(_ context.Context, c *models.Child) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.children[c.ID]; !ok {
		return ErrNotFound
	}
	m.children[c.ID] = *c
	return nil
}

func (m *Memory) DeleteChild(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.children[id]; !ok {
		return ErrNotFound
	}
	delete(m.children, id)
	return nil
}

// --- events ---

func (m *Memory) CreateEvent(_ context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = uuid.NewString()
	m.events[e.ID] = *e
	return nil
}

func (m *Memory) GetEvent(_ context.Context, id string) (*models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (m *Memory) ListEvents(_ context.Context, filter EventFilter) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := []models.Event{}
	for _, e := range m.events {
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (m *Memory) UpdateEvent(_ context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[e.ID]; !ok {
		return ErrNotFound
	}
	m.events[e.ID] = *e
	return nil
}

func (m *Memory) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// --- checkins ---

func (m *Memory) CreateCheckin(_ context.Context, c *models.Checkin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.children[c.ChildID]; !ok {
		return ErrInvalidRef
	}
	if _, ok := m.events[c.EventID]; !ok {
		return ErrInvalidRef
	}
	c.ID = uuid.NewString()
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	m.checkins[c.ID] = *c
	return nil
}

func (m *Memory) ListCheckinsByEvent(_ context.Context, eventID string) ([]models.Checkin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checkins := []models.Checkin{}
	for _, c := range m.checkins {
		if c.EventID == eventID {
			checkins = append(checkins, c)
		}
	}
	sort.Slice(checkins, func(i, j int) bool { return checkins[i].Timestamp.Before(checkins[j].Timestamp) })
	return checkins, nil
}

func (m *Memory) ListCheckinsByChild(_ context.Context, childID string) ([]models.Checkin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checkins := []models.Checkin{}
	for _, c := range m.checkins {
		if c.ChildID == childID {
			checkins = append(checkins, c)
		}
	}
	sort.Slice(checkins, func(i, j int) bool { return checkins[i].Timestamp.Before(checkins[j].Timestamp) })
	return checkins, nil
}

// --- announcements ---

func (m *Memory) CreateAnnouncement(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	m.announcements[a.ID] = *a
	return nil
}

func (m *Memory) GetAnnouncement(_ context.Context, id string) (*models.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.announcements[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) ListAnnouncements(_ context.Context) ([]models.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	announcements := make([]models.Announcement, 0, len(m.announcements))
	for _, a := range m.announcements {
		announcements = append(announcements, a)
	}
	// newest first
	sort.Slice(announcements, func(i, j int) bool {
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})
	return announcements, nil
}

func (m *Memory) UpdateAnnouncement(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.announcements[a.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Title = a.Title
	existing.Content = a.Content
	m.announcements[a.ID] = existing
	*a = existing
	return nil
}

func (m *Memory) DeleteAnnouncement(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.announcements[id]; !ok {
		return ErrNotFound
	}
	delete(m.announcements, id)
	return nil
}

// --- prayer requests ---

func (m *Memory) CreatePrayer(_ context.Context, p *models.PrayerRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	m.prayers[p.ID] = *p
	return nil
}

func (m *Memory) GetPrayer(_ context.Context, id string) (*models.PrayerRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.prayers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) ListPrayers(_ context.Context) ([]models.PrayerRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prayers := make([]models.PrayerRequest, 0, len(m.prayers))
	for _, p := range m.prayers {
		prayers = append(prayers, p)
	}
	sort.Slice(prayers, func(i, j int) bool { return prayers[i].CreatedAt.After(prayers[j].CreatedAt) })
	return prayers, nil
}

func (m *Memory) UpdatePrayerStatus(_ context.Context, id string, status models.PrayerStatus) (*models.PrayerRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.prayers[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Status = status
	m.prayers[id] = p
	return &p, nil
}

// --- donations ---

func (m *Memory) CreateDonation(_ context.Context, d *models.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	m.donations[d.ID] = *d
	return nil
}

func (m *Memory) ListDonationsByUser(_ context.Context, userID string) ([]models.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	donations := []models.Donation{}
	for _, d := range m.donations {
		if d.UserID == userID {
			donations = append(donations, d)
		}
	}
	sort.Slice(donations, func(i, j int) bool { return donations[i].CreatedAt.After(donations[j].CreatedAt) })
	return donations, nil
}

func (m *Memory) ListDonations(_ context.Context) ([]models.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	donations := make([]models.Donation, 0, len(m.donations))
	for _, d := range m.donations {
		donations = append(donations, d)
	}
	sort.Slice(donations, func(i, j int) bool { return donations[i].CreatedAt.After(donations[j].CreatedAt) })
	return donations, nil
}

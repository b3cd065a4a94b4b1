package store

import (
	"context"
	"errors"
	"time"

	"church-api/internal/models"
)

// Sentinel errors the handlers translate to HTTP statuses.
var (
	// ErrNotFound means no row with that id (or email) exists.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail means the email is already registered.
	// Comparison is case-insensitive.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidRef means a referenced row (child, event) does not exist.
	ErrInvalidRef = errors.New("referenced row does not exist")
)

// EventFilter restricts ListEvents. Both predicates are optional and
// AND-ed together when present.
type EventFilter struct {
	From     *time.Time // events with date >= From
	Category string     // exact category match
}

// Store is the persistence boundary. Create methods assign the id (and
// creation timestamp where the model has one) on the passed struct.
// Every call is a single atomic operation; CreateCheckin validates both
// references and inserts in one transaction.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateChild(ctx context.Context, c *models.Child) error
	GetChild(ctx context.Context, id string) (*models.Child, error)
	ListChildrenByUser(ctx context.Context, userID string) ([]models.Child, error)
	UpdateChild(ctx context.Context, c *models.Child) error
	DeleteChild(ctx context.Context, id string) error

	CreateEvent(ctx context.Context, e *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id string) error

	CreateCheckin(ctx context.Context, c *models.Checkin) error
	ListCheckinsByEvent(ctx context.Context, eventID string) ([]models.Checkin, error)
	ListCheckinsByChild(ctx context.Context, childID string) ([]models.Checkin, error)

	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error

	CreatePrayer(ctx context.Context, p *models.PrayerRequest) error
	GetPrayer(ctx context.Context, id string) (*models.PrayerRequest, error)
	ListPrayers(ctx context.Context) ([]models.PrayerRequest, error)
	UpdatePrayerStatus(ctx context.Context, id string, status models.PrayerStatus) (*models.PrayerRequest, error)

	CreateDonation(ctx context.Context, d *models.Donation) error
	ListDonationsByUser(ctx context.Context, userID string) ([]models.Donation, error)
	ListDonations(ctx context.Context) ([]models.Donation, error)
}

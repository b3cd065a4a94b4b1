package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"church-api/internal/models"
)

const pgUniqueViolation = "23505"

// Postgres implements Store on top of sqlx with the pgx stdlib driver.
type Postgres struct {
	DB *sqlx.DB
}

// NewPostgres wraps an already-connected pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{DB: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// --- users ---

func (s *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	u.Email = strings.ToLower(u.Email)

	query := `INSERT INTO users (id, name, email, password_hash, role, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *Postgres) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	query := `SELECT * FROM users WHERE id = $1`
	if err := s.DB.GetContext(ctx, &u, query, id); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	query := `SELECT * FROM users WHERE email = $1`
	if err := s.DB.GetContext(ctx, &u, query, strings.ToLower(email)); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Postgres) UpdateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	query := `UPDATE users SET name = $1, email = $2, password_hash = $3, role = $4, is_active = $5
	          WHERE id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT * FROM users ORDER BY created_at`
	err := s.DB.SelectContext(ctx, &users, query)
	return users, err
}

// --- children ---

func (s *Postgres) CreateChild(ctx context.Context, c *models.Child) error {
	c.ID = uuid.NewString()
	query := `INSERT INTO children (id, user_id, name, birthdate) VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query, c.ID, c.UserID, c.Name, c.Birthdate)
	return err
}

func (s *Postgres) GetChild(ctx context.Context, id string) (*models.Child, error) {
	var c models.Child
	query := `SELECT * FROM children WHERE id = $1`
	if err := s.DB.GetContext(ctx, &c, query, id); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Postgres) ListChildrenByUser(ctx context.Context, userID string) ([]models.Child, error) {
	children := []models.Child{}
	query := `SELECT * FROM children WHERE user_id = $1 ORDER BY name`
	err := s.DB.SelectContext(ctx, &children, query, userID)
	return children, err
}

func (s *Postgres) UpdateChild(ctx context.Context, c *models.Child) error {
	query := `UPDATE children SET name = $1, birthdate = $2 WHERE id = $3`
	res, err := s.DB.ExecContext(ctx, query, c.Name, c.Birthdate, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) DeleteChild(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- events ---

func (s *Postgres) CreateEvent(ctx context.Context, e *models.Event) error {
	e.ID = uuid.NewString()
	query := `INSERT INTO events (id, title, date, category, description)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query, e.ID, e.Title, e.Date, e.Category, e.Description)
	return err
}

func (s *Postgres) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	query := `SELECT * FROM events WHERE id = $1`
	if err := s.DB.GetContext(ctx, &e, query, id); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *Postgres) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	events := []models.Event{}
	query := `SELECT * FROM events WHERE 1=1`
	args := []interface{}{}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND date >= $1`
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		if len(args) == 1 {
			query += ` AND category = $1`
		} else {
			query += ` AND category = $2`
		}
	}
	query += ` ORDER BY date`

	err := s.DB.SelectContext(ctx, &events, query, args...)
	return events, err
}

func (s *Postgres) UpdateEvent(ctx context.Context, e *models.Event) error {
	query := `UPDATE events SET title = $1, date = $2, category = $3, description = $4
	          WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query, e.Title, e.Date, e.Category, e.Description, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- checkins ---

// CreateCheckin validates both references and inserts in a single
// transaction, so no row is ever written against a missing child or event.
func (s *Postgres) CreateCheckin(ctx context.Context, c *models.Checkin) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM children WHERE id = $1)`, c.ChildID); err != nil {
		return err
	}
	if !exists {
		return ErrInvalidRef
	}
	if err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, c.EventID); err != nil {
		return err
	}
	if !exists {
		return ErrInvalidRef
	}

	c.ID = uuid.NewString()
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	query := `INSERT INTO checkins (id, child_id, event_id, timestamp) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, c.ID, c.ChildID, c.EventID, c.Timestamp); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Postgres) ListCheckinsByEvent(ctx context.Context, eventID string) ([]models.Checkin, error) {
	checkins := []models.Checkin{}
	query := `SELECT * FROM checkins WHERE event_id = $1 ORDER BY timestamp`
	err := s.DB.SelectContext(ctx, &checkins, query, eventID)
	return checkins, err
}

func (s *Postgres) ListCheckinsByChild(ctx context.Context, childID string) ([]models.Checkin, error) {
	checkins := []models.Checkin{}
	query := `SELECT * FROM checkins WHERE child_id = $1 ORDER BY timestamp`
	err := s.DB.SelectContext(ctx, &checkins, query, childID)
	return checkins, err
}

// --- announcements ---

func (s *Postgres) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	query := `INSERT INTO announcements (id, title, content, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query, a.ID, a.Title, a.Content, a.CreatedBy, a.CreatedAt)
	return err
}

func (s *Postgres) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	var a models.Announcement
	query := `SELECT * FROM announcements WHERE id = $1`
	if err := s.DB.GetContext(ctx, &a, query, id); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Postgres) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	announcements := []models.Announcement{}
	query := `SELECT * FROM announcements ORDER BY created_at DESC`
	err := s.DB.SelectContext(ctx, &announcements, query)
	return announcements, err
}

func (s *Postgres) UpdateAnnouncement(ctx context.Context, a *models.Announcement) error {
	query := `UPDATE announcements SET title = $1, content = $2 WHERE id = $3 RETURNING *`
	if err := s.DB.GetContext(ctx, a, query, a.Title, a.Content, a.ID); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *Postgres) DeleteAnnouncement(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- prayer requests ---

func (s *Postgres) CreatePrayer(ctx context.Context, p *models.PrayerRequest) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	query := `INSERT INTO prayer_requests (id, content, user_id, status, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query, p.ID, p.Content, p.UserID, p.Status, p.CreatedAt)
	return err
}

func (s *Postgres) GetPrayer(ctx context.Context, id string) (*models.PrayerRequest, error) {
	var p models.PrayerRequest
	query := `SELECT * FROM prayer_requests WHERE id = $1`
	if err := s.DB.GetContext(ctx, &p, query, id); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Postgres) ListPrayers(ctx context.Context) ([]models.PrayerRequest, error) {
	prayers := []models.PrayerRequest{}
	query := `SELECT * FROM prayer_requests ORDER BY created_at DESC`
	err := s.DB.SelectContext(ctx, &prayers, query)
	return prayers, err
}

func (s *Postgres) UpdatePrayerStatus(ctx context.Context, id string, status models.PrayerStatus) (*models.PrayerRequest, error) {
	var p models.PrayerRequest
	query := `UPDATE prayer_requests SET status = $1 WHERE id = $2 RETURNING *`
	if err := s.DB.GetContext(ctx, &p, query, status, id); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// --- donations ---

func (s *Postgres) CreateDonation(ctx context.Context, d *models.Donation) error {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	query := `INSERT INTO donations (id, user_id, amount_cents, category, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query, d.ID, d.UserID, d.AmountCents, d.Category, d.CreatedAt)
	return err
}

func (s *Postgres) ListDonationsByUser(ctx context.Context, userID string) ([]models.Donation, error) {
	donations := []models.Donation{}
	query := `SELECT * FROM donations WHERE user_id = $1 ORDER BY created_at DESC`
	err := s.DB.SelectContext(ctx, &donations, query, userID)
	return donations, err
}

func (s *Postgres) ListDonations(ctx context.Context) ([]models.Donation, error) {
	donations := []models.Donation{}
	query := `SELECT * FROM donations ORDER BY created_at DESC`
	err := s.DB.SelectContext(ctx, &donations, query)
	return donations, err
}

// requireRow maps a zero-row update/delete to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package models

import "time"

// We use 'db' tags for sqlx to map the snake_case column names
// to our Go fields, and 'json' tags for the API responses.

// Role is the closed set of user roles.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// PrayerStatus is the closed set of prayer request states.
type PrayerStatus string

const (
	PrayerPending  PrayerStatus = "pending"
	PrayerPraying  PrayerStatus = "praying"
	PrayerAnswered PrayerStatus = "answered"
)

// Valid reports whether s is one of the three known states.
func (s PrayerStatus) Valid() bool {
	switch s {
	case PrayerPending, PrayerPraying, PrayerAnswered:
		return true
	}
	return false
}

// User represents a registered member or admin.
// The password hash is never serialized.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Child is a member-owned child profile.
type Child struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Birthdate time.Time `db:"birthdate" json:"birthdate"`
}

// Event is a church event that children can be checked in to.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Date        time.Time `db:"date" json:"date"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
}

// Checkin records one child's attendance at one event.
// Immutable once created; repeat check-ins for the same pair are allowed.
type Checkin struct {
	ID        string    `db:"id" json:"id"`
	ChildID   string    `db:"child_id" json:"child_id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// Announcement is an admin-authored post.
type Announcement struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PrayerRequest holds a prayer submission. UserID is nil for anonymous
// submissions and stays nil for the lifetime of the row.
type PrayerRequest struct {
	ID        string       `db:"id" json:"id"`
	Content   string       `db:"content" json:"content"`
	UserID    *string      `db:"user_id" json:"user_id"`
	Status    PrayerStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// Donation records a gift. Amounts are stored in cents so monetary
// values stay exact; immutable once created.
type Donation struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

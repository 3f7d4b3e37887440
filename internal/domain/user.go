package domain

import "time"

// User is the full identity record, including the password hash.
// It must never be serialized to clients; use Public for that.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FirstName     *string
	LastName      *string
	IsActive      bool
	EmailVerified bool
	CreatedAt     int64
	UpdatedAt     int64
}

// PublicUser holds exactly the user fields that may leave the server.
type PublicUser struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	IsActive      bool    `json:"isActive"`
	EmailVerified bool    `json:"emailVerified"`
	CreatedAt     int64   `json:"createdAt"`
	UpdatedAt     int64   `json:"updatedAt"`
}

// Public projects the user onto the fields that may cross the trust boundary.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Session proves that a browser has authenticated as a user.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt int64
	CreatedAt int64
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now int64) bool {
	return now >= s.ExpiresAt
}

// Millis converts a time to milliseconds since the Unix epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

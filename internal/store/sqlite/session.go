package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// SessionRepository handles session persistence.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session row.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, session.ExpiresAt, session.CreatedAt,
	)
	return err
}

// GetWithUser loads a session together with its owner in one query.
func (r *SessionRepository) GetWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error) {
	query := `
		SELECT s.id, s.user_id, s.expires_at, s.created_at,
		       u.id, u.email, u.password_hash, u.first_name, u.last_name,
		       u.is_active, u.email_verified, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?
	`
	var session domain.Session
	var user domain.User
	var createdAt sql.NullInt64
	var firstName, lastName sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&createdAt,
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&firstName,
		&lastName,
		&user.IsActive,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, store.ErrNotFound
		}
		return nil, nil, err
	}

	session.CreatedAt = createdAt.Int64
	user.FirstName = nullString(firstName)
	user.LastName = nullString(lastName)
	return &session, &user, nil
}

// UpdateExpiry moves the expiry of a session.
func (r *SessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAt int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sessions SET expires_at = ? WHERE id = ?`, expiresAt, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpired removes every session whose expiry is at or before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteForUser removes every session owned by userID.
func (r *SessionRepository) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

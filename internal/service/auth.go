package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/password"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
	"github.com/taskdeck/taskdeck/pkg/idgen"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// AuthService handles registration, login and profile changes.
type AuthService struct {
	userRepo *sqlite.UserRepository
	sessions *session.Manager
	hasher   *password.Hasher
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *sqlite.UserRepository, sessions *session.Manager, hasher *password.Hasher, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		now:      now,
	}
}

// AuthResult is a signed-in user and the cookie that carries the session.
type AuthResult struct {
	User   *domain.PublicUser
	Cookie *http.Cookie
}

// RegisterInput contains the input for creating an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.NewValidationMessage("Email and password are required")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, domain.NewValidationMessage("Password must be at least 8 characters")
	}

	// Advisory only; the unique index decides races.
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.NewEmailExistsError("Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, domain.NewInternalError(domain.ErrCodeServer, "Failed to create account", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidationMessage("Password must be at most 72 bytes")
		}
		return nil, domain.NewInternalError(domain.ErrCodeServer, "Failed to create account", err)
	}

	id, err := idgen.UserID()
	if err != nil {
		return nil, domain.NewInternalError(domain.ErrCodeServer, "Failed to create account", err)
	}

	now := s.now().UnixMilli()
	user := &domain.User{
		ID:           id,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    blankToNil(input.FirstName),
		LastName:     blankToNil(input.LastName),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, domain.NewEmailExistsError("Email already registered")
		}
		return nil, domain.NewInternalError(domain.ErrCodeServer, "Failed to create account", err)
	}

	return s.signIn(ctx, user, "Failed to create account")
}

// Login verifies credentials and starts a session. Unknown emails and wrong
// passwords produce the same error. A deactivated account is reported before
// the password is compared.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*AuthResult, error) {
	if email == "" || plaintext == "" {
		return nil, domain.NewValidationMessage("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.Verify(plaintext, s.dummy())
			return nil, domain.NewInvalidCredentialsError()
		}
		return nil, domain.NewInternalError(domain.ErrCodeServer, "Failed to log in", err)
	}

	if !user.IsActive {
		return nil, domain.NewAccountDeactivatedError()
	}
	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, domain.NewInvalidCredentialsError()
	}

	return s.signIn(ctx, user, "Failed to log in")
}

// Logout revokes the session and returns the cookie that clears it.
func (s *AuthService) Logout(ctx context.Context, sessionID string) (*http.Cookie, error) {
	if err := s.sessions.Invalidate(ctx, sessionID); err != nil {
		return nil, domain.NewInternalError(domain.ErrCodeServer, "Failed to log out", err)
	}
	return s.sessions.BlankCookie(), nil
}

// ProfileInput contains a partial profile update. Clearing a name with
// null or "" stores NULL. Email can be changed but not cleared.
type ProfileInput struct {
	FirstName domain.Optional[string]
	LastName  domain.Optional[string]
	Email     *string
}

// UpdateProfile changes the user's names or email. A changed email is marked
// unverified.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("Not authenticated")
		}
		return nil, domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update profile", err)
	}

	if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update profile", err)
		}
		if taken {
			return nil, domain.NewEmailExistsError("Email already in use")
		}
		user.Email = *input.Email
		user.EmailVerified = false
	}
	if input.FirstName.Set {
		user.FirstName = blankToNil(input.FirstName.Value)
	}
	if input.LastName.Set {
		user.LastName = blankToNil(input.LastName.Value)
	}
	user.UpdatedAt = s.now().UnixMilli()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, domain.NewEmailExistsError("Email already in use")
		}
		return nil, domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update profile", err)
	}
	return user.Public(), nil
}

// SetActive activates or soft-deactivates the account registered to email.
// Deactivation also deletes the account's sessions.
func (s *AuthService) SetActive(ctx context.Context, email string, active bool) error {
	err := s.userRepo.SetActive(ctx, email, active, s.now().UnixMilli())
	if errors.Is(err, store.ErrNotFound) {
		return domain.NewUserNotFoundError()
	}
	if err != nil {
		return domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update account", err)
	}
	if active {
		return nil
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update account", err)
	}
	if _, err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
		return domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update account", err)
	}
	return nil
}

func (s *AuthService) signIn(ctx context.Context, user *domain.User, failure string) (*AuthResult, error) {
	_, cookie, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, domain.NewInternalError(domain.ErrCodeServer, failure, err)
	}
	return &AuthResult{User: user.Public(), Cookie: cookie}, nil
}

// dummy returns a hash to compare against when the email is unknown, so
// that the response takes as long as a wrong password.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("taskdeck-placeholder-password")
	})
	return s.dummyHash
}

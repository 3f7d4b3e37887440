package request

import "github.com/taskdeck/taskdeck/internal/domain"

// RegisterRequest represents a request to create an account.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
}

// LoginRequest represents a request to sign in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest represents a partial profile update. Names may be cleared
// with null; email may only be replaced.
type ProfileRequest struct {
	FirstName domain.Optional[string] `json:"firstName" validate:"omitempty,max=50"`
	LastName  domain.Optional[string] `json:"lastName" validate:"omitempty,max=50"`
	Email     *string                 `json:"email" validate:"omitempty,email"`
}

package handler

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/request"
	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/service"
)

// UserResponse wraps a user with an optional message.
type UserResponse struct {
	User    *domain.PublicUser `json:"user"`
	Message string             `json:"message,omitempty"`
}

// AuthHandler handles registration, login and the current user's profile.
type AuthHandler struct {
	auth    *service.AuthService
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		h.metrics.AuthEvent("register", false)
		response.Error(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	h.metrics.AuthEvent("register", err == nil)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	http.SetCookie(w, result.Cookie)
	response.Created(w, UserResponse{User: result.User, Message: "Account created successfully"})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.metrics.AuthEvent("login", false)
		response.Error(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		h.metrics.AuthEvent("login", false)
		response.Error(w, r, domain.NewValidationMessage("Email and password are required"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	h.metrics.AuthEvent("login", err == nil)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	http.SetCookie(w, result.Cookie)
	response.OK(w, UserResponse{User: result.User, Message: "Logged in successfully"})
}

// Logout handles POST /auth/logout. It succeeds without a session and always
// clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if s, ok := middleware.CurrentSession(r.Context()); ok {
		sessionID = s.ID
	}

	cookie, err := h.auth.Logout(r.Context(), sessionID)
	h.metrics.AuthEvent("logout", err == nil)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	http.SetCookie(w, cookie)
	response.Message(w, "Logged out successfully")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Error(w, r, domain.NewUnauthorizedError("Not authenticated"))
		return
	}
	response.OK(w, UserResponse{User: user})
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	var req request.ProfileRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, UserResponse{User: updated, Message: "Profile updated successfully"})
}

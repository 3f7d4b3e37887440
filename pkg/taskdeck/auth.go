package taskdeck

import (
	"context"
	"net/http"
)

// Register creates an account and signs the client in as it.
func (c *Client) Register(ctx context.Context, email, password string, opts ...RegisterOption) (*User, error) {
	body := map[string]any{"email": email, "password": password}
	for _, opt := range opts {
		opt(body)
	}
	return c.userCall(ctx, http.MethodPost, "/auth/register", body, "register", http.StatusCreated)
}

// Login signs the client in.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]any{"email": email, "password": password}
	return c.userCall(ctx, http.MethodPost, "/auth/login", body, "login", http.StatusOK)
}

// Logout ends the client's session. It succeeds without a session too.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	return c.do(req, "logout", http.StatusOK, nil)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return c.userCall(ctx, http.MethodGet, "/auth/me", nil, "me", http.StatusOK)
}

// UpdateProfile changes the given profile fields.
func (c *Client) UpdateProfile(ctx context.Context, opts ...ProfileOption) (*User, error) {
	body := map[string]any{}
	for _, opt := range opts {
		opt(body)
	}
	return c.userCall(ctx, http.MethodPut, "/auth/profile", body, "update profile", http.StatusOK)
}

func (c *Client) userCall(ctx context.Context, method, path string, body any, op string, want int) (*User, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var resp userResponse
	if err := c.do(req, op, want, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

package api

import (
	"context"
	"net/http"

	"classroomclient/internal/domain"
)

// AuthResponse is the login payload: the bearer token plus the profile it
// belongs to.
type AuthResponse struct {
	Token string             `json:"token"`
	User  domain.UserProfile `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	MSSV     string `json:"mssv,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, nil)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"classroomclient/internal/domain"
)

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	MSSV     string `json:"mssv,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.UserProfile](raw, "users")
}

func (c *Client) GetUser(ctx context.Context, id int) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, http.MethodPost, "/users", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, input UserInput) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

func (c *Client) ChangePassword(ctx context.Context, id int, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/change-password", id), nil, body, nil)
}

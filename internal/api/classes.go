package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"classroomclient/internal/domain"
)

type ClassInput struct {
	Name        string `json:"tenLop"`
	Description string `json:"moTa"`
	JoinCode    string `json:"maThamGia"`
	TeacherID   int    `json:"giaoVienID"`
}

// ListClasses returns the classes visible to userID in the given role. The
// backend answers either a bare array or {"classes": [...]} depending on the
// code path; both shapes are accepted.
func (c *Client) ListClasses(ctx context.Context, userID int, role domain.Role) ([]domain.Class, error) {
	query := url.Values{}
	if userID != 0 {
		query.Set("userId", strconv.Itoa(userID))
	}
	if role != "" {
		query.Set("role", string(role))
	}
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, "/classes", query, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.Class](raw, "classes")
}

func (c *Client) GetClass(ctx context.Context, id int) (*domain.Class, error) {
	var class domain.Class
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/classes/%d", id), nil, nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

func (c *Client) CreateClass(ctx context.Context, input ClassInput) (*domain.Class, error) {
	var class domain.Class
	if err := c.do(ctx, http.MethodPost, "/classes", nil, input, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

func (c *Client) UpdateClass(ctx context.Context, id int, input ClassInput) (*domain.Class, error) {
	var class domain.Class
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/classes/%d", id), nil, input, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

func (c *Client) DeleteClass(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/classes/%d", id), nil, nil, nil)
}

// Enroll joins studentID into the class identified by joinCode.
func (c *Client) Enroll(ctx context.Context, studentID int, joinCode string) error {
	body := map[string]any{"sinhVienID": studentID, "maThamGia": joinCode}
	return c.do(ctx, http.MethodPost, "/classes/enroll", nil, body, nil)
}

func (c *Client) ListClassStudents(ctx context.Context, classID int) ([]domain.UserProfile, error) {
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/classes/%d/students", classID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.UserProfile](raw, "students")
}

// AddStudent adds a student to a class directly, by email or student number;
// either may be empty.
func (c *Client) AddStudent(ctx context.Context, classID int, email, mssv string) error {
	body := map[string]any{"email": orNil(email), "mssv": orNil(mssv)}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/classes/%d/add-student", classID), nil, body, nil)
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

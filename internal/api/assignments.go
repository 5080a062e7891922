package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"classroomclient/internal/domain"
)

type AssignmentInput struct {
	ClassID     int    `json:"classId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	FilePath    string `json:"filePath,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	MaxScore    int    `json:"maxScore,omitempty"`
}

// ListAssignments returns the class's assignments, optionally filtered by
// type (ASSIGNMENT or MATERIAL).
func (c *Client) ListAssignments(ctx context.Context, classID int, typ domain.AssignmentType) ([]domain.Assignment, error) {
	query := url.Values{}
	if typ != "" {
		query.Set("type", string(typ))
	}
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/assignments/class/%d", classID), query, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.Assignment](raw, "assignments")
}

func (c *Client) GetAssignment(ctx context.Context, id int) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/assignments/%d", id), nil, nil, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *Client) CreateAssignment(ctx context.Context, input AssignmentInput) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := c.do(ctx, http.MethodPost, "/assignments", nil, input, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *Client) UpdateAssignment(ctx context.Context, id int, input AssignmentInput) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/assignments/%d", id), nil, input, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *Client) DeleteAssignment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/assignments/%d", id), nil, nil, nil)
}

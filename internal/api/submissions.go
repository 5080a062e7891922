package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"classroomclient/internal/domain"
)

// SubmissionFilter narrows ListSubmissions; zero fields are omitted. The
// backend requires at least one of the three.
type SubmissionFilter struct {
	TeacherID int
	StudentID int
	ClassID   int
}

type SubmissionInput struct {
	StudentID       int    `json:"studentID"`
	ClassID         int    `json:"lopHocID"`
	AssignmentTitle string `json:"tenBaiTap"`
	FilePath        string `json:"filePath,omitempty"`
}

// ListSubmissions fetches raw submission rows. The result may contain
// duplicate composite keys; pass it through reconcile.Submissions before
// display.
func (c *Client) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	query := url.Values{}
	if filter.TeacherID != 0 {
		query.Set("teacherId", strconv.Itoa(filter.TeacherID))
	}
	if filter.StudentID != 0 {
		query.Set("studentId", strconv.Itoa(filter.StudentID))
	}
	if filter.ClassID != 0 {
		query.Set("classId", strconv.Itoa(filter.ClassID))
	}
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, "/grading", query, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.Submission](raw, "submissions")
}

// CreateSubmission files a new submission. Not idempotent: a double-click
// can persist two rows under the same composite key.
func (c *Client) CreateSubmission(ctx context.Context, input SubmissionInput) (*domain.Submission, error) {
	var sub domain.Submission
	if err := c.do(ctx, http.MethodPost, "/grading", nil, input, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) GradeSubmission(ctx context.Context, submissionID int, score float64, feedback string) (*domain.Submission, error) {
	body := map[string]any{"diem": score, "nhanXet": feedback}
	var sub domain.Submission
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/grading/%d/grade", submissionID), nil, body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CleanupDuplicateSubmissions asks the backend to drop redundant rows. The
// client-side reconciler already hides them; this is the admin's way of
// clearing them for good.
func (c *Client) CleanupDuplicateSubmissions(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/grading/cleanup-duplicates", nil, nil, nil)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"classroomclient/internal/domain"
)

// GetAttendance fetches the sheet for one class and date (YYYY-MM-DD). A
// date with no sheet yet comes back with empty records.
func (c *Client) GetAttendance(ctx context.Context, classID int, date string) (*domain.AttendanceSheet, error) {
	query := url.Values{}
	query.Set("classId", strconv.Itoa(classID))
	query.Set("date", date)
	var sheet domain.AttendanceSheet
	if err := c.do(ctx, http.MethodGet, "/attendance", query, nil, &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (c *Client) ListClassAttendance(ctx context.Context, classID int) ([]domain.AttendanceSheet, error) {
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/attendance/class/%d", classID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.AttendanceSheet](raw, "attendances")
}

// SaveAttendance persists the full sheet for one class and date, replacing
// any previous save.
func (c *Client) SaveAttendance(ctx context.Context, classID int, date string, records []domain.AttendanceRecord) error {
	body := map[string]any{
		"class_id": classID,
		"date":     date,
		"records":  records,
	}
	return c.do(ctx, http.MethodPost, "/attendance", nil, body, nil)
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"classroomclient/internal/domain"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// fakeBackend records the last request and plays back a canned response.
type fakeBackend struct {
	status      int
	contentType string
	body        string

	lastMethod string
	lastPath   string
	lastAuth   string
	lastQuery  string
	lastBody   string
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lastMethod = r.Method
		f.lastPath = r.URL.Path
		f.lastAuth = r.Header.Get("Authorization")
		f.lastQuery = r.URL.RawQuery
		buf := new(strings.Builder)
		_, _ = copyBody(buf, r)
		f.lastBody = buf.String()

		if f.contentType != "" {
			w.Header().Set("Content-Type", f.contentType)
		}
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}
}

func copyBody(dst *strings.Builder, r *http.Request) (int64, error) {
	if r.Body == nil {
		return 0, nil
	}
	buf := make([]byte, 4096)
	var n int64
	for {
		read, err := r.Body.Read(buf)
		dst.Write(buf[:read])
		n += int64(read)
		if err != nil {
			return n, nil
		}
	}
}

type ClientSuite struct {
	suite.Suite
	backend *fakeBackend
	server  *httptest.Server
	client  *Client
}

func (s *ClientSuite) SetupTest() {
	s.backend = &fakeBackend{status: http.StatusOK, contentType: "application/json", body: `{}`}
	s.server = httptest.NewServer(s.backend.handler())
	s.client = New(s.server.URL, staticToken("tok-1"), nil)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestLogin() {
	s.backend.body = `{"token":"issued-token","user":{"id":7,"name":"Alice","email":"a@hust.edu.vn","role":"Student","mssv":"20225001"}}`

	resp, err := s.client.Login(context.Background(), "a@hust.edu.vn", "secret")
	s.Require().NoError(err)
	s.Equal("issued-token", resp.Token)
	s.Equal(domain.RoleStudent, resp.User.Role)
	s.Equal("/api/auth/login", s.backend.lastPath)
	s.Contains(s.backend.lastBody, `"email":"a@hust.edu.vn"`)
}

func (s *ClientSuite) TestBearerTokenAttached() {
	s.backend.body = `[]`
	_, err := s.client.ListUsers(context.Background())
	s.Require().NoError(err)
	s.Equal("Bearer tok-1", s.backend.lastAuth)
}

func (s *ClientSuite) TestNoTokenNoHeader() {
	client := New(s.server.URL, staticToken(""), nil)
	s.backend.body = `[]`
	_, err := client.ListUsers(context.Background())
	s.Require().NoError(err)
	s.Empty(s.backend.lastAuth)
}

func (s *ClientSuite) TestNonJSON500Normalized() {
	s.backend.status = http.StatusInternalServerError
	s.backend.contentType = "text/html"
	s.backend.body = "<html>Internal Server Error</html>"

	_, err := s.client.ListClasses(context.Background(), 1, domain.RoleStudent)
	s.Require().Error(err)

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.NotEmpty(apiErr.Message)
	s.Equal(http.StatusInternalServerError, apiErr.StatusCode)
}

func (s *ClientSuite) TestBackendErrorMessageVerbatim() {
	s.backend.status = http.StatusBadRequest
	s.backend.body = `{"error":"Mã tham gia đã tồn tại!"}`

	_, err := s.client.CreateClass(context.Background(), ClassInput{Name: "Lop 1"})
	s.Require().Error(err)

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("Mã tham gia đã tồn tại!", apiErr.Message)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
}

func (s *ClientSuite) TestBareStringErrorBody() {
	s.backend.status = http.StatusConflict
	s.backend.body = `"duplicate enrollment"`

	err := s.client.Enroll(context.Background(), 7, "ABC123")
	s.Require().Error(err)

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("duplicate enrollment", apiErr.Message)
}

func (s *ClientSuite) TestNonJSON200IsError() {
	s.backend.contentType = "text/plain"
	s.backend.body = "OK"

	_, err := s.client.GetClass(context.Background(), 1)
	s.Require().Error(err)

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Contains(apiErr.Message, "non-JSON")
}

func (s *ClientSuite) TestNetworkFailureNormalized() {
	s.server.Close()

	_, err := s.client.ListUsers(context.Background())
	s.Require().Error(err)

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Contains(apiErr.Message, "cannot connect")
	s.Zero(apiErr.StatusCode)
}

func (s *ClientSuite) TestListClassesBareArray() {
	s.backend.body = `[{"classID":1,"tenLop":"Toán","maThamGia":"ABC","giaoVienID":2}]`

	classes, err := s.client.ListClasses(context.Background(), 7, domain.RoleStudent)
	s.Require().NoError(err)
	s.Require().Len(classes, 1)
	s.Equal("Toán", classes[0].Name)
	s.Contains(s.backend.lastQuery, "userId=7")
	s.Contains(s.backend.lastQuery, "role=Student")
}

func (s *ClientSuite) TestListClassesWrappedObject() {
	s.backend.body = `{"classes":[{"classID":2,"tenLop":"Lý","maThamGia":"XYZ","giaoVienID":3}]}`

	classes, err := s.client.ListClasses(context.Background(), 0, "")
	s.Require().NoError(err)
	s.Require().Len(classes, 1)
	s.Equal(2, classes[0].ID)
}

func (s *ClientSuite) TestListSubmissionsWireFormat() {
	s.backend.body = `[{
		"submissionID": 5, "studentID": 7, "lopHocID": 3, "tenBaiTap": "HW1",
		"diem": 8.5, "nhanXet": "Tốt", "trangThai": "Graded",
		"submittedAt": "2024-01-01T10:00:00", "gradedAt": "2024-01-02T09:00:00Z"
	}]`

	subs, err := s.client.ListSubmissions(context.Background(), SubmissionFilter{StudentID: 7})
	s.Require().NoError(err)
	s.Require().Len(subs, 1)

	sub := subs[0]
	s.Equal(5, sub.ID)
	s.Equal("HW1", sub.AssignmentTitle)
	s.Require().NotNil(sub.Score)
	s.Equal(8.5, *sub.Score)
	s.True(sub.IsGraded())
	s.False(sub.SubmittedAt.IsZero())
	s.False(sub.GradedAt.IsZero())
	s.Contains(s.backend.lastQuery, "studentId=7")
}

func (s *ClientSuite) TestGradeSubmission() {
	s.backend.body = `{"submissionID":5,"trangThai":"Graded","diem":9}`

	sub, err := s.client.GradeSubmission(context.Background(), 5, 9, "good work")
	s.Require().NoError(err)
	s.Equal(domain.SubmissionGraded, sub.Status)
	s.Equal(http.MethodPut, s.backend.lastMethod)
	s.Equal("/api/grading/5/grade", s.backend.lastPath)
	s.Contains(s.backend.lastBody, `"diem":9`)
	s.Contains(s.backend.lastBody, `"nhanXet":"good work"`)
}

func (s *ClientSuite) TestListAssignmentsRoute() {
	s.backend.body = `[{"assignmentID":1,"classID":3,"title":"HW1","type":"ASSIGNMENT"}]`

	assignments, err := s.client.ListAssignments(context.Background(), 3, domain.TypeAssignment)
	s.Require().NoError(err)
	s.Require().Len(assignments, 1)
	s.Equal("/api/assignments/class/3", s.backend.lastPath)
	s.Equal("type=ASSIGNMENT", s.backend.lastQuery)
}

func (s *ClientSuite) TestChangePasswordRoute() {
	err := s.client.ChangePassword(context.Background(), 7, "old-pass", "new-pass")
	s.Require().NoError(err)
	s.Equal(http.MethodPost, s.backend.lastMethod)
	s.Equal("/api/users/7/change-password", s.backend.lastPath)
	s.Contains(s.backend.lastBody, `"oldPassword":"old-pass"`)
}

func (s *ClientSuite) TestUploadFileMultipart() {
	s.backend.body = `{"url":"/api/files/ab12.pdf","filename":"report.pdf"}`

	result, err := s.client.UploadFile(context.Background(), "report.pdf", strings.NewReader("%PDF-1.4"))
	s.Require().NoError(err)
	s.Equal("/api/files/ab12.pdf", result.URL)
	s.Equal("/api/files/upload", s.backend.lastPath)
	s.Contains(s.backend.lastBody, "%PDF-1.4")
	s.Contains(s.backend.lastBody, `filename="report.pdf"`)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

// ── helpers outside the suite ───────────────────────────────────────

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 401, StatusOf(&Error{Message: "no", StatusCode: 401}))
	assert.Zero(t, StatusOf(nil))
	assert.Zero(t, StatusOf(assert.AnError))
}

func TestErrorMessageFallback(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		isJSON bool
		want   string
	}{
		{"ErrorField", `{"error":"boom"}`, true, "boom"},
		{"MessageField", `{"message":"nope"}`, true, "nope"},
		{"BareString", `"plain"`, true, "plain"},
		{"RawText", "gateway timeout", false, "gateway timeout"},
		{"EmptyBody", "", false, "request failed with status 502"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errorMessage([]byte(tc.raw), tc.isJSON, 502))
		})
	}
}

func TestAttendanceSheetDecoding(t *testing.T) {
	backend := &fakeBackend{
		status:      http.StatusOK,
		contentType: "application/json",
		body:        `{"id":1,"classID":3,"date":"2024-03-01","records":"[{\"id\":\"20225001\",\"userId\":7,\"name\":\"Alice\",\"status\":\"absent\"}]"}`,
	}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	client := New(server.URL, staticToken("tok"), nil)
	sheet, err := client.GetAttendance(context.Background(), 3, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, domain.AttendanceAbsent, sheet.Records[0].Status)
	assert.Equal(t, 7, sheet.Records[0].UserID)
}

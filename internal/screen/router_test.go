package screen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"classroomclient/internal/domain"
	"classroomclient/internal/logging"
	"classroomclient/internal/session"
)

type memBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBlob() *memBlob {
	return &memBlob{data: make(map[string][]byte)}
}

func (b *memBlob) Get(_ context.Context, key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	return data, ok
}

func (b *memBlob) Set(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = data
	return nil
}

func (b *memBlob) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func signedInStore(t *testing.T, profile domain.UserProfile) *session.Store {
	t.Helper()
	store := session.NewStore(context.Background(), newMemBlob())
	require.NoError(t, store.SetSession(context.Background(), "tok", profile))
	return store
}

func newTestRouter(t *testing.T, routes map[string]fakeResponse, profile domain.UserProfile) (http.Handler, func()) {
	t.Helper()
	server, client := newFakeBackend(routes)
	store := signedInStore(t, profile)
	logger := logging.New(zap.NewNop())
	h := NewHandler(client, store, NewFeedSet(client), logger)
	return NewRouter(h, store, logger), server.Close
}

func TestSessionGuard(t *testing.T) {
	t.Run("NoSessionIs401WithLoginHint", func(t *testing.T) {
		server, client := newFakeBackend(nil)
		defer server.Close()
		store := session.NewStore(context.Background(), newMemBlob())
		logger := logging.New(zap.NewNop())
		router := NewRouter(NewHandler(client, store, NewFeedSet(client), logger), store, logger)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/grades", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("X-Login-Required"))
	})

	t.Run("CrossRoleIs403WithHomeHint", func(t *testing.T) {
		router, cleanup := newTestRouter(t, nil, domain.UserProfile{
			ID: 7, Name: "Alice", Role: domain.RoleStudent,
		})
		defer cleanup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teacher/dashboard", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "/student/dashboard", rec.Header().Get("X-Role-Home"))
	})

	t.Run("HealthIsPublic", func(t *testing.T) {
		router, cleanup := newTestRouter(t, nil, domain.UserProfile{ID: 7, Role: domain.RoleStudent})
		defer cleanup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestStudentGrades(t *testing.T) {
	// Two rows under the same (student, class, title) key: the graded one
	// must win and the list must come back deduplicated.
	routes := map[string]fakeResponse{
		"GET /api/grading": {http.StatusOK, `[
			{"submissionID":10,"studentID":7,"lopHocID":3,"tenBaiTap":"HW1","trangThai":"Submitted","submittedAt":"2024-03-01T10:00:00"},
			{"submissionID":11,"studentID":7,"lopHocID":3,"tenBaiTap":"HW1","diem":9.0,"trangThai":"Graded","gradedAt":"2024-03-02T08:00:00"},
			{"submissionID":12,"studentID":7,"lopHocID":4,"tenBaiTap":"Lab 1","trangThai":"Pending"}
		]`},
		"GET /api/classes": {http.StatusOK, `[
			{"classID":3,"tenLop":"Giải tích 1","maThamGia":"GT1","giaoVienID":2},
			{"classID":4,"tenLop":"Vật lý","maThamGia":"VL1","giaoVienID":2}
		]`},
	}
	router, cleanup := newTestRouter(t, routes, domain.UserProfile{
		ID: 7, Name: "Alice", Role: domain.RoleStudent,
	})
	defer cleanup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/grades", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Grades []struct {
			ID        int      `json:"submissionID"`
			Title     string   `json:"tenBaiTap"`
			Score     *float64 `json:"diem"`
			ClassName string   `json:"className"`
		} `json:"grades"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Grades, 2)

	assert.Equal(t, 11, resp.Grades[0].ID, "the graded duplicate must win")
	require.NotNil(t, resp.Grades[0].Score)
	assert.Equal(t, 9.0, *resp.Grades[0].Score)
	assert.Equal(t, "Giải tích 1", resp.Grades[0].ClassName)
	assert.Equal(t, "Vật lý", resp.Grades[1].ClassName)
}

func TestLoginFlow(t *testing.T) {
	routes := map[string]fakeResponse{
		"POST /api/auth/login": {http.StatusOK,
			`{"token":"issued","user":{"id":7,"name":"Alice","email":"a@hust.edu.vn","role":"Student"}}`},
	}
	server, client := newFakeBackend(routes)
	defer server.Close()

	store := session.NewStore(context.Background(), newMemBlob())
	logger := logging.New(zap.NewNop())
	router := NewRouter(NewHandler(client, store, NewFeedSet(client), logger), store, logger)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"email":"a@hust.edu.vn","password":"secret"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "issued", store.Token())
	profile, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, domain.RoleStudent, profile.Role)

	// After logout the session guard kicks back in.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.Token())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBackendErrorPassthrough(t *testing.T) {
	routes := map[string]fakeResponse{
		"POST /api/classes/enroll": {http.StatusBadRequest, `{"error":"Mã tham gia không hợp lệ!"}`},
	}
	router, cleanup := newTestRouter(t, routes, domain.UserProfile{ID: 7, Role: domain.RoleStudent})
	defer cleanup()

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"maThamGia":"WRONG"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/student/classes/enroll", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Mã tham gia không hợp lệ!", resp["error"])
}

package screen

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"classroomclient/internal/domain"
	"classroomclient/internal/logging"
	"classroomclient/internal/session"
)

// NewRouter lays out the console's HTTP surface: public auth routes, then
// session-guarded shared routes, then one role-guarded subtree per role.
func NewRouter(h *Handler, store *session.Store, logger *logging.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware(logger))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 10<<20) // 10 MB
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/forgot-password", h.ForgotPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(NewSessionMiddleware(store))

		r.Post("/auth/logout", h.Logout)
		r.Get("/profile", h.Profile)
		r.Put("/profile", h.UpdateProfile)
		r.Put("/profile/password", h.ChangePassword)
		r.Post("/profile/avatar", h.UploadAvatar)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Put("/{id}/read", h.MarkNotificationRead)
			r.Put("/read-all", h.MarkAllNotificationsRead)
		})

		r.Route("/student", func(r chi.Router) {
			r.Use(RequireRole(domain.RoleStudent))
			r.Get("/dashboard", h.StudentDashboard)
			r.Get("/classes", h.StudentClasses)
			r.Post("/classes/enroll", h.EnrollClass)
			r.Get("/classes/{classID}", h.StudentClassDetail)
			r.Post("/classes/{classID}/submit", h.SubmitAssignment)
			r.Get("/grades", h.StudentGrades)
		})

		r.Route("/teacher", func(r chi.Router) {
			r.Use(RequireRole(domain.RoleTeacher))
			r.Get("/dashboard", h.TeacherDashboard)
			r.Get("/classes", h.TeacherClasses)
			r.Post("/classes", h.CreateClass)
			r.Put("/classes/{classID}", h.UpdateClass)
			r.Get("/classes/{classID}", h.TeacherClassDetail)
			r.Post("/classes/{classID}/students", h.AddStudent)
			r.Post("/classes/{classID}/posts", h.CreatePost)
			r.Delete("/posts/{postID}", h.DeletePost)
			r.Post("/classes/{classID}/assignments", h.CreateAssignment)
			r.Delete("/assignments/{assignmentID}", h.DeleteAssignment)
			r.Get("/grading", h.GradingQueue)
			r.Put("/grading/{submissionID}", h.GradeSubmission)
			r.Get("/classes/{classID}/attendance", h.Attendance)
			r.Get("/classes/{classID}/attendance/history", h.AttendanceHistory)
			r.Post("/classes/{classID}/attendance", h.SaveAttendance)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(domain.RoleAdmin))
			r.Get("/dashboard", h.AdminDashboard)
			r.Get("/users", h.AdminListUsers)
			r.Post("/users", h.AdminCreateUser)
			r.Put("/users/{userID}", h.AdminUpdateUser)
			r.Delete("/users/{userID}", h.AdminDeleteUser)
			r.Get("/classes", h.AdminListClasses)
			r.Delete("/classes/{classID}", h.AdminDeleteClass)
			r.Get("/classes/{classID}/submissions", h.AdminSubmissions)
			r.Delete("/submissions/duplicates", h.CleanupDuplicates)
		})
	})

	return r
}

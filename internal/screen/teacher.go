package screen

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"classroomclient/internal/api"
	"classroomclient/internal/ctxdata"
	"classroomclient/internal/domain"
	"classroomclient/internal/reconcile"
)

// TeacherDashboard aggregates the teacher home page: taught classes and how
// much grading is waiting.
func (h *Handler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())

	classes, err := h.api.ListClasses(r.Context(), userID, domain.RoleTeacher)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	subs, err := h.api.ListSubmissions(r.Context(), api.SubmissionFilter{TeacherID: userID})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	subs = reconcile.Submissions(subs)

	waiting := 0
	for _, sub := range subs {
		if !sub.IsGraded() {
			waiting++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"classes":        classes,
		"ungradedCount":  waiting,
		"submissionRows": len(subs),
	})
}

func (h *Handler) TeacherClasses(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	classes, err := h.api.ListClasses(r.Context(), userID, domain.RoleTeacher)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": classes})
}

// CreateClass opens a new class owned by the signed-in teacher.
func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	var input api.ClassInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	input.TeacherID = userID
	class, err := h.api.CreateClass(r.Context(), input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var input api.ClassInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	class, err := h.api.UpdateClass(r.Context(), classID, input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// TeacherClassDetail is the teacher's class page: the class record, its
// roster, its announcement feed and its assignments.
func (h *Handler) TeacherClassDetail(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	class, err := h.api.GetClass(r.Context(), classID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	students, err := h.api.ListClassStudents(r.Context(), classID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	assignments, err := h.api.ListAssignments(r.Context(), classID, "")
	if err != nil {
		writeAPIError(w, err)
		return
	}
	posts, err := h.api.ListClassPosts(r.Context(), classID)
	if err != nil {
		h.log.Warn(r.Context(), "post fetch failed", zap.Int("class_id", classID), zap.Error(err))
		posts = nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"class":       class,
		"students":    students,
		"assignments": assignments,
		"posts":       posts,
	})
}

// AddStudent puts a student on the roster directly, by email or student
// number.
func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Email string `json:"email"`
		MSSV  string `json:"mssv"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" && req.MSSV == "" {
		writeErrorJSON(w, http.StatusBadRequest, "email or mssv is required")
		return
	}
	if err := h.api.AddStudent(r.Context(), classID, req.Email, req.MSSV); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "student added"})
}

// CreatePost publishes an announcement and fans a notification out to every
// student on the roster. Fan-out is best effort: a failed notification is
// logged, the post stands.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Content  string `json:"content"`
		FilePath string `json:"filePath"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Content == "" {
		writeErrorJSON(w, http.StatusBadRequest, "content is required")
		return
	}

	post, err := h.api.CreatePost(r.Context(), classID, userID, req.Content, req.FilePath)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	class, err := h.api.GetClass(r.Context(), classID)
	if err == nil {
		students, err := h.api.ListClassStudents(r.Context(), classID)
		if err != nil {
			h.log.Warn(r.Context(), "roster fetch for fan-out failed", zap.Error(err))
		}
		for _, student := range students {
			_, err := h.api.CreateNotification(r.Context(), student.ID,
				fmt.Sprintf("New post in %s", class.Name), req.Content, string(domain.RoleStudent))
			if err != nil {
				h.log.Warn(r.Context(), "notification fan-out failed",
					zap.Int("student_id", student.ID), zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathInt(r, "postID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.api.DeletePost(r.Context(), postID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// CreateAssignment publishes an assignment or material, with an optional
// attached file.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var input api.AssignmentInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	input.ClassID = classID
	if input.Title == "" {
		writeErrorJSON(w, http.StatusBadRequest, "title is required")
		return
	}
	assignment, err := h.api.CreateAssignment(r.Context(), input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathInt(r, "assignmentID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.api.DeleteAssignment(r.Context(), assignmentID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "assignment deleted"})
}

// GradingQueue returns the teacher's submissions, reconciled to one row per
// assignment per student, ungraded rows first.
func (h *Handler) GradingQueue(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())

	subs, err := h.api.ListSubmissions(r.Context(), api.SubmissionFilter{TeacherID: userID})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	subs = reconcile.Submissions(subs)

	queue := make([]domain.Submission, 0, len(subs))
	done := make([]domain.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.IsGraded() {
			done = append(done, sub)
		} else {
			queue = append(queue, sub)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pending": queue,
		"graded":  done,
	})
}

// GradeSubmission records a score and feedback, then notifies the student.
func (h *Handler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := pathInt(r, "submissionID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Score    *float64 `json:"diem"`
		Feedback string   `json:"nhanXet"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Score == nil {
		writeErrorJSON(w, http.StatusBadRequest, "score is required")
		return
	}

	sub, err := h.api.GradeSubmission(r.Context(), submissionID, *req.Score, req.Feedback)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	_, err = h.api.CreateNotification(r.Context(), sub.StudentID,
		fmt.Sprintf("%s has been graded", sub.AssignmentTitle),
		fmt.Sprintf("Score: %.1f", *req.Score), string(domain.RoleStudent))
	if err != nil {
		h.log.Warn(r.Context(), "grade notification failed",
			zap.Int("student_id", sub.StudentID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, sub)
}

// Attendance returns the sheet for one class and date. A date never taken
// yet comes back with an empty records list the UI prefills from the roster.
func (h *Handler) Attendance(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeErrorJSON(w, http.StatusBadRequest, "date is required")
		return
	}
	sheet, err := h.api.GetAttendance(r.Context(), classID, date)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// AttendanceHistory lists every saved sheet for a class.
func (h *Handler) AttendanceHistory(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	sheets, err := h.api.ListClassAttendance(r.Context(), classID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attendances": sheets})
}

// SaveAttendance persists the full sheet for the date, replacing any
// previous save, and notifies students marked absent.
func (h *Handler) SaveAttendance(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Date    string                    `json:"date"`
		Records []domain.AttendanceRecord `json:"records"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Date == "" {
		writeErrorJSON(w, http.StatusBadRequest, "date is required")
		return
	}
	for _, record := range req.Records {
		if !record.Status.IsValid() {
			writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q for %s", record.Status, record.ID))
			return
		}
	}

	if err := h.api.SaveAttendance(r.Context(), classID, req.Date, req.Records); err != nil {
		writeAPIError(w, err)
		return
	}

	for _, record := range req.Records {
		if record.Status != domain.AttendanceAbsent || record.UserID == 0 {
			continue
		}
		_, err := h.api.CreateNotification(r.Context(), record.UserID,
			"Marked absent", fmt.Sprintf("You were marked absent on %s", req.Date), string(domain.RoleStudent))
		if err != nil {
			h.log.Warn(r.Context(), "absence notification failed",
				zap.Int("student_id", record.UserID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "attendance saved"})
}

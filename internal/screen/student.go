package screen

import (
	"net/http"

	"go.uber.org/zap"

	"classroomclient/internal/api"
	"classroomclient/internal/ctxdata"
	"classroomclient/internal/domain"
	"classroomclient/internal/reconcile"
)

// StudentDashboard aggregates the student home page: enrolled classes plus a
// grade summary over the reconciled submission list.
func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())

	classes, err := h.api.ListClasses(r.Context(), userID, domain.RoleStudent)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	subs, err := h.api.ListSubmissions(r.Context(), api.SubmissionFilter{StudentID: userID})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	subs = reconcile.Submissions(subs)

	graded, pending := 0, 0
	var total float64
	for _, sub := range subs {
		if sub.IsGraded() {
			graded++
			total += *sub.Score
		} else {
			pending++
		}
	}
	var average float64
	if graded > 0 {
		average = total / float64(graded)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"classes":      classes,
		"gradedCount":  graded,
		"pendingCount": pending,
		"averageScore": average,
	})
}

// StudentClasses lists the classes the student is enrolled in.
func (h *Handler) StudentClasses(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	classes, err := h.api.ListClasses(r.Context(), userID, domain.RoleStudent)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": classes})
}

// EnrollClass joins the student into a class by its join code.
func (h *Handler) EnrollClass(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	var req struct {
		JoinCode string `json:"maThamGia"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.JoinCode == "" {
		writeErrorJSON(w, http.StatusBadRequest, "join code is required")
		return
	}
	if err := h.api.Enroll(r.Context(), userID, req.JoinCode); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "enrolled"})
}

// StudentClassDetail is the class page: the class record, its announcement
// feed and its assignment list.
func (h *Handler) StudentClassDetail(w http.ResponseWriter, r *http.Request) {
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
	assignments, err := h.api.ListAssignments(r.Context(), classID, "")
	if err != nil {
		writeAPIError(w, err)
		return
	}

	// The feed is decoration on this page; a post fetch failure must not
	// blank the assignments.
	posts, err := h.api.ListClassPosts(r.Context(), classID)
	if err != nil {
		h.log.Warn(r.Context(), "post fetch failed", zap.Int("class_id", classID), zap.Error(err))
		posts = nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"class":       class,
		"assignments": assignments,
		"posts":       posts,
	})
}

// gradeView is one row on the grades page.
type gradeView struct {
	domain.Submission
	ClassName string `json:"className,omitempty"`
}

// StudentGrades returns the student's reconciled grade list: one row per
// assignment even when the backend holds duplicate submissions.
func (h *Handler) StudentGrades(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())

	subs, err := h.api.ListSubmissions(r.Context(), api.SubmissionFilter{StudentID: userID})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	subs = reconcile.Submissions(subs)

	classNames := make(map[int]string)
	if classes, err := h.api.ListClasses(r.Context(), userID, domain.RoleStudent); err == nil {
		for _, class := range classes {
			classNames[class.ID] = class.Name
		}
	} else {
		h.log.Warn(r.Context(), "class name lookup failed", zap.Error(err))
	}

	views := make([]gradeView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, gradeView{Submission: sub, ClassName: classNames[sub.ClassID]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"grades": views})
}

// SubmitAssignment uploads the student's file and files the submission. The
// follow-up feed refresh is best effort: the submission stands even when the
// refresh fails.
func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	title := r.FormValue("tenBaiTap")
	if title == "" {
		writeErrorJSON(w, http.StatusBadRequest, "assignment title is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	uploaded, err := h.api.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	sub, err := h.api.CreateSubmission(r.Context(), api.SubmissionInput{
		StudentID:       userID,
		ClassID:         classID,
		AssignmentTitle: title,
		FilePath:        uploaded.URL,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	if err := h.feeds.Refresh(r.Context(), userID); err != nil {
		h.log.Warn(r.Context(), "notification refresh after submit failed", zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, sub)
}

package screen

import (
	"net/http"

	"classroomclient/internal/api"
	"classroomclient/internal/domain"
	"classroomclient/internal/reconcile"
)

// AdminDashboard aggregates system-wide user and class counts. Submission
// inspection, with its reconciled counts, lives on AdminSubmissions.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	classes, err := h.api.ListClasses(r.Context(), 0, domain.RoleAdmin)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	students, teachers := 0, 0
	for _, user := range users {
		switch user.Role {
		case domain.RoleStudent:
			students++
		case domain.RoleTeacher:
			teachers++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userCount":    len(users),
		"studentCount": students,
		"teacherCount": teachers,
		"classCount":   len(classes),
	})
}

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var input api.UserInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if !domain.Role(input.Role).IsValid() {
		writeErrorJSON(w, http.StatusBadRequest, "invalid role")
		return
	}
	user, err := h.api.CreateUser(r.Context(), input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "userID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var input api.UserInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.api.UpdateUser(r.Context(), userID, input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "userID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.api.DeleteUser(r.Context(), userID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *Handler) AdminListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.api.ListClasses(r.Context(), 0, domain.RoleAdmin)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": classes})
}

func (h *Handler) AdminDeleteClass(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.api.DeleteClass(r.Context(), classID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "class deleted"})
}

// AdminSubmissions shows the raw and reconciled submission counts so the
// admin can see how many redundant rows the backend holds.
func (h *Handler) AdminSubmissions(w http.ResponseWriter, r *http.Request) {
	classID, err := pathInt(r, "classID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	subs, err := h.api.ListSubmissions(r.Context(), api.SubmissionFilter{ClassID: classID})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	reconciled := reconcile.Submissions(subs)
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions":    reconciled,
		"rawCount":       len(subs),
		"duplicateCount": len(subs) - len(reconciled),
	})
}

// CleanupDuplicates asks the backend to drop redundant submission rows for
// good.
func (h *Handler) CleanupDuplicates(w http.ResponseWriter, r *http.Request) {
	if err := h.api.CleanupDuplicateSubmissions(r.Context()); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "duplicates cleaned up"})
}

package screen

import (
	"net/http"

	"go.uber.org/zap"

	"classroomclient/internal/api"
	"classroomclient/internal/ctxdata"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login signs in against the backend and stores the issued session. The
// response mirrors the backend's {token, user} shape so the UI can keep its
// existing login flow.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeErrorJSON(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if err := h.session.SetSession(r.Context(), resp.Token, resp.User); err != nil {
		h.log.Error(r.Context(), "failed to persist session", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "failed to store session")
		return
	}

	h.log.Info(r.Context(), "user signed in",
		zap.Int("user_id", resp.User.ID),
		zap.String("role", string(resp.User.Role)),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if profile, ok := h.session.Current(); ok {
		h.feeds.Drop(profile.ID)
	}
	if err := h.session.Clear(r.Context()); err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input api.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.api.Register(r.Context(), input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.api.ForgotPassword(r.Context(), req.Email); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "reset email sent"})
}

// Profile returns the signed-in user's cached profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.session.Current()
	if !ok {
		w.Header().Set("X-Login-Required", "true")
		writeErrorJSON(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile edits the signed-in user's record on the backend and keeps
// the session cache in step.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	var input api.UserInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.api.UpdateUser(r.Context(), userID, input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if err := h.session.UpdateProfile(r.Context(), *updated); err != nil {
		h.log.Error(r.Context(), "failed to persist updated profile", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.api.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

// UploadAvatar stores the image through the backend's file service, then
// points the profile at the stored URL.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	result, err := h.api.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	profile, _ := h.session.Current()
	updated, err := h.api.UpdateUser(r.Context(), userID, api.UserInput{
		Name:   profile.Name,
		Email:  profile.Email,
		Role:   string(profile.Role),
		MSSV:   profile.MSSV,
		Avatar: result.URL,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if err := h.session.UpdateProfile(r.Context(), *updated); err != nil {
		h.log.Error(r.Context(), "failed to persist updated profile", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, updated)
}

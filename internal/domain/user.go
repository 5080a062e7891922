package domain

// UserProfile is the user record as the backend returns it. MSSV is the
// institutional student number and is empty for teachers and admins.
type UserProfile struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	MSSV   string `json:"mssv,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

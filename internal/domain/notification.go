package domain

// Notification is an in-app notification row. Notifications are created by
// backend-side actions (a grade posted, an attendance mark), mutated only via
// mark-read, and never deleted by this client.
type Notification struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userID,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   Timestamp `json:"createdAt"`
	Role        string    `json:"role,omitempty"`
}

package domain

// Assignment covers both homework (ASSIGNMENT) and published course files
// (MATERIAL). DueDate is a bare date string, MaxScore is zero for materials.
type Assignment struct {
	ID          int            `json:"assignmentID"`
	ClassID     int            `json:"classID"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Type        AssignmentType `json:"type"`
	FilePath    string         `json:"filePath,omitempty"`
	DueDate     string         `json:"dueDate,omitempty"`
	MaxScore    int            `json:"maxScore,omitempty"`
	CreatedAt   Timestamp      `json:"createdAt"`
	UpdatedAt   Timestamp      `json:"updatedAt"`
}

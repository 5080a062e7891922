package domain

import "time"

// Submission is a raw submission row. The backend allows at most one
// authoritative submission per (student, class, assignment title), but
// retries and double-clicks can persist duplicates, so consumers must not
// assume the key is unique in a fetched list.
type Submission struct {
	ID              int              `json:"submissionID"`
	StudentID       int              `json:"studentID"`
	ClassID         int              `json:"lopHocID"`
	AssignmentTitle string           `json:"tenBaiTap"`
	FilePath        string           `json:"filePath,omitempty"`
	Score           *float64         `json:"diem"`
	Feedback        string           `json:"nhanXet,omitempty"`
	Status          SubmissionStatus `json:"trangThai"`
	SubmittedAt     Timestamp        `json:"submittedAt"`
	GradedAt        Timestamp        `json:"gradedAt"`
}

// SubmissionKey is the composite key a submission is filed under.
type SubmissionKey struct {
	StudentID       int
	ClassID         int
	AssignmentTitle string
}

func (s Submission) Key() SubmissionKey {
	return SubmissionKey{
		StudentID:       s.StudentID,
		ClassID:         s.ClassID,
		AssignmentTitle: s.AssignmentTitle,
	}
}

// IsGraded reports whether the row carries an authoritative grade: status
// Graded together with a non-null score.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionGraded && s.Score != nil
}

// EffectiveTime is the recency used when two rows tie on graded status:
// gradedAt when present, else submittedAt. ok is false when the row has no
// usable timestamp at all.
func (s Submission) EffectiveTime() (time.Time, bool) {
	if !s.GradedAt.IsZero() {
		return s.GradedAt.Time, true
	}
	if !s.SubmittedAt.IsZero() {
		return s.SubmittedAt.Time, true
	}
	return time.Time{}, false
}

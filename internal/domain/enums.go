package domain

// Role is the backend's user role enum.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

func ToRole(role string) Role {
	switch role {
	case "Admin", "admin":
		return RoleAdmin
	case "Teacher", "teacher":
		return RoleTeacher
	case "Student", "student":
		return RoleStudent
	default:
		return ""
	}
}

// SubmissionStatus mirrors the backend's trangThai values.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "Pending"
	SubmissionSubmitted SubmissionStatus = "Submitted"
	SubmissionGraded    SubmissionStatus = "Graded"
	SubmissionLate      SubmissionStatus = "Late"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionPending, SubmissionSubmitted, SubmissionGraded, SubmissionLate:
		return true
	default:
		return false
	}
}

// AssignmentType distinguishes homework from published course material.
type AssignmentType string

const (
	TypeAssignment AssignmentType = "ASSIGNMENT"
	TypeMaterial   AssignmentType = "MATERIAL"
)

func (t AssignmentType) IsValid() bool {
	switch t {
	case TypeAssignment, TypeMaterial:
		return true
	default:
		return false
	}
}

// AttendanceStatus is the per-student mark on an attendance sheet.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	default:
		return false
	}
}

package domain

// Class as returned by the backend. JoinCode (maThamGia) is the code students
// enroll with.
type Class struct {
	ID          int    `json:"classID"`
	Name        string `json:"tenLop"`
	Description string `json:"moTa,omitempty"`
	JoinCode    string `json:"maThamGia"`
	TeacherID   int    `json:"giaoVienID"`
}

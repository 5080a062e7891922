package domain

import "encoding/json"

// AttendanceRecord is one student's mark on a sheet. ID is the display id
// (mssv when known, else the numeric user id as text); UserID is the id
// notifications are addressed to.
type AttendanceRecord struct {
	ID     string           `json:"id"`
	UserID int              `json:"userId,omitempty"`
	Name   string           `json:"name"`
	Status AttendanceStatus `json:"status"`
}

// AttendanceSheet is the persisted sheet for one class and date. The backend
// stores the records list as a JSON string inside the row, so the field
// decodes through rawRecords.
type AttendanceSheet struct {
	ID      int                `json:"id"`
	ClassID int                `json:"classID"`
	Date    string             `json:"date"`
	Records []AttendanceRecord `json:"-"`
}

func (s *AttendanceSheet) UnmarshalJSON(data []byte) error {
	type alias AttendanceSheet
	aux := struct {
		*alias
		RawRecords string `json:"records"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.RawRecords == "" || aux.RawRecords == "null" {
		s.Records = nil
		return nil
	}
	var records []AttendanceRecord
	if err := json.Unmarshal([]byte(aux.RawRecords), &records); err != nil {
		// A sheet with an unreadable records blob is shown empty rather
		// than failing the whole fetch.
		s.Records = nil
		return nil
	}
	s.Records = records
	return nil
}

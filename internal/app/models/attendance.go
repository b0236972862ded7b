package models

// AttendanceRecord is one check-in of a student on a calendar date
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"student_id" db:"student_id"`
	Date      string           `json:"date" db:"attend_date"` // YYYY-MM-DD
	Time      string           `json:"time" db:"attend_time"` // HH:MM
	Status    AttendanceStatus `json:"status" db:"status"`
	Points    int              `json:"points" db:"points"`
}

// TodayEntry is one seat of the daily attendance board
type TodayEntry struct {
	SeatIndex int              `json:"seat_index"`
	StudentID *int64           `json:"student_id"`
	Name      string           `json:"name,omitempty"`
	Skin      string           `json:"skin,omitempty"`
	Title     string           `json:"title,omitempty"`
	Time      string           `json:"time,omitempty"`
	Status    AttendanceStatus `json:"status,omitempty"`
	Attended  bool             `json:"attended"`
}

package models

// Seat is one seat slot joined with its occupant, if any
type Seat struct {
	SeatIndex int     `json:"seat_index" db:"seat_index"`
	StudentID *int64  `json:"student_id" db:"student_id"`
	SID       *int64  `json:"sid"`
	Name      *string `json:"name"`
	Points    *int    `json:"points"`
	Skin      *string `json:"skin"`
	Title     *string `json:"title"`
}

// Empty reports whether nobody sits in the seat
func (s Seat) Empty() bool {
	return s.StudentID == nil
}

// SeatAssignment maps a seat slot to an optional student
type SeatAssignment struct {
	SeatIndex int    `json:"seat_index" db:"seat_index"`
	StudentID *int64 `json:"student_id" db:"student_id"`
}

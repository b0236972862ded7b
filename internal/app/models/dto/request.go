package dto

// AttendanceRequest records today's check-in for a student
type AttendanceRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gt=0"`
}

// BuyRequest purchases a store item for a student
type BuyRequest struct {
	StudentID int64  `json:"studentId" binding:"required,gt=0"`
	ItemKey   string `json:"itemKey" binding:"required"`
}

// SeatInput is one submitted seat slot. A null or zero student_id leaves the seat empty.
type SeatInput struct {
	SeatIndex *int   `json:"seat_index"`
	StudentID *int64 `json:"student_id"`
}

// SeatingRequest replaces the whole seating chart.
// Entries are checked by the seating service after the admin gate.
type SeatingRequest struct {
	AdminPw string      `json:"adminPw"`
	Seating []SeatInput `json:"seating"`
}

// CreateItemRequest adds a store item
type CreateItemRequest struct {
	AdminPw string `json:"adminPw"`
	KeyName string `json:"key_name" binding:"required,max=64"`
	Name    string `json:"name" binding:"required,max=100"`
	Cost    *int   `json:"cost" binding:"required,min=0"`
	Type    string `json:"type" binding:"required,oneof=skin title"`
}

// AdminLoginRequest checks the shared admin passphrase
type AdminLoginRequest struct {
	AdminPw string `json:"adminPw" binding:"required"`
}

// LoginRequest authenticates a student by name and password
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateStudentRequest provisions a student
type CreateStudentRequest struct {
	AdminPw  string `json:"adminPw"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
	Points   int    `json:"points" binding:"min=0"`
}

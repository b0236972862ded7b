package dto

import "github.com/yigit/classpoints/internal/app/models"

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AttendanceResponse is returned by the check-in endpoint.
// Success is false with a message when the student already checked in today.
type AttendanceResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Status  models.AttendanceStatus `json:"status,omitempty"`
	Points  int                     `json:"points,omitempty"`
	Date    string                  `json:"date,omitempty"`
	Time    string                  `json:"time,omitempty"`
}

// BuyResponse is returned by the purchase endpoint
type BuyResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Student *models.Student `json:"student,omitempty"`
}

// LoginResponse carries the logged-in student and a session token
type LoginResponse struct {
	Success   bool            `json:"success"`
	Student   *models.Student `json:"student"`
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expiresIn"`
}

// CreateItemResponse returns the created item
type CreateItemResponse struct {
	Success bool              `json:"success"`
	Item    *models.StoreItem `json:"item"`
}

// CreateStudentResponse returns the provisioned student
type CreateStudentResponse struct {
	Success bool            `json:"success"`
	Student *models.Student `json:"student"`
}

// HealthResponse reports service and store health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

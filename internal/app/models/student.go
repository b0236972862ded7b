package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"` // never serialized
	Points       int    `json:"points" db:"points"`
	Skin         string `json:"skin" db:"skin"`
	Title        string `json:"title" db:"title"`
}

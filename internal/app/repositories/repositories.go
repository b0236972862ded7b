package repositories

import (
	"github.com/yigit/classpoints/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	AttendanceRepository *AttendanceRepository
	StoreRepository      *StoreRepository
	SeatingRepository    *SeatingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Database) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(database),
		AttendanceRepository: NewAttendanceRepository(database),
		StoreRepository:      NewStoreRepository(database),
		SeatingRepository:    NewSeatingRepository(database),
	}
}

// querier returns q, or the pool when q is nil
func querier(database *db.Database, q db.Querier) db.Querier {
	if q == nil {
		return database.DB
	}
	return q
}

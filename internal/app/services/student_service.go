package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/auth"
	"github.com/yigit/classpoints/internal/pkg/validation"
)

// StudentService defines the interface for student operations
type StudentService interface {
	List(ctx context.Context) ([]*models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, adminPw, name, password string, points int) (*models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	hasher      *auth.PasswordHasher
	gate        *AdminGate
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(repos *repositories.Repositories, hasher *auth.PasswordHasher, gate *AdminGate, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: repos.StudentRepository,
		hasher:      hasher,
		gate:        gate,
		logger:      logger,
	}
}

// List returns every student ordered by ID
func (s *studentServiceImpl) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

// Get returns one student
func (s *studentServiceImpl) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, nil, id)
}

// Create provisions a student after the admin gate
func (s *studentServiceImpl) Create(ctx context.Context, adminPw, name, password string, points int) (*models.Student, error) {
	if err := s.gate.Check(adminPw); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if !validation.ValidName(name) {
		return nil, apperrors.NewValidationError("name is required and must be at most 100 characters")
	}
	if !validation.ValidPassword(password) {
		return nil, apperrors.NewValidationError("password is required and must be at most 72 bytes")
	}
	if !validation.NewNumericValidation(points).WithMin(0).Validate() {
		return nil, apperrors.NewValidationError("points must not be negative")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{Name: name, PasswordHash: hash, Points: points}
	if err := s.studentRepo.Create(ctx, nil, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("name", name).Msg("Student provisioned")
	return student, nil
}

package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/auth"
)

// ErrLoginFailed is returned for an unknown name or a wrong password
var ErrLoginFailed = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid name or password")

// Session is a logged-in student with its bearer token
type Session struct {
	Student   *models.Student
	Token     string
	ExpiresIn int
}

// AuthService handles student authentication operations
type AuthService struct {
	studentRepo *repositories.StudentRepository
	hasher      *auth.PasswordHasher
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login verifies a student's name and password and issues a session token
func (s *AuthService) Login(ctx context.Context, name, password string) (*Session, error) {
	student, err := s.studentRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("name", name).Msg("Login attempt for unknown student")
			return nil, ErrLoginFailed
		}
		return nil, err
	}

	if !s.hasher.Check(student.PasswordHash, password) {
		s.logger.Warn().Int64("studentID", student.ID).Msg("Login attempt with wrong password")
		return nil, ErrLoginFailed
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.ID, student.Name)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to generate token")
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student logged in")
	return &Session{Student: student, Token: token, ExpiresIn: expiresIn}, nil
}

// CurrentStudent returns the student a validated token belongs to
func (s *AuthService) CurrentStudent(ctx context.Context, studentID int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, nil, studentID)
}

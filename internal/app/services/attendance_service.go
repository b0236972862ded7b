package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/clock"
	"github.com/yigit/classpoints/internal/pkg/metrics"
)

// MessageAlreadyRecorded is returned when a student checks in twice on one day
const MessageAlreadyRecorded = "Attendance already recorded today"

// AttendancePolicy maps arrival time to a status and a point award.
// Cutoffs are minutes since midnight and are inclusive.
type AttendancePolicy struct {
	OnTimeCutoff   int
	AcceptedCutoff int
	OnTimePoints   int
	AcceptedPoints int
	LatePoints     int
}

// DefaultAttendancePolicy returns the 08:25 / 08:40 policy awarding 100 / 50 / 10
func DefaultAttendancePolicy() AttendancePolicy {
	return AttendancePolicy{
		OnTimeCutoff:   8*60 + 25,
		AcceptedCutoff: 8*60 + 40,
		OnTimePoints:   100,
		AcceptedPoints: 50,
		LatePoints:     10,
	}
}

// NewAttendancePolicy builds a policy from configuration
func NewAttendancePolicy(cfg config.AttendanceConfig) (AttendancePolicy, error) {
	onTime, err := config.ParseClock(cfg.OnTimeCutoff)
	if err != nil {
		return AttendancePolicy{}, err
	}
	accepted, err := config.ParseClock(cfg.AcceptedCutoff)
	if err != nil {
		return AttendancePolicy{}, err
	}
	return AttendancePolicy{
		OnTimeCutoff:   onTime,
		AcceptedCutoff: accepted,
		OnTimePoints:   cfg.OnTimePoints,
		AcceptedPoints: cfg.AcceptedPoints,
		LatePoints:     cfg.LatePoints,
	}, nil
}

// Classify returns the status and points for an arrival at minutes since midnight
func (p AttendancePolicy) Classify(minutes int) (models.AttendanceStatus, int) {
	switch {
	case minutes <= p.OnTimeCutoff:
		return models.StatusOnTime, p.OnTimePoints
	case minutes <= p.AcceptedCutoff:
		return models.StatusAcceptedLate, p.AcceptedPoints
	default:
		return models.StatusLate, p.LatePoints
	}
}

// AttendanceResult is the outcome of a check-in. Recorded is false when the
// student had already checked in today; that is not an error.
type AttendanceResult struct {
	Recorded bool
	Record   *models.AttendanceRecord
	Message  string
}

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	Record(ctx context.Context, studentID int64) (*AttendanceResult, error)
	History(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error)
	Today(ctx context.Context) ([]*models.TodayEntry, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	database       *db.Database
	studentRepo    *repositories.StudentRepository
	attendanceRepo *repositories.AttendanceRepository
	seatingRepo    *repositories.SeatingRepository
	policy         AttendancePolicy
	clock          clock.Clock
	location       *time.Location
	logger         zerolog.Logger
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	database *db.Database,
	repos *repositories.Repositories,
	policy AttendancePolicy,
	clk clock.Clock,
	location *time.Location,
	logger zerolog.Logger,
) AttendanceService {
	if location == nil {
		location = time.Local
	}
	return &attendanceServiceImpl{
		database:       database,
		studentRepo:    repos.StudentRepository,
		attendanceRepo: repos.AttendanceRepository,
		seatingRepo:    repos.SeatingRepository,
		policy:         policy,
		clock:          clk,
		location:       location,
		logger:         logger,
	}
}

func (s *attendanceServiceImpl) now() time.Time {
	return s.clock.Now().In(s.location)
}

// Record checks a student in for today. The insert and the balance increment
// share one transaction, and the unique (student, date) key turns a concurrent
// duplicate into an "already recorded" outcome.
func (s *attendanceServiceImpl) Record(ctx context.Context, studentID int64) (*AttendanceResult, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("studentId is required")
	}

	if _, err := s.studentRepo.GetByID(ctx, nil, studentID); err != nil {
		return nil, err
	}

	now := s.now()
	status, points := s.policy.Classify(now.Hour()*60 + now.Minute())
	record := &models.AttendanceRecord{
		StudentID: studentID,
		Date:      now.Format(models.DateLayout),
		Time:      now.Format(models.TimeLayout),
		Status:    status,
		Points:    points,
	}

	var inserted bool
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		inserted, err = s.attendanceRepo.InsertOnce(ctx, tx, record)
		if err != nil || !inserted {
			return err
		}
		return s.studentRepo.AddPoints(ctx, tx, studentID, points)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to record attendance")
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}

	if !inserted {
		metrics.RecordDuplicateAttendance()
		s.logger.Info().Int64("studentID", studentID).Str("date", record.Date).Msg("Attendance already recorded")
		return &AttendanceResult{Recorded: false, Message: MessageAlreadyRecorded}, nil
	}

	metrics.RecordAttendance(string(status), points)
	s.logger.Info().
		Int64("studentID", studentID).
		Str("date", record.Date).
		Str("time", record.Time).
		Str("status", string(status)).
		Int("points", points).
		Msg("Attendance recorded")

	return &AttendanceResult{Recorded: true, Record: record}, nil
}

// History returns a student's records, newest first
func (s *attendanceServiceImpl) History(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	if _, err := s.studentRepo.GetByID(ctx, nil, studentID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByStudent(ctx, studentID)
}

// Today returns one entry per seat with today's check-in of its occupant
func (s *attendanceServiceImpl) Today(ctx context.Context) ([]*models.TodayEntry, error) {
	stored, err := s.seatingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListByDate(ctx, s.now().Format(models.DateLayout))
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64]*models.AttendanceRecord, len(records))
	for _, rec := range records {
		byStudent[rec.StudentID] = rec
	}

	seats := PadSeats(stored)
	entries := make([]*models.TodayEntry, 0, len(seats))
	for _, seat := range seats {
		entry := &models.TodayEntry{SeatIndex: seat.SeatIndex, StudentID: seat.StudentID}
		if seat.Name != nil {
			entry.Name = *seat.Name
		}
		if seat.Skin != nil {
			entry.Skin = *seat.Skin
		}
		if seat.Title != nil {
			entry.Title = *seat.Title
		}
		if seat.StudentID != nil {
			if rec, ok := byStudent[*seat.StudentID]; ok {
				entry.Attended = true
				entry.Time = rec.Time
				entry.Status = rec.Status
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
)

// SeatingService defines the interface for seating operations
type SeatingService interface {
	List(ctx context.Context) ([]*models.Seat, error)
	Replace(ctx context.Context, adminPw string, entries []dto.SeatInput) error
}

// seatingServiceImpl implements the SeatingService interface
type seatingServiceImpl struct {
	database    *db.Database
	studentRepo *repositories.StudentRepository
	seatingRepo *repositories.SeatingRepository
	gate        *AdminGate
	logger      zerolog.Logger
}

// NewSeatingService creates a new seating service instance
func NewSeatingService(database *db.Database, repos *repositories.Repositories, gate *AdminGate, logger zerolog.Logger) SeatingService {
	return &seatingServiceImpl{
		database:    database,
		studentRepo: repos.StudentRepository,
		seatingRepo: repos.SeatingRepository,
		gate:        gate,
		logger:      logger,
	}
}

// PadSeats returns exactly SeatCount seats ordered by index, filling slots
// missing from stored with empty seats
func PadSeats(stored []*models.Seat) []*models.Seat {
	seats := make([]*models.Seat, models.SeatCount)
	for _, seat := range stored {
		if seat.SeatIndex >= 0 && seat.SeatIndex < models.SeatCount {
			seats[seat.SeatIndex] = seat
		}
	}
	for i := range seats {
		if seats[i] == nil {
			seats[i] = &models.Seat{SeatIndex: i}
		}
	}
	return seats
}

// List returns the full seating chart
func (s *seatingServiceImpl) List(ctx context.Context) ([]*models.Seat, error) {
	stored, err := s.seatingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return PadSeats(stored), nil
}

// buildAssignments validates entries and expands them to a full chart.
// Slots not mentioned are left empty.
func (s *seatingServiceImpl) buildAssignments(ctx context.Context, entries []dto.SeatInput) ([]models.SeatAssignment, error) {
	if entries == nil {
		return nil, apperrors.NewValidationError("seating array is required")
	}
	if len(entries) > models.SeatCount {
		return nil, apperrors.NewValidationError(fmt.Sprintf("seating has %d entries, at most %d allowed", len(entries), models.SeatCount))
	}

	assignments := make([]models.SeatAssignment, models.SeatCount)
	for i := range assignments {
		assignments[i].SeatIndex = i
	}

	seenSeat := make(map[int]bool, len(entries))
	seenStudent := make(map[int64]int, len(entries))
	ids := make([]int64, 0, len(entries))

	for i, entry := range entries {
		if entry.SeatIndex == nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("seating[%d].seat_index is required", i))
		}
		idx := *entry.SeatIndex
		if idx < 0 || idx >= models.SeatCount {
			return nil, apperrors.NewValidationError(fmt.Sprintf("seating[%d].seat_index must be between 0 and %d", i, models.SeatCount-1))
		}
		if seenSeat[idx] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("seat %d appears more than once", idx))
		}
		seenSeat[idx] = true

		if entry.StudentID == nil || *entry.StudentID == 0 {
			continue
		}
		sid := *entry.StudentID
		if sid < 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("seating[%d].student_id must be positive", i))
		}
		if other, dup := seenStudent[sid]; dup {
			return nil, apperrors.NewValidationError(fmt.Sprintf("student %d is assigned to seats %d and %d", sid, other, idx))
		}
		seenStudent[sid] = idx
		ids = append(ids, sid)

		id := sid
		assignments[idx].StudentID = &id
	}

	existing, err := s.studentRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if !existing[id] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("student %d does not exist", id))
		}
	}

	return assignments, nil
}

// Replace swaps the whole chart after the admin gate. Either every seat is
// written or the previous chart stays in place.
func (s *seatingServiceImpl) Replace(ctx context.Context, adminPw string, entries []dto.SeatInput) error {
	if err := s.gate.Check(adminPw); err != nil {
		s.logger.Warn().Msg("Seating replace rejected: admin password mismatch")
		return err
	}

	assignments, err := s.buildAssignments(ctx, entries)
	if err != nil {
		return err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.seatingRepo.Replace(ctx, tx, assignments)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to replace seating")
		return fmt.Errorf("failed to replace seating: %w", err)
	}

	s.logger.Info().Int("assigned", len(entries)).Msg("Seating replaced")
	return nil
}

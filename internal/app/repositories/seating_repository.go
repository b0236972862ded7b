package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/logger"
)

// SeatingRepository handles seat assignments
type SeatingRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewSeatingRepository creates a new SeatingRepository
func NewSeatingRepository(database *db.Database) *SeatingRepository {
	return &SeatingRepository{
		db: database,
		sb: database.Builder(),
	}
}

// List returns stored seats joined with their occupants, ordered by seat index
func (r *SeatingRepository) List(ctx context.Context) ([]*models.Seat, error) {
	query, args, err := r.sb.Select(
		"s.seat_index", "s.student_id", "st.id", "st.name", "st.points", "st.skin", "st.title",
	).
		From("seating s").
		LeftJoin("students st ON s.student_id = st.id").
		OrderBy("s.seat_index").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list seating SQL")
		return nil, fmt.Errorf("failed to build list seating query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list seating query")
		return nil, fmt.Errorf("error listing seating: %w", err)
	}
	defer rows.Close()

	seats := make([]*models.Seat, 0, models.SeatCount)
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.SeatIndex, &s.StudentID, &s.SID, &s.Name, &s.Points, &s.Skin, &s.Title); err != nil {
			return nil, fmt.Errorf("error scanning seat: %w", err)
		}
		seats = append(seats, &s)
	}

	return seats, rows.Err()
}

// Replace deletes every assignment and inserts the given set. Callers run it
// inside a transaction so readers never see a partial chart.
func (r *SeatingRepository) Replace(ctx context.Context, q db.Querier, assignments []models.SeatAssignment) error {
	q = querier(r.db, q)

	query, args, err := r.sb.Delete("seating").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete seating query: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		logger.Error().Err(err).Msg("Error clearing seating")
		return fmt.Errorf("error clearing seating: %w", err)
	}

	if len(assignments) == 0 {
		return nil
	}

	insert := r.sb.Insert("seating").Columns("seat_index", "student_id")
	for _, a := range assignments {
		insert = insert.Values(a.SeatIndex, a.StudentID)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert seating SQL")
		return fmt.Errorf("failed to build insert seating query: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		logger.Error().Err(err).Int("seats", len(assignments)).Msg("Error inserting seating")
		return fmt.Errorf("error inserting seating: %w", err)
	}

	return nil
}

// Count returns the number of stored seat rows
func (r *SeatingRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, r.sb, "seating")
}

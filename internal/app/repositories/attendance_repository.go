package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/logger"
)

var attendanceColumns = []string{"id", "student_id", "attend_date", "attend_time", "status", "points"}

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(database *db.Database) *AttendanceRepository {
	return &AttendanceRepository{
		db: database,
		sb: database.Builder(),
	}
}

// InsertOnce inserts the record unless the student already has one for that date.
// It reports whether a row was written; the unique (student_id, attend_date)
// key makes concurrent duplicates lose here instead of double-awarding.
func (r *AttendanceRepository) InsertOnce(ctx context.Context, q db.Querier, record *models.AttendanceRecord) (bool, error) {
	query, args, err := r.sb.Insert("attendance").
		Columns("student_id", "attend_date", "attend_time", "status", "points").
		Values(record.StudentID, record.Date, record.Time, string(record.Status), record.Points).
		Suffix("ON CONFLICT (student_id, attend_date) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert attendance SQL")
		return false, fmt.Errorf("failed to build insert attendance query: %w", err)
	}

	err = querier(r.db, q).QueryRowContext(ctx, query, args...).Scan(&record.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Int64("studentID", record.StudentID).Str("date", record.Date).Msg("Error executing insert attendance query")
		return false, fmt.Errorf("error inserting attendance: %w", err)
	}

	return true, nil
}

// GetByStudentAndDate returns the record of a student on a date, or nil
func (r *AttendanceRepository) GetByStudentAndDate(ctx context.Context, q db.Querier, studentID int64, date string) (*models.AttendanceRecord, error) {
	query, args, err := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.Eq{"student_id": studentID, "attend_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	records, err := r.list(ctx, querier(r.db, q), query, args)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// ListByStudent returns a student's records, newest date first
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	query, args, err := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("attend_date DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendance SQL")
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	return r.list(ctx, r.db.DB, query, args)
}

// ListByDate returns every record of one calendar date
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	query, args, err := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.Eq{"attend_date": date}).
		OrderBy("student_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendance by date SQL")
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	return r.list(ctx, r.db.DB, query, args)
}

// ListBetween returns every record with from <= date <= to
func (r *AttendanceRepository) ListBetween(ctx context.Context, from, to string) ([]*models.AttendanceRecord, error) {
	query, args, err := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.GtOrEq{"attend_date": from}).
		Where(squirrel.LtOrEq{"attend_date": to}).
		OrderBy("attend_date", "student_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendance range SQL")
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	return r.list(ctx, r.db.DB, query, args)
}

// SumPoints returns the total points a student has earned from attendance
func (r *AttendanceRepository) SumPoints(ctx context.Context, studentID int64) (int, error) {
	query, args, err := r.sb.Select("COALESCE(SUM(points), 0)").
		From("attendance").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sum attendance query: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error summing attendance points")
		return 0, fmt.Errorf("error summing attendance points: %w", err)
	}
	return total, nil
}

func (r *AttendanceRepository) list(ctx context.Context, q db.Querier, query string, args []interface{}) ([]*models.AttendanceRecord, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing attendance query")
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	records := make([]*models.AttendanceRecord, 0)
	for rows.Next() {
		var rec models.AttendanceRecord
		var status string
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Date, &rec.Time, &status, &rec.Points); err != nil {
			return nil, fmt.Errorf("error scanning attendance: %w", err)
		}
		rec.Status = models.AttendanceStatus(status)
		records = append(records, &rec)
	}

	return records, rows.Err()
}

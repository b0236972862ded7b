package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/dberrors"
	"github.com/yigit/classpoints/internal/pkg/logger"
)

var studentColumns = []string{"id", "name", "password_hash", "points", "skin", "title"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.Database) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: database.Builder(),
	}
}

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	var s models.Student
	if err := row.Scan(&s.ID, &s.Name, &s.PasswordHash, &s.Points, &s.Skin, &s.Title); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student and sets its ID
func (r *StudentRepository) Create(ctx context.Context, q db.Querier, student *models.Student) error {
	if student.Skin == "" {
		student.Skin = models.DefaultSkin
	}

	query, args, err := r.sb.Insert("students").
		Columns("name", "password_hash", "points", "skin", "title").
		Values(student.Name, student.PasswordHash, student.Points, student.Skin, student.Title).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = querier(r.db, q).QueryRowContext(ctx, query, args...).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("name", student.Name).Msg("Attempted to create student with duplicate name")
			return apperrors.ErrStudentAlreadyExists
		}
		logger.Error().Err(err).Str("name", student.Name).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(querier(r.db, q).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByName retrieves a student by display name
func (r *StudentRepository) GetByName(ctx context.Context, name string) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by name SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("name", name).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// List retrieves all students ordered by ID
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// Count returns the number of students
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, r.sb, "students")
}

// ExistingIDs returns which of the given IDs belong to a student
func (r *StudentRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := r.sb.Select("id").
		From("students").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student IDs SQL")
		return nil, fmt.Errorf("failed to build student IDs query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student IDs query")
		return nil, fmt.Errorf("error checking student IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning student id: %w", err)
		}
		found[id] = true
	}

	return found, rows.Err()
}

// AddPoints increments a student's balance by delta
func (r *StudentRepository) AddPoints(ctx context.Context, q db.Querier, id int64, delta int) error {
	query, args, err := r.sb.Update("students").
		Set("points", squirrel.Expr("points + ?", delta)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add points SQL")
		return fmt.Errorf("failed to build add points query: %w", err)
	}

	res, err := querier(r.db, q).ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Int("delta", delta).Msg("Error executing add points query")
		return fmt.Errorf("error adding points: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SpendAndEquip debits cost and applies the equip changes in a single
// statement, guarded by the balance. It reports false when the balance was too low.
func (r *StudentRepository) SpendAndEquip(ctx context.Context, q db.Querier, id int64, cost int, equip map[string]interface{}) (bool, error) {
	builder := r.sb.Update("students").
		Set("points", squirrel.Expr("points - ?", cost)).
		SetMap(equip).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"points": cost})

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building spend points SQL")
		return false, fmt.Errorf("failed to build spend points query: %w", err)
	}

	res, err := querier(r.db, q).ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Int("cost", cost).Msg("Error executing spend points query")
		return false, fmt.Errorf("error spending points: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return n == 1, nil
}

func count(ctx context.Context, database *db.Database, sb squirrel.StatementBuilderType, table string) (int, error) {
	query, args, err := sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int
	if err := database.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}

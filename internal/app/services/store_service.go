package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/clock"
	"github.com/yigit/classpoints/internal/pkg/metrics"
	"github.com/yigit/classpoints/internal/pkg/validation"
)

// MessageInsufficientPoints is returned when a student cannot afford an item
const MessageInsufficientPoints = "Insufficient points"

// PurchaseResult is the outcome of a buy. Success is false when the student
// cannot afford the item; that is not an error.
type PurchaseResult struct {
	Success  bool
	Message  string
	Student  *models.Student
	Purchase *models.Purchase
}

// StoreService defines the interface for store operations
type StoreService interface {
	ListItems(ctx context.Context) ([]*models.StoreItem, error)
	AddItem(ctx context.Context, adminPw string, item *models.StoreItem) error
	Buy(ctx context.Context, studentID int64, itemKey string) (*PurchaseResult, error)
	Purchases(ctx context.Context, studentID int64) ([]*models.Purchase, error)
}

// storeServiceImpl implements the StoreService interface
type storeServiceImpl struct {
	database    *db.Database
	studentRepo *repositories.StudentRepository
	storeRepo   *repositories.StoreRepository
	gate        *AdminGate
	clock       clock.Clock
	logger      zerolog.Logger
}

// NewStoreService creates a new store service instance
func NewStoreService(
	database *db.Database,
	repos *repositories.Repositories,
	gate *AdminGate,
	clk clock.Clock,
	logger zerolog.Logger,
) StoreService {
	return &storeServiceImpl{
		database:    database,
		studentRepo: repos.StudentRepository,
		storeRepo:   repos.StoreRepository,
		gate:        gate,
		clock:       clk,
		logger:      logger,
	}
}

// ListItems returns the catalog
func (s *storeServiceImpl) ListItems(ctx context.Context) ([]*models.StoreItem, error) {
	return s.storeRepo.ListItems(ctx)
}

// validateItem validates item data before database operations
func validateItem(item *models.StoreItem) error {
	if item == nil {
		return apperrors.NewValidationError("item is required")
	}
	item.KeyName = strings.TrimSpace(item.KeyName)
	item.Name = strings.TrimSpace(item.Name)

	if item.KeyName == "" {
		return apperrors.NewValidationError("key_name is required")
	}
	if !validation.ValidItemKey(item.KeyName) {
		return apperrors.NewValidationError("key_name must be a lowercase slug of letters, digits, '_' or '-'")
	}
	if !validation.ValidName(item.Name) {
		return apperrors.NewValidationError("name is required and must be at most 100 characters")
	}
	if !validation.NewNumericValidation(item.Cost).WithMin(0).Validate() {
		return apperrors.NewValidationError("cost must not be negative")
	}
	if !item.Type.Valid() {
		return apperrors.NewValidationError("type must be one of: skin title")
	}
	return nil
}

// AddItem inserts a catalog item after the admin gate
func (s *storeServiceImpl) AddItem(ctx context.Context, adminPw string, item *models.StoreItem) error {
	if err := s.gate.Check(adminPw); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.storeRepo.CreateItem(ctx, nil, item); err != nil {
		return err
	}

	s.logger.Info().Str("itemKey", item.KeyName).Int("cost", item.Cost).Str("type", string(item.Type)).Msg("Store item added")
	return nil
}

// equipChanges returns the student columns a purchase of item sets
func equipChanges(item *models.StoreItem) map[string]interface{} {
	switch item.Type {
	case models.ItemTypeSkin:
		return map[string]interface{}{"skin": item.KeyName}
	case models.ItemTypeTitle:
		return map[string]interface{}{"title": item.Name}
	default:
		return nil
	}
}

var errNotAffordable = errors.New("balance below item cost")

// Buy debits the item cost, equips the item and appends the ledger row in one transaction
func (s *storeServiceImpl) Buy(ctx context.Context, studentID int64, itemKey string) (*PurchaseResult, error) {
	if studentID <= 0 || strings.TrimSpace(itemKey) == "" {
		return nil, apperrors.NewValidationError("studentId and itemKey are required")
	}

	student, err := s.studentRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	item, err := s.storeRepo.GetItemByKey(ctx, itemKey)
	if err != nil {
		return nil, err
	}

	insufficient := &PurchaseResult{Success: false, Message: MessageInsufficientPoints}
	if student.Points < item.Cost {
		metrics.RecordPurchase(string(item.Type), "insufficient")
		return insufficient, nil
	}

	purchase := &models.Purchase{
		StudentID:   studentID,
		ItemID:      item.ID,
		PurchasedAt: s.clock.Now().UTC(),
	}

	var updated *models.Student
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// The guarded update keeps a concurrent spend from overdrawing
		ok, err := s.studentRepo.SpendAndEquip(ctx, tx, studentID, item.Cost, equipChanges(item))
		if err != nil {
			return err
		}
		if !ok {
			return errNotAffordable
		}
		if err := s.storeRepo.CreatePurchase(ctx, tx, purchase); err != nil {
			return err
		}
		updated, err = s.studentRepo.GetByID(ctx, tx, studentID)
		return err
	})
	if errors.Is(err, errNotAffordable) {
		metrics.RecordPurchase(string(item.Type), "insufficient")
		return insufficient, nil
	}
	if err != nil {
		metrics.RecordPurchase(string(item.Type), "error")
		s.logger.Error().Err(err).Int64("studentID", studentID).Str("itemKey", itemKey).Msg("Purchase failed")
		return nil, fmt.Errorf("failed to complete purchase: %w", err)
	}

	metrics.RecordPurchase(string(item.Type), "success")
	s.logger.Info().Int64("studentID", studentID).Str("itemKey", itemKey).Int("cost", item.Cost).Msg("Purchase completed")

	return &PurchaseResult{
		Success:  true,
		Message:  fmt.Sprintf("%s purchased", item.Name),
		Student:  updated,
		Purchase: purchase,
	}, nil
}

// Purchases returns a student's purchase history, newest first
func (s *storeServiceImpl) Purchases(ctx context.Context, studentID int64) ([]*models.Purchase, error) {
	if _, err := s.studentRepo.GetByID(ctx, nil, studentID); err != nil {
		return nil, err
	}
	return s.storeRepo.ListPurchasesByStudent(ctx, studentID)
}

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

var itemColumns = []string{"id", "key_name", "name", "cost", "type"}

// StoreRepository handles store items and the purchase ledger
type StoreRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(database *db.Database) *StoreRepository {
	return &StoreRepository{
		db: database,
		sb: database.Builder(),
	}
}

func scanItem(row interface{ Scan(...interface{}) error }) (*models.StoreItem, error) {
	var item models.StoreItem
	var itemType string
	if err := row.Scan(&item.ID, &item.KeyName, &item.Name, &item.Cost, &itemType); err != nil {
		return nil, err
	}
	item.Type = models.ItemType(itemType)
	return &item, nil
}

// ListItems retrieves the catalog ordered by ID
func (r *StoreRepository) ListItems(ctx context.Context) ([]*models.StoreItem, error) {
	query, args, err := r.sb.Select(itemColumns...).
		From("store_items").
		OrderBy("id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list items SQL")
		return nil, fmt.Errorf("failed to build list items query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list items query")
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.StoreItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItemByKey retrieves an item by its unique key
func (r *StoreRepository) GetItemByKey(ctx context.Context, key string) (*models.StoreItem, error) {
	query, args, err := r.sb.Select(itemColumns...).
		From("store_items").
		Where(squirrel.Eq{"key_name": key}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get item SQL")
		return nil, fmt.Errorf("failed to build get item query: %w", err)
	}

	item, err := scanItem(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrItemNotFound
		}
		logger.Error().Err(err).Str("itemKey", key).Msg("Error scanning item row")
		return nil, fmt.Errorf("error retrieving item: %w", err)
	}

	return item, nil
}

// CreateItem inserts a catalog item. A taken key yields ErrItemAlreadyExists.
func (r *StoreRepository) CreateItem(ctx context.Context, q db.Querier, item *models.StoreItem) error {
	query, args, err := r.sb.Insert("store_items").
		Columns("key_name", "name", "cost", "type").
		Values(item.KeyName, item.Name, item.Cost, string(item.Type)).
		Suffix("ON CONFLICT (key_name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create item SQL")
		return fmt.Errorf("failed to build create item query: %w", err)
	}

	err = querier(r.db, q).QueryRowContext(ctx, query, args...).Scan(&item.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("itemKey", item.KeyName).Msg("Attempted to create item with duplicate key")
			return apperrors.ErrItemAlreadyExists
		}
		logger.Error().Err(err).Str("itemKey", item.KeyName).Msg("Error executing create item query")
		return fmt.Errorf("error creating item: %w", err)
	}

	return nil
}

// CountItems returns the number of catalog items
func (r *StoreRepository) CountItems(ctx context.Context) (int, error) {
	return count(ctx, r.db, r.sb, "store_items")
}

// CreatePurchase appends a ledger row
func (r *StoreRepository) CreatePurchase(ctx context.Context, q db.Querier, purchase *models.Purchase) error {
	query, args, err := r.sb.Insert("purchases").
		Columns("student_id", "item_id", "purchased_at").
		Values(purchase.StudentID, purchase.ItemID, purchase.PurchasedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create purchase SQL")
		return fmt.Errorf("failed to build create purchase query: %w", err)
	}

	if err := querier(r.db, q).QueryRowContext(ctx, query, args...).Scan(&purchase.ID); err != nil {
		logger.Error().Err(err).Int64("studentID", purchase.StudentID).Int64("itemID", purchase.ItemID).Msg("Error executing create purchase query")
		return fmt.Errorf("error creating purchase: %w", err)
	}

	return nil
}

// ListPurchasesByStudent returns a student's purchases with item details, newest first
func (r *StoreRepository) ListPurchasesByStudent(ctx context.Context, studentID int64) ([]*models.Purchase, error) {
	query, args, err := r.sb.Select(
		"p.id", "p.student_id", "p.item_id", "p.purchased_at",
		"i.key_name", "i.name", "i.cost", "i.type",
	).
		From("purchases p").
		Join("store_items i ON i.id = p.item_id").
		Where(squirrel.Eq{"p.student_id": studentID}).
		OrderBy("p.purchased_at DESC", "p.id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list purchases SQL")
		return nil, fmt.Errorf("failed to build list purchases query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list purchases query")
		return nil, fmt.Errorf("error listing purchases: %w", err)
	}
	defer rows.Close()

	purchases := make([]*models.Purchase, 0)
	for rows.Next() {
		var p models.Purchase
		var itemType string
		if err := rows.Scan(&p.ID, &p.StudentID, &p.ItemID, &p.PurchasedAt,
			&p.ItemKey, &p.ItemName, &p.ItemCost, &itemType); err != nil {
			return nil, fmt.Errorf("error scanning purchase: %w", err)
		}
		p.ItemType = models.ItemType(itemType)
		purchases = append(purchases, &p)
	}

	return purchases, rows.Err()
}

// SumPurchaseCosts returns the total a student has spent
func (r *StoreRepository) SumPurchaseCosts(ctx context.Context, studentID int64) (int, error) {
	query, args, err := r.sb.Select("COALESCE(SUM(i.cost), 0)").
		From("purchases p").
		Join("store_items i ON i.id = p.item_id").
		Where(squirrel.Eq{"p.student_id": studentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sum purchases query: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error summing purchase costs")
		return 0, fmt.Errorf("error summing purchase costs: %w", err)
	}
	return total, nil
}

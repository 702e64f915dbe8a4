package repository

import (
	"context"
	"errors"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientInventory is returned by IncrementSold when the tier cannot
// absorb the requested quantity.
var ErrInsufficientInventory = errors.New("insufficient inventory")

type TierRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, tiers []models.TicketTier) error
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketTier, error)
	IncrementSold(ctx context.Context, tx *gorm.DB, id uint, quantity int) error
}

type tierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) CreateBatch(ctx context.Context, tx *gorm.DB, tiers []models.TicketTier) error {
	if len(tiers) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&tiers).Error
}

// FindByIDForUpdate reads the tier with SELECT ... FOR UPDATE, holding the row
// lock until tx ends.
func (r *tierRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketTier, error) {
	var tier models.TicketTier
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tier, id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// IncrementSold adds quantity to sold_quantity only if the result stays within
// total_quantity. Exactly one row must change, otherwise the tier is treated as
// sold out.
func (r *tierRepository) IncrementSold(ctx context.Context, tx *gorm.DB, id uint, quantity int) error {
	res := tx.WithContext(ctx).
		Model(&models.TicketTier{}).
		Where("id = ? AND sold_quantity + ? <= total_quantity", id, quantity).
		UpdateColumn("sold_quantity", gorm.Expr("sold_quantity + ?", quantity))
	if res.Error != nil {
		if database.IsCheckViolation(res.Error) {
			return ErrInsufficientInventory
		}
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrInsufficientInventory
	}
	return nil
}

package repository

import (
	"context"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, event *models.Event) error
	FindPublishedByID(ctx context.Context, id uint) (*models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Create inserts the event row only; tiers are written by TierRepository.
func (r *eventRepository) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *eventRepository) FindPublishedByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("price ASC, id ASC")
		}).
		Where("status = ?", models.EventPublished).
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

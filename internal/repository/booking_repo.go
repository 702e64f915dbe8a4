package repository

import (
	"context"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	CreateAttendees(ctx context.Context, tx *gorm.DB, attendees []models.Attendee) error
	SumQuantityByUserAndTier(ctx context.Context, tx *gorm.DB, userID string, tierID uint) (int, error)
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.BookingSummary, error)
	UpdatePaymentStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// WithTx runs fn in a transaction; any returned error rolls everything back.
func (r *bookingRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) CreateAttendees(ctx context.Context, tx *gorm.DB, attendees []models.Attendee) error {
	if len(attendees) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&attendees).Error
}

// SumQuantityByUserAndTier totals the tickets a user already holds for a tier,
// ignoring bookings whose payment failed.
func (r *bookingRepository) SumQuantityByUserAndTier(ctx context.Context, tx *gorm.DB, userID string, tierID uint) (int, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ? AND ticket_tier_id = ? AND payment_status <> ?", userID, tierID, models.PaymentFailed).
		Scan(&total).Error
	return int(total), err
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns the user's booking history, newest first.
func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]models.BookingSummary, error) {
	rows := make([]models.BookingSummary, 0)
	err := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select(`b.id AS booking_id, b.quantity, b.total_price, b.booked_at, b.payment_status,
			t.name AS ticket_type, t.price AS ticket_price,
			e.title AS event_title, e.location AS event_location, e.event_date`).
		Joins("JOIN ticket_tiers AS t ON t.id = b.ticket_tier_id").
		Joins("JOIN events AS e ON e.id = t.event_id").
		Where("b.user_id = ?", userID).
		Order("b.booked_at DESC, b.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdatePaymentStatus moves a booking from one payment status to another and
// reports whether a row changed.
func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	return res.RowsAffected == 1, res.Error
}

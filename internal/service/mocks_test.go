package service

import (
	"context"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn          func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	createAttendeesFn func(ctx context.Context, tx *gorm.DB, attendees []models.Attendee) error
	sumFn             func(ctx context.Context, tx *gorm.DB, userID string, tierID uint) (int, error)
	findByIDFn        func(ctx context.Context, id uint) (*models.Booking, error)
	listFn            func(ctx context.Context, userID string) ([]models.BookingSummary, error)
	updatePaymentFn   func(ctx context.Context, id uint, from, to models.PaymentStatus) (bool, error)
	txErr             error
}

func (m *mockBookingRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	return m.txErr
}
func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, b)
	}
	b.ID = 1
	return nil
}
func (m *mockBookingRepo) CreateAttendees(ctx context.Context, tx *gorm.DB, attendees []models.Attendee) error {
	if m.createAttendeesFn != nil {
		return m.createAttendeesFn(ctx, tx, attendees)
	}
	return nil
}
func (m *mockBookingRepo) SumQuantityByUserAndTier(ctx context.Context, tx *gorm.DB, userID string, tierID uint) (int, error) {
	return m.sumFn(ctx, tx, userID, tierID)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.BookingSummary, error) {
	return m.listFn(ctx, userID)
}
func (m *mockBookingRepo) UpdatePaymentStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (bool, error) {
	return m.updatePaymentFn(ctx, id, from, to)
}

// --- Mock TierRepository ---

type mockTierRepo struct {
	findForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketTier, error)
	incrementFn     func(ctx context.Context, tx *gorm.DB, id uint, quantity int) error
	createBatchFn   func(ctx context.Context, tx *gorm.DB, tiers []models.TicketTier) error
}

func (m *mockTierRepo) CreateBatch(ctx context.Context, tx *gorm.DB, tiers []models.TicketTier) error {
	return m.createBatchFn(ctx, tx, tiers)
}
func (m *mockTierRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketTier, error) {
	return m.findForUpdateFn(ctx, tx, id)
}
func (m *mockTierRepo) IncrementSold(ctx context.Context, tx *gorm.DB, id uint, quantity int) error {
	return m.incrementFn(ctx, tx, id, quantity)
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	findPublishedFn func(ctx context.Context, id uint) (*models.Event, error)
}

func (m *mockEventRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
func (m *mockEventRepo) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.createFn(ctx, tx, event)
}
func (m *mockEventRepo) FindPublishedByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findPublishedFn(ctx, id)
}

// --- Mock Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

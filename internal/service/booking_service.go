package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/clock"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/metrics"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidRequest        = errors.New("ticket_tier_id and at least one attendee are required")
	ErrTierNotFound          = errors.New("ticket tier not found")
	ErrSalesWindowClosed     = errors.New("ticket sales are not open for this tier")
	ErrPerUserLimitExceeded  = errors.New("requested quantity exceeds the per-user limit")
	ErrSoldOut               = errors.New("not enough tickets available")
	ErrInvalidAttendee       = errors.New("invalid attendee")
	ErrStorageFailure        = errors.New("booking could not be completed")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPaymentAlreadySettled = errors.New("payment already settled")
)

// Publisher delivers integration messages; *rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type AttendeeInput struct {
	Name   string
	Email  string
	Mobile string
	Gender string
}

type BookTicketsInput struct {
	UserID       string
	TicketTierID uint
	Attendees    []AttendeeInput
}

type BookingResult struct {
	BookingID     uint
	TotalPrice    decimal.Decimal
	PaymentStatus models.PaymentStatus
}

type BookingService interface {
	BookTickets(ctx context.Context, in BookTicketsInput) (*BookingResult, error)
	ListBookings(ctx context.Context, userID string) ([]models.BookingSummary, error)
	ConfirmPayment(ctx context.Context, bookingID uint, status models.PaymentStatus) error
}

type BookingOptions struct {
	// DeferredPayment inserts bookings as pending until a payment result arrives.
	DeferredPayment bool
	// CumulativeLimit counts the user's earlier bookings for the tier against max_per_user.
	CumulativeLimit bool
	Clock           clock.Clock
	Publisher       Publisher
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	tierRepo    repository.TierRepository
	opts        BookingOptions
}

func NewBookingService(bookingRepo repository.BookingRepository, tierRepo repository.TierRepository, opts BookingOptions) BookingService {
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		tierRepo:    tierRepo,
		opts:        opts,
	}
}

func (s *bookingService) BookTickets(ctx context.Context, in BookTicketsInput) (*BookingResult, error) {
	started := time.Now()
	booking, err := s.bookTickets(ctx, in)
	metrics.ObserveBooking(outcomeOf(err), len(in.Attendees), time.Since(started))
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", dto.BookingCreatedMessage{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		TicketTierID:  booking.TicketTierID,
		Quantity:      booking.Quantity,
		TotalPrice:    booking.TotalPrice,
		PaymentStatus: booking.PaymentStatus,
		BookedAt:      booking.BookedAt,
	})

	return &BookingResult{
		BookingID:     booking.ID,
		TotalPrice:    booking.TotalPrice,
		PaymentStatus: booking.PaymentStatus,
	}, nil
}

func (s *bookingService) bookTickets(ctx context.Context, in BookTicketsInput) (*models.Booking, error) {
	if in.UserID == "" || in.TicketTierID == 0 || len(in.Attendees) == 0 {
		return nil, ErrInvalidRequest
	}
	count := len(in.Attendees)

	var result *models.Booking
	err := s.bookingRepo.WithTx(ctx, func(tx *gorm.DB) error {
		// 1. Lock the tier row; concurrent bookings for the same tier queue here
		tier, err := s.tierRepo.FindByIDForUpdate(ctx, tx, in.TicketTierID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTierNotFound
			}
			return storageFailure("lock tier", err)
		}

		// 2. Sales window
		now := s.opts.Clock.Now()
		if !tier.OnSale(now) {
			return ErrSalesWindowClosed
		}

		// 3. Per-user limit
		held := 0
		if s.opts.CumulativeLimit {
			held, err = s.bookingRepo.SumQuantityByUserAndTier(ctx, tx, in.UserID, tier.ID)
			if err != nil {
				return storageFailure("sum user quantity", err)
			}
		}
		if held+count > tier.MaxPerUser {
			return fmt.Errorf("%w: at most %d per user for %q", ErrPerUserLimitExceeded, tier.MaxPerUser, tier.Name)
		}

		// 4. Remaining inventory
		if count > tier.Available() {
			return ErrSoldOut
		}

		// 5. Attendee details
		attendees, err := buildAttendees(in.Attendees)
		if err != nil {
			return err
		}

		// 6. Conditional increment is the authoritative capacity check
		if err := s.tierRepo.IncrementSold(ctx, tx, tier.ID, count); err != nil {
			if errors.Is(err, repository.ErrInsufficientInventory) {
				return ErrSoldOut
			}
			return storageFailure("increment sold", err)
		}

		booking := &models.Booking{
			UserID:        in.UserID,
			TicketTierID:  tier.ID,
			Quantity:      count,
			TotalPrice:    tier.Price.Mul(decimal.NewFromInt(int64(count))),
			PaymentStatus: s.initialPaymentStatus(),
			BookedAt:      now,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return storageFailure("insert booking", err)
		}

		for i := range attendees {
			attendees[i].BookingID = booking.ID
		}
		if err := s.bookingRepo.CreateAttendees(ctx, tx, attendees); err != nil {
			return storageFailure("insert attendees", err)
		}

		booking.Attendees = attendees
		result = booking
		return nil
	})
	if err != nil {
		if isBookingError(err) {
			return nil, err
		}
		// commit or begin failed
		return nil, storageFailure("transaction", err)
	}

	return result, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID string) ([]models.BookingSummary, error) {
	if userID == "" {
		return nil, ErrInvalidRequest
	}
	rows, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageFailure("list bookings", err)
	}
	if rows == nil {
		rows = []models.BookingSummary{}
	}
	return rows, nil
}

// ConfirmPayment settles a pending booking. Repeating the same result is a
// no-op so redelivered messages are safe.
func (s *bookingService) ConfirmPayment(ctx context.Context, bookingID uint, status models.PaymentStatus) error {
	if bookingID == 0 || (status != models.PaymentCompleted && status != models.PaymentFailed) {
		return ErrInvalidRequest
	}

	updated, err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, models.PaymentPending, status)
	if err != nil {
		return storageFailure("update payment status", err)
	}
	if updated {
		metrics.PaymentResults.WithLabelValues(string(status)).Inc()
		log.Printf("[BookingService] booking %d payment %s", bookingID, status)
		return nil
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return storageFailure("find booking", err)
	}
	if booking.PaymentStatus == status {
		return nil
	}
	return fmt.Errorf("%w: booking %d is %s", ErrPaymentAlreadySettled, bookingID, booking.PaymentStatus)
}

func (s *bookingService) initialPaymentStatus() models.PaymentStatus {
	if s.opts.DeferredPayment {
		return models.PaymentPending
	}
	return models.PaymentCompleted
}

func (s *bookingService) publish(routingKey string, payload any) {
	if s.opts.Publisher == nil {
		return
	}
	if err := s.opts.Publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[BookingService] publish %s failed: %v", routingKey, err)
	}
}

func buildAttendees(in []AttendeeInput) ([]models.Attendee, error) {
	out := make([]models.Attendee, 0, len(in))
	for i, a := range in {
		name := strings.TrimSpace(a.Name)
		email := strings.TrimSpace(a.Email)
		mobile := strings.TrimSpace(a.Mobile)
		gender := models.Gender(strings.ToLower(strings.TrimSpace(a.Gender)))

		if name == "" || email == "" || mobile == "" || gender == "" {
			return nil, fmt.Errorf("%w: attendee %d must have name, email, mobile and gender", ErrInvalidAttendee, i+1)
		}
		if !gender.Valid() {
			return nil, fmt.Errorf("%w: attendee %d has unsupported gender %q", ErrInvalidAttendee, i+1, a.Gender)
		}

		out = append(out, models.Attendee{
			Name:   name,
			Email:  email,
			Phone:  mobile,
			Gender: gender,
		})
	}
	return out, nil
}

// storageFailure logs the raw cause and returns an error that is safe to show
// to callers.
func storageFailure(op string, err error) error {
	log.Printf("[BookingService] %s: %v", op, err)
	return ErrStorageFailure
}

func isBookingError(err error) bool {
	for _, target := range []error{
		ErrInvalidRequest,
		ErrTierNotFound,
		ErrSalesWindowClosed,
		ErrPerUserLimitExceeded,
		ErrSoldOut,
		ErrInvalidAttendee,
		ErrStorageFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeBooked
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrTierNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrSalesWindowClosed):
		return metrics.OutcomeWindowClosed
	case errors.Is(err, ErrPerUserLimitExceeded):
		return metrics.OutcomeLimitExceeded
	case errors.Is(err, ErrSoldOut):
		return metrics.OutcomeSoldOut
	case errors.Is(err, ErrInvalidAttendee):
		return metrics.OutcomeInvalidAttendee
	default:
		return metrics.OutcomeStorageFailure
	}
}

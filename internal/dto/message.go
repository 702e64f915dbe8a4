package dto

import (
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/shopspring/decimal"
)

// BookingCreatedMessage is published on "booking.created" after commit.
type BookingCreatedMessage struct {
	BookingID     uint                 `json:"booking_id"`
	UserID        string               `json:"user_id"`
	TicketTierID  uint                 `json:"ticket_tier_id"`
	Quantity      int                  `json:"quantity"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	BookedAt      time.Time            `json:"booked_at"`
}

// PaymentResultMessage arrives on "payment.*" from the payment collaborator.
type PaymentResultMessage struct {
	BookingID uint                 `json:"booking_id"`
	Status    models.PaymentStatus `json:"status"`
}

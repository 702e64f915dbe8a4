package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

type Booking struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"type:varchar(64);not null;index:idx_bookings_user_booked,priority:1" json:"user_id"`
	TicketTierID  uint            `gorm:"not null;index" json:"ticket_tier_id"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	BookedAt      time.Time       `gorm:"not null;autoCreateTime;index:idx_bookings_user_booked,priority:2" json:"booked_at"`

	TicketTier *TicketTier `gorm:"foreignKey:TicketTierID" json:"ticket_tier,omitempty"`
	Attendees  []Attendee  `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"attendees,omitempty"`
}

// BookingSummary is one row of a user's booking history.
type BookingSummary struct {
	BookingID     uint            `json:"booking_id"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	BookedAt      time.Time       `json:"booked_at"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	TicketType    string          `json:"ticket_type"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	EventTitle    string          `json:"event_title"`
	EventLocation string          `json:"event_location"`
	EventDate     time.Time       `json:"event_date"`
}

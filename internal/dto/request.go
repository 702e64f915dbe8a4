package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type AttendeeRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Gender string `json:"gender"`
}

// BookTicketsRequest only checks shape; attendee fields are validated by the
// booking service so its failure order holds.
type BookTicketsRequest struct {
	TicketTierID uint              `json:"ticket_tier_id" validate:"required"`
	Attendees    []AttendeeRequest `json:"attendees" validate:"required,min=1"`
}

type CreateTierRequest struct {
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	MaxPerUser    int             `json:"max_per_user" validate:"gte=0"`
	TotalQuantity int             `json:"total_quantity" validate:"gte=0"`
	SalesStart    time.Time       `json:"sales_start" validate:"required"`
	SalesEnd      time.Time       `json:"sales_end" validate:"required,gtfield=SalesStart"`
}

type CreateEventRequest struct {
	CategoryID  uint                `json:"category_id"`
	Title       string              `json:"title" validate:"required,max=255"`
	Description string              `json:"description"`
	Location    string              `json:"location" validate:"required,max=255"`
	Address     string              `json:"address" validate:"max=255"`
	EventDate   string              `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime   string              `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string              `json:"end_time" validate:"omitempty,datetime=15:04"`
	Status      string              `json:"status" validate:"omitempty,oneof=draft published"`
	ImageURL    string              `json:"image_url" validate:"omitempty,url"`
	Tiers       []CreateTierRequest `json:"tiers" validate:"required,min=1,dive"`
}

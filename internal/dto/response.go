package dto

import (
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/shopspring/decimal"
)

// Error kinds carried in ErrorResponse.Kind.
const (
	KindInvalidRequest       = "invalid_request"
	KindInvalidAttendee      = "invalid_attendee"
	KindNotFound             = "not_found"
	KindSalesWindowClosed    = "sales_window_closed"
	KindPerUserLimitExceeded = "per_user_limit_exceeded"
	KindSoldOut              = "sold_out"
	KindStorageFailure       = "storage_failure"
	KindUnauthorized         = "unauthorized"
	KindForbidden            = "forbidden"
	KindConflict             = "conflict"
	KindRateLimited          = "rate_limited"
	KindInternal             = "internal_error"
)

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type BookingResponse struct {
	BookingID     uint                 `json:"booking_id"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

type BookingListResponse struct {
	Bookings []models.BookingSummary `json:"bookings"`
}

type TierResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	MaxPerUser    int             `json:"max_per_user"`
	TotalQuantity int             `json:"total_quantity"`
	Available     int             `json:"available"`
	SalesStart    time.Time       `json:"sales_start"`
	SalesEnd      time.Time       `json:"sales_end"`
}

type EventResponse struct {
	ID          uint               `json:"id"`
	OrganizerID string             `json:"organizer_id"`
	CategoryID  uint               `json:"category_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Address     string             `json:"address"`
	EventDate   string             `json:"event_date"`
	StartTime   string             `json:"start_time"`
	EndTime     string             `json:"end_time"`
	Status      models.EventStatus `json:"status"`
	ImageURL    string             `json:"image_url,omitempty"`
	Tiers       []TierResponse     `json:"tiers"`
	CreatedAt   time.Time          `json:"created_at"`
}

func ToTierResponse(t *models.TicketTier) TierResponse {
	return TierResponse{
		ID:            t.ID,
		Name:          t.Name,
		Price:         t.Price,
		MaxPerUser:    t.MaxPerUser,
		TotalQuantity: t.TotalQuantity,
		Available:     t.Available(),
		SalesStart:    t.SalesStart,
		SalesEnd:      t.SalesEnd,
	}
}

func ToTierResponses(tiers []models.TicketTier) []TierResponse {
	resp := make([]TierResponse, len(tiers))
	for i := range tiers {
		resp[i] = ToTierResponse(&tiers[i])
	}
	return resp
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		CategoryID:  e.CategoryID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Address:     e.Address,
		EventDate:   e.EventDate.Format(DateLayout),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Status:      e.Status,
		ImageURL:    e.ImageURL,
		Tiers:       ToTierResponses(e.Tiers),
		CreatedAt:   e.CreatedAt,
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/middleware"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	bookFn    func(ctx context.Context, in service.BookTicketsInput) (*service.BookingResult, error)
	listFn    func(ctx context.Context, userID string) ([]models.BookingSummary, error)
	confirmFn func(ctx context.Context, bookingID uint, status models.PaymentStatus) error
}

func (m *mockBookingService) BookTickets(ctx context.Context, in service.BookTicketsInput) (*service.BookingResult, error) {
	return m.bookFn(ctx, in)
}
func (m *mockBookingService) ListBookings(ctx context.Context, userID string) ([]models.BookingSummary, error) {
	return m.listFn(ctx, userID)
}
func (m *mockBookingService) ConfirmPayment(ctx context.Context, bookingID uint, status models.PaymentStatus) error {
	return m.confirmFn(ctx, bookingID, status)
}

// --- Helpers ---

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, userID, role string) {
	middleware.SetCurrentUser(c, &middleware.Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	})
}

func assertAPIError(t *testing.T, err error, code int, kind string) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	assert.Equal(t, code, he.Code)
	resp, ok := he.Message.(dto.ErrorResponse)
	require.True(t, ok, "expected dto.ErrorResponse message, got %T", he.Message)
	assert.Equal(t, kind, resp.Kind)
	return he
}

const twoAttendees = `{"ticket_tier_id":7,"attendees":[
	{"name":"Ann","email":"ann@example.com","mobile":"0811111111","gender":"female"},
	{"name":"Bo","email":"bo@example.com","mobile":"0822222222","gender":"male"}]}`

// --- Tests ---

func TestBookTickets_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(ctx context.Context, in service.BookTicketsInput) (*service.BookingResult, error) {
			assert.Equal(t, "user-1", in.UserID)
			assert.Equal(t, uint(7), in.TicketTierID)
			require.Len(t, in.Attendees, 2)
			assert.Equal(t, "0822222222", in.Attendees[1].Mobile)
			return &service.BookingResult{
				BookingID:     12,
				TotalPrice:    decimal.RequireFromString("51.00"),
				PaymentStatus: models.PaymentCompleted,
			}, nil
		},
	}

	c, rec := newContext(http.MethodPost, "/api/v1/bookings", twoAttendees)
	withUser(c, "user-1", middleware.RoleUser)

	h := NewBookingHandler(svc)
	err := h.BookTickets(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(12), resp.BookingID)
	assert.True(t, decimal.RequireFromString("51").Equal(resp.TotalPrice))
	assert.Equal(t, models.PaymentCompleted, resp.PaymentStatus)
}

func TestBookTickets_Handler_ShapeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"ticket_tier_id":`},
		{"missing tier", `{"attendees":[{"name":"Ann"}]}`},
		{"empty attendees", `{"ticket_tier_id":7,"attendees":[]}`},
		{"missing attendees", `{"ticket_tier_id":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				bookFn: func(ctx context.Context, in service.BookTicketsInput) (*service.BookingResult, error) {
					t.Fatalf("service must not be called")
					return nil, nil
				},
			}
			c, _ := newContext(http.MethodPost, "/api/v1/bookings", tt.body)
			withUser(c, "user-1", middleware.RoleUser)

			err := NewBookingHandler(svc).BookTickets(c)
			assertAPIError(t, err, http.StatusBadRequest, dto.KindInvalidRequest)
		})
	}
}

func TestBookTickets_Handler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"not found", service.ErrTierNotFound, http.StatusNotFound, dto.KindNotFound},
		{"window closed", service.ErrSalesWindowClosed, http.StatusBadRequest, dto.KindSalesWindowClosed},
		{"per-user limit", fmt.Errorf("%w: at most 2", service.ErrPerUserLimitExceeded), http.StatusBadRequest, dto.KindPerUserLimitExceeded},
		{"sold out", service.ErrSoldOut, http.StatusConflict, dto.KindSoldOut},
		{"invalid attendee", fmt.Errorf("%w: attendee 2", service.ErrInvalidAttendee), http.StatusBadRequest, dto.KindInvalidAttendee},
		{"storage", service.ErrStorageFailure, http.StatusInternalServerError, dto.KindStorageFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				bookFn: func(ctx context.Context, in service.BookTicketsInput) (*service.BookingResult, error) {
					return nil, tt.err
				},
			}
			c, _ := newContext(http.MethodPost, "/api/v1/bookings", twoAttendees)
			withUser(c, "user-1", middleware.RoleUser)

			err := NewBookingHandler(svc).BookTickets(c)
			he := assertAPIError(t, err, tt.code, tt.kind)
			assert.Equal(t, tt.err.Error(), he.Message.(dto.ErrorResponse).Message)
		})
	}
}

func TestBookTickets_Handler_UnknownErrorIsNotLeaked(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(ctx context.Context, in service.BookTicketsInput) (*service.BookingResult, error) {
			return nil, errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")
		},
	}
	c, _ := newContext(http.MethodPost, "/api/v1/bookings", twoAttendees)
	withUser(c, "user-1", middleware.RoleUser)

	err := NewBookingHandler(svc).BookTickets(c)

	he := assertAPIError(t, err, http.StatusInternalServerError, dto.KindStorageFailure)
	assert.NotContains(t, he.Message.(dto.ErrorResponse).Message, "deadlock")
	assert.Error(t, he.Internal)
}

func TestBookTickets_Handler_Unauthenticated(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/v1/bookings", twoAttendees)

	err := NewBookingHandler(&mockBookingService{}).BookTickets(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestListMyBookings_Handler(t *testing.T) {
	bookedAt := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	svc := &mockBookingService{
		listFn: func(ctx context.Context, userID string) ([]models.BookingSummary, error) {
			assert.Equal(t, "user-1", userID)
			return []models.BookingSummary{{
				BookingID:     3,
				Quantity:      2,
				TotalPrice:    decimal.RequireFromString("51.00"),
				BookedAt:      bookedAt,
				PaymentStatus: models.PaymentCompleted,
				TicketType:    "Standard",
				TicketPrice:   decimal.RequireFromString("25.50"),
				EventTitle:    "Jazz Night",
				EventLocation: "Chiang Mai",
			}}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/api/v1/bookings/me", "")
	withUser(c, "user-1", middleware.RoleUser)

	err := NewBookingHandler(svc).ListMyBookings(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Jazz Night", resp.Bookings[0].EventTitle)
	assert.Equal(t, "Standard", resp.Bookings[0].TicketType)
}

func TestListMyBookings_Handler_EmptyIsOK(t *testing.T) {
	svc := &mockBookingService{
		listFn: func(ctx context.Context, userID string) ([]models.BookingSummary, error) {
			return []models.BookingSummary{}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/api/v1/bookings/me", "")
	withUser(c, "user-2", middleware.RoleUser)

	err := NewBookingHandler(svc).ListMyBookings(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}

package handler

import (
	"net/http"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/middleware"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes expects g to be authenticated already. bookMw wraps only
// the booking endpoint (rate limiting).
func (h *BookingHandler) RegisterRoutes(g *echo.Group, bookMw ...echo.MiddlewareFunc) {
	g.POST("", h.BookTickets, bookMw...)
	g.GET("/me", h.ListMyBookings)
}

func (h *BookingHandler) BookTickets(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.BookTicketsRequest
	if err := c.Bind(&req); err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, err.Error())
	}

	attendees := make([]service.AttendeeInput, len(req.Attendees))
	for i, a := range req.Attendees {
		attendees[i] = service.AttendeeInput{
			Name:   a.Name,
			Email:  a.Email,
			Mobile: a.Mobile,
			Gender: a.Gender,
		}
	}

	res, err := h.svc.BookTickets(c.Request().Context(), service.BookTicketsInput{
		UserID:       claims.UserID(),
		TicketTierID: req.TicketTierID,
		Attendees:    attendees,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.BookingResponse{
		BookingID:     res.BookingID,
		TotalPrice:    res.TotalPrice,
		PaymentStatus: res.PaymentStatus,
	})
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	rows, err := h.svc.ListBookings(c.Request().Context(), claims.UserID())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.BookingListResponse{Bookings: rows})
}

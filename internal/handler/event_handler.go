package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/middleware"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(public *echo.Group, organizer *echo.Group) {
	public.GET("/:id", h.GetEvent)
	public.GET("/:id/tiers", h.ListTiers)

	organizer.POST("", h.CreateEvent)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, err.Error())
	}

	eventDate, err := time.Parse(dto.DateLayout, req.EventDate)
	if err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, "event_date must be YYYY-MM-DD")
	}

	tiers := make([]service.CreateTierInput, len(req.Tiers))
	for i, t := range req.Tiers {
		tiers[i] = service.CreateTierInput{
			Name:          t.Name,
			Price:         t.Price,
			MaxPerUser:    t.MaxPerUser,
			TotalQuantity: t.TotalQuantity,
			SalesStart:    t.SalesStart,
			SalesEnd:      t.SalesEnd,
		}
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), claims.UserID(), service.CreateEventInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Address:     req.Address,
		EventDate:   eventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.EventStatus(req.Status),
		ImageURL:    req.ImageURL,
		Tiers:       tiers,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListTiers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, "invalid event id")
	}

	tiers, err := h.svc.ListTiers(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTierResponses(tiers))
}

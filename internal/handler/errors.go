package handler

import (
	"errors"
	"net/http"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	"github.com/labstack/echo/v4"
)

func apiError(code int, kind, msg string) *echo.HTTPError {
	return echo.NewHTTPError(code, dto.ErrorResponse{Kind: kind, Message: msg})
}

// toHTTPError maps service errors to a status and kind. Anything unrecognised
// is reported as a storage failure without its text.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidAttendee):
		return apiError(http.StatusBadRequest, dto.KindInvalidAttendee, err.Error())
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidEvent):
		return apiError(http.StatusBadRequest, dto.KindInvalidRequest, err.Error())
	case errors.Is(err, service.ErrTierNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return apiError(http.StatusNotFound, dto.KindNotFound, err.Error())
	case errors.Is(err, service.ErrSalesWindowClosed):
		return apiError(http.StatusBadRequest, dto.KindSalesWindowClosed, err.Error())
	case errors.Is(err, service.ErrPerUserLimitExceeded):
		return apiError(http.StatusBadRequest, dto.KindPerUserLimitExceeded, err.Error())
	case errors.Is(err, service.ErrSoldOut):
		return apiError(http.StatusConflict, dto.KindSoldOut, err.Error())
	case errors.Is(err, service.ErrPaymentAlreadySettled):
		return apiError(http.StatusConflict, dto.KindConflict, err.Error())
	default:
		return apiError(http.StatusInternalServerError, dto.KindStorageFailure, service.ErrStorageFailure.Error()).SetInternal(err)
	}
}

package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"kind", "message"}. Errors that are
// not *echo.HTTPError are logged and reported as a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := dto.ErrorResponse{Kind: dto.KindInternal, Message: http.StatusText(code)}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case dto.ErrorResponse:
			resp = m
		case string:
			resp = dto.ErrorResponse{Kind: KindForStatus(code), Message: m}
		default:
			resp = dto.ErrorResponse{Kind: KindForStatus(code), Message: http.StatusText(code)}
		}
		if he.Internal != nil {
			log.Printf("[HTTP] %s %s: %v", c.Request().Method, c.Path(), he.Internal)
		}
	} else {
		log.Printf("[HTTP] %s %s: unhandled error: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, resp)
}

func KindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType:
		return dto.KindInvalidRequest
	case http.StatusUnauthorized:
		return dto.KindUnauthorized
	case http.StatusForbidden:
		return dto.KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return dto.KindNotFound
	case http.StatusConflict:
		return dto.KindConflict
	case http.StatusTooManyRequests:
		return dto.KindRateLimited
	default:
		return dto.KindInternal
	}
}

package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/meowtown/backend/internal/repositories"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Message   string    `json:"message,omitempty"`
	Meta      *PageMeta `json:"meta,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError carries a machine-readable error code alongside the message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// PageMeta describes the page of a paginated response.
type PageMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func respondOK(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func respondCreated(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusCreated, APIResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func respondPage(c echo.Context, data any, page, size int, total int64) error {
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta: &PageMeta{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: size,
		},
		Timestamp: time.Now(),
	})
}

// respondError is the single place repository errors become HTTP statuses.
// Unexpected errors are logged with context and surface as a generic 500.
func respondError(c echo.Context, err error) error {
	status, code := http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, repositories.ErrTargetNotFound):
		status, code, message = http.StatusNotFound, "TARGET_NOT_FOUND", "Target does not exist"
	case errors.Is(err, repositories.ErrParentNotFound):
		status, code, message = http.StatusNotFound, "PARENT_NOT_FOUND", "Parent comment does not exist"
	case errors.Is(err, repositories.ErrParentTargetMismatch):
		status, code, message = http.StatusConflict, "PARENT_TARGET_MISMATCH", "Parent comment belongs to a different target"
	case errors.Is(err, repositories.ErrDuplicate):
		status, code, message = http.StatusConflict, "CONFLICT", "Resource already exists"
	case errors.Is(err, repositories.ErrForbidden):
		status, code, message = http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action"
	default:
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			code = codeForStatus(status)
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		} else {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("unhandled error")
		}
	}

	return c.JSON(status, APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		Timestamp: time.Now(),
	})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// parsePaging reads page/size query params. Values that are not integers
// are a 400; integer values outside the sane bounds are clamped.
func parsePaging(c echo.Context) (page, size int, err error) {
	page, size = 1, 20
	if raw := c.QueryParam("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid page parameter")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid size parameter")
		}
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size, nil
}

package http

import (
	"errors"
	"net/http"

	"workorders/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		switch httpErr.Code {
		case http.StatusUnauthorized:
			return httpErr.Code, "unauthenticated"
		case http.StatusNotFound:
			return httpErr.Code, "not_found"
		case http.StatusMethodNotAllowed:
			return httpErr.Code, "method_not_allowed"
		default:
			return httpErr.Code, "bad_request"
		}
	case errors.As(err, &validationErrs):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrActorIsUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, errs.ErrTransitionIsInvalid), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, errs.ErrStateIsInvalid):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, errs.ErrDeadlineIsInvalid):
		return http.StatusConflict, "invalid_deadline"
	case errors.Is(err, errs.ErrPaymentIsNotEligible):
		return http.StatusConflict, "not_eligible"
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity, "validation_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func errorResponse(err error) ErrorResponse {
	code, kind := classify(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	switch {
	case code == http.StatusInternalServerError:
		message = http.StatusText(code)
	case errors.As(err, &httpErr):
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	return ErrorResponse{Code: code, Kind: kind, Message: message}
}

// handleError is the echo error handler. Server errors are logged with their
// cause and answered with a generic message.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := errorResponse(err)
	if resp.Code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.Code)
	} else {
		err = c.JSON(resp.Code, resp)
	}
	if err != nil {
		s.logger.ErrorContext(c.Request().Context(), "writing error response failed", "error", err)
	}
}

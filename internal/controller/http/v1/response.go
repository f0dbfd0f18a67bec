package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/antonkor/logboard/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func errorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, errorBody{Error: message})
}

// serviceErrorResponse maps service errors to status codes. Auth
// failures get a generic message so the response never reveals whether
// the account exists.
func serviceErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidLevel),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSelfAction),
		errors.Is(err, service.ErrTestUsersExist):
		return errorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return errorResponse(c, http.StatusUnauthorized, "authentication failed")

	case errors.Is(err, service.ErrDemoDisabled):
		return errorResponse(c, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound):
		return errorResponse(c, http.StatusNotFound, err.Error())
	}

	log.WithField("error", err).Error("Unhandled service error")
	return errorResponse(c, http.StatusInternalServerError, "internal server error")
}

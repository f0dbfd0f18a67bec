package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/service"
)

const principalKey = "principal"

type authMiddleware struct {
	authService service.Auth
}

// TokenAuth validates the bearer token and stores the resulting
// principal on the request context. Handlers receive the identity
// explicitly instead of reading ambient session state.
func (m *authMiddleware) TokenAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errorResponse(c, http.StatusUnauthorized, "authentication required")
		}

		principal, err := m.authService.Validate(c.Request().Context(), token)
		if err != nil {
			return errorResponse(c, http.StatusUnauthorized, "authentication failed")
		}

		c.Set(principalKey, principal)
		return next(c)
	}
}

// AdminOnly denies non-admins with an authorization error, never a
// silent empty result.
func (m *authMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !currentPrincipal(c).IsAdmin() {
			return errorResponse(c, http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func currentPrincipal(c echo.Context) domain.Principal {
	principal, _ := c.Get(principalKey).(domain.Principal)
	return principal
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

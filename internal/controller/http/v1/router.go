package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/antonkor/logboard/internal/service"
)

// ConfigureRouter wires the REST API. Everything except /login_check
// and /healthz sits behind the bearer-token middleware; admin routes
// additionally require the ROLE_ADMIN role.
func ConfigureRouter(handler *echo.Echo, services *service.Services) {
	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestID())

	handler.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := &authMiddleware{authService: services.Auth}

	protected := handler.Group("", auth.TokenAuth)

	newAuthRoutes(handler, protected, services.Auth, auth.AdminOnly)
	newLogRoutes(protected, services.Log, services.Files, auth.AdminOnly)
	newStatsRoutes(protected, services.Stats)
	newUserRoutes(protected, services.User, auth.AdminOnly)
}

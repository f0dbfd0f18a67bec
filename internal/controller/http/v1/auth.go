package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	logginghelper "github.com/antonkor/logboard/internal/controller/common/logging"
	"github.com/antonkor/logboard/internal/service"
)

type authRoutes struct {
	authService service.Auth
}

func newAuthRoutes(e *echo.Echo, protected *echo.Group, as service.Auth, admin echo.MiddlewareFunc) {
	r := &authRoutes{authService: as}

	e.POST("/login_check", r.login)
	protected.POST("/token/refresh", r.refresh)
	protected.GET("/auth/stats", r.stats, admin)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (r *authRoutes) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	token, user, err := r.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		logginghelper.LogAuthFailure(req.Email, c.RealIP())
		return serviceErrorResponse(c, err)
	}

	logginghelper.LogAuthSuccess(user.Email, c.RealIP())
	return c.JSON(http.StatusOK, tokenResponse{Token: token, User: toUserResponse(user)})
}

func (r *authRoutes) refresh(c echo.Context) error {
	token, user, err := r.authService.Refresh(c.Request().Context(), currentPrincipal(c))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token, User: toUserResponse(user)})
}

func (r *authRoutes) stats(c echo.Context) error {
	stats, err := r.authService.Stats(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{
		"totalUsers":        stats.TotalUsers,
		"activeUsers":       stats.ActiveUsers,
		"adminUsers":        stats.AdminUsers,
		"recentLogins":      stats.RecentLogins,
		"newUsersThisMonth": stats.NewUsersThisMonth,
	})
}

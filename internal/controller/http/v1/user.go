package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonkor/logboard/internal/service"
)

type userRoutes struct {
	userService service.User
}

func newUserRoutes(g *echo.Group, us service.User, admin echo.MiddlewareFunc) {
	r := &userRoutes{userService: us}

	g.GET("/user/profile", r.profile)
	g.PUT("/user/profile", r.updateProfile)

	users := g.Group("/users", admin)
	users.GET("", r.list)
	users.POST("", r.create)
	users.GET("/:id", r.show)
	users.PUT("/:id", r.update)
	users.DELETE("/:id", r.delete)
	users.PATCH("/:id/toggle-status", r.toggleStatus)
	users.POST("/seed-test", r.seedTestUsers)
}

func (r *userRoutes) list(c echo.Context) error {
	users, err := r.userService.List(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	data := make([]userResponse, 0, len(users))
	for _, user := range users {
		data = append(data, toUserResponse(user))
	}
	return c.JSON(http.StatusOK, data)
}

func (r *userRoutes) show(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user id")
	}

	user, err := r.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

type createUserRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
	IsActive   *bool    `json:"isActive"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Phone      string   `json:"phone"`
}

func (r *userRoutes) create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := r.userService.Create(c.Request().Context(), service.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Roles:      req.Roles,
		IsActive:   req.IsActive,
		Name:       req.Name,
		Department: req.Department,
		Phone:      req.Phone,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

type updateUserRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
	IsActive   *bool    `json:"isActive"`
	Name       *string  `json:"name"`
	Department *string  `json:"department"`
	Phone      *string  `json:"phone"`
}

func (r *userRoutes) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := r.userService.Update(c.Request().Context(), currentPrincipal(c).UserID, id, service.UpdateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Roles:      req.Roles,
		IsActive:   req.IsActive,
		Name:       req.Name,
		Department: req.Department,
		Phone:      req.Phone,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (r *userRoutes) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user id")
	}

	if err := r.userService.Delete(c.Request().Context(), currentPrincipal(c).UserID, id); err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (r *userRoutes) toggleStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user id")
	}

	user, err := r.userService.ToggleStatus(c.Request().Context(), currentPrincipal(c).UserID, id)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (r *userRoutes) profile(c echo.Context) error {
	user, err := r.userService.GetByID(c.Request().Context(), currentPrincipal(c).UserID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]userResponse{"user": toUserResponse(user)})
}

type updateProfileRequest struct {
	Name            *string `json:"name"`
	Department      *string `json:"department"`
	Phone           *string `json:"phone"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

func (r *userRoutes) updateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := r.userService.UpdateProfile(c.Request().Context(), currentPrincipal(c).UserID, service.UpdateProfileInput{
		Name:            req.Name,
		Department:      req.Department,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]userResponse{"user": toUserResponse(user)})
}

func (r *userRoutes) seedTestUsers(c echo.Context) error {
	users, err := r.userService.CreateTestUsers(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	data := make([]userResponse, 0, len(users))
	for _, user := range users {
		data = append(data, toUserResponse(user))
	}
	return c.JSON(http.StatusCreated, data)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// UserHandler serves the /api/users collection.
type UserHandler struct {
	Users *repository.UserRepo
}

// NewUserHandler constructs a UserHandler and panics if the repository is nil.
func NewUserHandler(users *repository.UserRepo) *UserHandler {
	if users == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users}
}

// userRequest is the payload accepted by create and update. Email must
// be well formed; the id and created_at are server-controlled and
// ignored if sent.
type userRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Team  string `json:"team"`
}

// List handles GET /api/users and returns every user.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /api/users. A duplicate email yields 409.
func (h *UserHandler) Create(c echo.Context) error {
	var body userRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and a valid email are required"})
	}
	user := &model.User{
		Name:  strings.TrimSpace(body.Name),
		Email: strings.TrimSpace(body.Email),
		Team:  strings.TrimSpace(body.Team),
	}
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, user)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	user, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id, rewriting name, email and team.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body userRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and a valid email are required"})
	}
	user := &model.User{
		ID:    id,
		Name:  strings.TrimSpace(body.Name),
		Email: strings.TrimSpace(body.Email),
		Team:  strings.TrimSpace(body.Team),
	}
	if err := h.Users.Update(c.Request().Context(), user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, map[string]string{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Users.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ByTeam handles GET /api/users/by_team?team=. A missing team
// parameter is a 400; a team nobody belongs to is an empty list.
func (h *UserHandler) ByTeam(c echo.Context) error {
	team := c.QueryParam("team")
	if team == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Team"))
	}
	users, err := h.Users.ListByTeam(c.Request().Context(), team)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, users)
}

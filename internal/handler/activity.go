package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/queue"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/service"
)

// ActivityHandler serves the /api/activities collection. A successful
// create additionally publishes an activity.logged event; publishing
// is best effort and never affects the HTTP response.
type ActivityHandler struct {
	Activities *repository.ActivityRepo
}

// NewActivityHandler constructs an ActivityHandler and panics if the
// repository is nil.
func NewActivityHandler(activities *repository.ActivityRepo) *ActivityHandler {
	if activities == nil {
		panic("nil repository passed to NewActivityHandler")
	}
	return &ActivityHandler{Activities: activities}
}

type activityRequest struct {
	UserEmail    string    `json:"user_email" validate:"required,email"`
	ActivityType string    `json:"activity_type" validate:"required"`
	Duration     int       `json:"duration" validate:"gt=0"`
	Calories     int       `json:"calories" validate:"gte=0"`
	Date         time.Time `json:"date" validate:"required"`
}

// List handles GET /api/activities.
func (h *ActivityHandler) List(c echo.Context) error {
	activities, err := h.Activities.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, activities)
}

// Create handles POST /api/activities. The referenced user email is
// not checked against the users collection; orphaned references are
// tolerated by design.
func (h *ActivityHandler) Create(c echo.Context) error {
	var body activityRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_email, activity_type, a positive duration and a date are required"})
	}
	activity := &model.Activity{
		UserEmail:    strings.TrimSpace(body.UserEmail),
		ActivityType: strings.TrimSpace(body.ActivityType),
		Duration:     body.Duration,
		Calories:     body.Calories,
		Date:         body.Date,
	}
	if err := h.Activities.Create(c.Request().Context(), activity); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create activity"})
	}

	// Publish off the request context so a fast client disconnect does
	// not cancel the broker write. Failures are logged by the publisher
	// and otherwise ignored.
	go func(a model.Activity) {
		_ = service.PublishActivityLogged(context.Background(), queue.ActivityLoggedEvent{
			ActivityID:   a.ID,
			UserEmail:    a.UserEmail,
			ActivityType: a.ActivityType,
			Duration:     a.Duration,
			Calories:     a.Calories,
			Date:         a.Date.Format(time.RFC3339),
			LoggedAt:     a.CreatedAt.Format(time.RFC3339),
		})
	}(*activity)

	return c.JSON(http.StatusCreated, activity)
}

// Get handles GET /api/activities/:id.
func (h *ActivityHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	activity, err := h.Activities.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, activity)
}

// Update handles PUT /api/activities/:id.
func (h *ActivityHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body activityRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_email, activity_type, a positive duration and a date are required"})
	}
	activity := &model.Activity{
		ID:           id,
		UserEmail:    strings.TrimSpace(body.UserEmail),
		ActivityType: strings.TrimSpace(body.ActivityType),
		Duration:     body.Duration,
		Calories:     body.Calories,
		Date:         body.Date,
	}
	if err := h.Activities.Update(c.Request().Context(), activity); err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, activity)
}

// Delete handles DELETE /api/activities/:id.
func (h *ActivityHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Activities.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ByUser handles GET /api/activities/by_user?email=, most recent first.
func (h *ActivityHandler) ByUser(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Email"))
	}
	activities, err := h.Activities.ListByUserEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, activities)
}

// ByType handles GET /api/activities/by_type?type=, most recent first.
func (h *ActivityHandler) ByType(c echo.Context) error {
	activityType := c.QueryParam("type")
	if activityType == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Type"))
	}
	activities, err := h.Activities.ListByType(c.Request().Context(), activityType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, activities)
}

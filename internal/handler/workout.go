package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/service"
)

// WorkoutHandler serves the /api/workouts catalog and the
// recommendation endpoint.
type WorkoutHandler struct {
	Workouts    *repository.WorkoutRepo
	Recommender *service.RecommendationService
}

// NewWorkoutHandler constructs a WorkoutHandler and panics on nil
// dependencies.
func NewWorkoutHandler(workouts *repository.WorkoutRepo, recommender *service.RecommendationService) *WorkoutHandler {
	if workouts == nil || recommender == nil {
		panic("nil dependency passed to NewWorkoutHandler")
	}
	return &WorkoutHandler{Workouts: workouts, Recommender: recommender}
}

type workoutRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	ActivityType     string `json:"activity_type" validate:"required"`
	Duration         int    `json:"duration" validate:"gt=0"`
	Difficulty       string `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	CaloriesEstimate int    `json:"calories_estimate" validate:"gte=0"`
}

// List handles GET /api/workouts.
func (h *WorkoutHandler) List(c echo.Context) error {
	workouts, err := h.Workouts.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, workouts)
}

// Create handles POST /api/workouts.
func (h *WorkoutHandler) Create(c echo.Context) error {
	var body workoutRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name, activity_type, a positive duration and a difficulty of Easy, Medium or Hard are required"})
	}
	workout := &model.Workout{
		Name:             strings.TrimSpace(body.Name),
		Description:      body.Description,
		ActivityType:     strings.TrimSpace(body.ActivityType),
		Duration:         body.Duration,
		Difficulty:       body.Difficulty,
		CaloriesEstimate: body.CaloriesEstimate,
	}
	if err := h.Workouts.Create(c.Request().Context(), workout); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create workout"})
	}
	return c.JSON(http.StatusCreated, workout)
}

// Get handles GET /api/workouts/:id.
func (h *WorkoutHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	workout, err := h.Workouts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "workout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, workout)
}

// Update handles PUT /api/workouts/:id.
func (h *WorkoutHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body workoutRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name, activity_type, a positive duration and a difficulty of Easy, Medium or Hard are required"})
	}
	workout := &model.Workout{
		ID:               id,
		Name:             strings.TrimSpace(body.Name),
		Description:      body.Description,
		ActivityType:     strings.TrimSpace(body.ActivityType),
		Duration:         body.Duration,
		Difficulty:       body.Difficulty,
		CaloriesEstimate: body.CaloriesEstimate,
	}
	if err := h.Workouts.Update(c.Request().Context(), workout); err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "workout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, workout)
}

// Delete handles DELETE /api/workouts/:id.
func (h *WorkoutHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Workouts.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "workout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ByType handles GET /api/workouts/by_type?type=.
func (h *WorkoutHandler) ByType(c echo.Context) error {
	activityType := c.QueryParam("type")
	if activityType == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Type"))
	}
	workouts, err := h.Workouts.ListByType(c.Request().Context(), activityType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, workouts)
}

// ByDifficulty handles GET /api/workouts/by_difficulty?difficulty=.
func (h *WorkoutHandler) ByDifficulty(c echo.Context) error {
	difficulty := c.QueryParam("difficulty")
	if difficulty == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Difficulty"))
	}
	workouts, err := h.Workouts.ListByDifficulty(c.Request().Context(), difficulty)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, workouts)
}

// Recommended handles GET /api/workouts/recommended?email=. Users with
// no history get the Easy catalog; everyone else gets workouts for
// their most frequent activity type.
func (h *WorkoutHandler) Recommended(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Email"))
	}
	workouts, err := h.Recommender.Recommend(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, workouts)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/service"
)

// defaultTopLimit is how many entries /api/leaderboard/top returns
// when no limit parameter is given.
const defaultTopLimit = 10

// LeaderboardHandler serves the /api/leaderboard collection. Listing
// endpoints always return rank-ascending order; Refresh rebuilds the
// snapshot from scratch.
type LeaderboardHandler struct {
	Entries   *repository.LeaderboardRepo
	Refresher *service.LeaderboardService
}

// NewLeaderboardHandler constructs a LeaderboardHandler and panics on
// nil dependencies.
func NewLeaderboardHandler(entries *repository.LeaderboardRepo, refresher *service.LeaderboardService) *LeaderboardHandler {
	if entries == nil || refresher == nil {
		panic("nil dependency passed to NewLeaderboardHandler")
	}
	return &LeaderboardHandler{Entries: entries, Refresher: refresher}
}

type leaderboardEntryRequest struct {
	UserEmail       string `json:"user_email" validate:"required,email"`
	UserName        string `json:"user_name" validate:"required"`
	Team            string `json:"team"`
	TotalCalories   int    `json:"total_calories" validate:"gte=0"`
	TotalActivities int    `json:"total_activities" validate:"gte=0"`
	Rank            int    `json:"rank" validate:"gt=0"`
}

// List handles GET /api/leaderboard, rank ascending.
func (h *LeaderboardHandler) List(c echo.Context) error {
	entries, err := h.Entries.ListRanked(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// Create handles POST /api/leaderboard. Manually created entries are
// overwritten by the next refresh; the endpoint exists for parity with
// the other collections.
func (h *LeaderboardHandler) Create(c echo.Context) error {
	var body leaderboardEntryRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_email, user_name and a positive rank are required"})
	}
	entry := &model.LeaderboardEntry{
		UserEmail:       strings.TrimSpace(body.UserEmail),
		UserName:        strings.TrimSpace(body.UserName),
		Team:            strings.TrimSpace(body.Team),
		TotalCalories:   body.TotalCalories,
		TotalActivities: body.TotalActivities,
		Rank:            body.Rank,
	}
	if err := h.Entries.Create(c.Request().Context(), entry); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create leaderboard entry"})
	}
	return c.JSON(http.StatusCreated, entry)
}

// Get handles GET /api/leaderboard/:id.
func (h *LeaderboardHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	entry, err := h.Entries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLeaderboardEntryNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "leaderboard entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entry)
}

// Update handles PUT /api/leaderboard/:id.
func (h *LeaderboardHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body leaderboardEntryRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_email, user_name and a positive rank are required"})
	}
	entry := &model.LeaderboardEntry{
		ID:              id,
		UserEmail:       strings.TrimSpace(body.UserEmail),
		UserName:        strings.TrimSpace(body.UserName),
		Team:            strings.TrimSpace(body.Team),
		TotalCalories:   body.TotalCalories,
		TotalActivities: body.TotalActivities,
		Rank:            body.Rank,
	}
	if err := h.Entries.Update(c.Request().Context(), entry); err != nil {
		if errors.Is(err, repository.ErrLeaderboardEntryNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "leaderboard entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/leaderboard/:id.
func (h *LeaderboardHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Entries.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrLeaderboardEntryNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "leaderboard entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Top handles GET /api/leaderboard/top?limit=N, defaulting to 10. A
// malformed or non-positive limit falls back to the default rather
// than erroring, matching the lenient behavior of the list endpoints.
func (h *LeaderboardHandler) Top(c echo.Context) error {
	limit := defaultTopLimit
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := h.Entries.Top(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// ByTeam handles GET /api/leaderboard/by_team?team=. Ranks shown are
// global, so team views contain gaps.
func (h *LeaderboardHandler) ByTeam(c echo.Context) error {
	team := c.QueryParam("team")
	if team == "" {
		return c.JSON(http.StatusBadRequest, missingParam("Team"))
	}
	entries, err := h.Entries.ListByTeam(c.Request().Context(), team)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// Refresh handles POST /api/leaderboard/refresh: recompute everything
// and return the new ranking. The snapshot replace is not atomic;
// concurrent readers may briefly see an empty or partial leaderboard.
func (h *LeaderboardHandler) Refresh(c echo.Context) error {
	entries, err := h.Refresher.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "refresh failed"})
	}
	return c.JSON(http.StatusOK, entries)
}

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

// TeamHandler serves the /api/teams collection plus the derived
// member and stats endpoints. Team responses carry a member_count
// computed from the users collection at read time.
type TeamHandler struct {
	Teams *repository.TeamRepo
	Users *repository.UserRepo
	Svc   *service.TeamService
}

// NewTeamHandler constructs a TeamHandler and panics on nil dependencies.
func NewTeamHandler(teams *repository.TeamRepo, users *repository.UserRepo, svc *service.TeamService) *TeamHandler {
	if teams == nil || users == nil || svc == nil {
		panic("nil dependency passed to NewTeamHandler")
	}
	return &TeamHandler{Teams: teams, Users: users, Svc: svc}
}

type teamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// withMemberCount decorates a team with its current member count.
func (h *TeamHandler) withMemberCount(c echo.Context, t *model.Team) (*model.TeamWithMembers, error) {
	n, err := h.Users.CountByTeam(c.Request().Context(), t.Name)
	if err != nil {
		return nil, err
	}
	return &model.TeamWithMembers{Team: *t, MemberCount: n}, nil
}

// List handles GET /api/teams.
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.Teams.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	out := make([]*model.TeamWithMembers, 0, len(teams))
	for _, t := range teams {
		tw, err := h.withMemberCount(c, t)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		out = append(out, tw)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/teams.
func (h *TeamHandler) Create(c echo.Context) error {
	var body teamRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	team := &model.Team{
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
	}
	if team.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	if err := h.Teams.Create(c.Request().Context(), team); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create team"})
	}
	return c.JSON(http.StatusCreated, &model.TeamWithMembers{Team: *team})
}

// Get handles GET /api/teams/:id.
func (h *TeamHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	team, err := h.Teams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	tw, err := h.withMemberCount(c, team)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, tw)
}

// Update handles PUT /api/teams/:id. Renaming a team does not move
// its members; their team strings keep the old name.
func (h *TeamHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body teamRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	team := &model.Team{
		ID:          id,
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
	}
	if err := h.Teams.Update(c.Request().Context(), team); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	tw, err := h.withMemberCount(c, team)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, tw)
}

// Delete handles DELETE /api/teams/:id.
func (h *TeamHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Teams.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Members handles GET /api/teams/:id/members.
func (h *TeamHandler) Members(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	members, err := h.Svc.Members(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, members)
}

// Stats handles GET /api/teams/:id/stats. Empty teams report zeroes.
func (h *TeamHandler) Stats(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	stats, err := h.Svc.Stats(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stats)
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/service"
)

// newEcho builds an Echo instance with the application validator, the
// way main wires it.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// fixture bundles every handler over one mocked database so tests can
// exercise any route.
func fixture(t *testing.T) (*echo.Echo, Handlers, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepo(db)
	teams := repository.NewTeamRepo(db)
	activities := repository.NewActivityRepo(db)
	leaderboard := repository.NewLeaderboardRepo(db)
	workouts := repository.NewWorkoutRepo(db)

	h := Handlers{
		Users:       NewUserHandler(users),
		Teams:       NewTeamHandler(teams, users, service.NewTeamService(teams, users, activities)),
		Activities:  NewActivityHandler(activities),
		Leaderboard: NewLeaderboardHandler(leaderboard, service.NewLeaderboardService(users, activities, leaderboard)),
		Workouts:    NewWorkoutHandler(workouts, service.NewRecommendationService(activities, workouts)),
	}
	return newEcho(), h, mock
}

// Handlers mirrors the router's handler bundle without importing the
// router package (which would create an import cycle with this one).
type Handlers struct {
	Users       *UserHandler
	Teams       *TeamHandler
	Activities  *ActivityHandler
	Leaderboard *LeaderboardHandler
	Workouts    *WorkoutHandler
}

func get(e *echo.Echo, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestFilterEndpointsRejectMissingParameter(t *testing.T) {
	e, h, _ := fixture(t)

	cases := []struct {
		name    string
		target  string
		handler echo.HandlerFunc
		errMsg  string
	}{
		{"users by_team", "/api/users/by_team", h.Users.ByTeam, "Team parameter is required"},
		{"activities by_user", "/api/activities/by_user", h.Activities.ByUser, "Email parameter is required"},
		{"activities by_type", "/api/activities/by_type", h.Activities.ByType, "Type parameter is required"},
		{"leaderboard by_team", "/api/leaderboard/by_team", h.Leaderboard.ByTeam, "Team parameter is required"},
		{"workouts by_type", "/api/workouts/by_type", h.Workouts.ByType, "Type parameter is required"},
		{"workouts by_difficulty", "/api/workouts/by_difficulty", h.Workouts.ByDifficulty, "Difficulty parameter is required"},
		{"workouts recommended", "/api/workouts/recommended", h.Workouts.Recommended, "Email parameter is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(e, tc.target, tc.handler)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.errMsg, body["error"])
		})
	}
}

func TestUsersByTeamReturnsMatches(t *testing.T) {
	e, h, mock := fixture(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users WHERE team").
		WithArgs("T1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "team", "created_at"}).
			AddRow(1, "Alice", "a@x.com", "T1", now))

	rec := get(e, "/api/users/by_team?team=T1", h.Users.ByTeam)
	assert.Equal(t, http.StatusOK, rec.Code)

	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)
	// Identifier must serialize as a string.
	assert.Contains(t, rec.Body.String(), `"_id":"1"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersByTeamEmptyMatchIsOK(t *testing.T) {
	e, h, mock := fixture(t)

	mock.ExpectQuery("FROM users WHERE team").
		WithArgs("Ghosts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "team", "created_at"}))

	rec := get(e, "/api/users/by_team?team=Ghosts", h.Users.ByTeam)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCreateUserValidatesEmail(t *testing.T) {
	e, h, _ := fixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"name":"Alice","email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Users.Create(e.NewContext(req, rec))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserDuplicateEmailIsConflict(t *testing.T) {
	e, h, mock := fixture(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Alice", "a@x.com", "").
		WillReturnError(assertableDuplicateErr{})

	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"name":"Alice","email":"a@x.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Users.Create(e.NewContext(req, rec))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// assertableDuplicateErr mimics the driver's duplicate-key error text.
type assertableDuplicateErr struct{}

func (assertableDuplicateErr) Error() string {
	return "Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.uq_users_email'"
}

func putUser(e *echo.Echo, h Handlers, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = h.Users.Update(c)
	return rec
}

func TestUpdateUserUnknownIDIsNotFound(t *testing.T) {
	e, h, mock := fixture(t)

	mock.ExpectExec("UPDATE users SET").
		WithArgs("Ghost", "ghost@x.com", "", uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name, email, team, created_at FROM users WHERE id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "email", "team", "created_at"}))

	rec := putUser(e, h, "404", `{"name":"Ghost","email":"ghost@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserDuplicateEmailIsConflict(t *testing.T) {
	e, h, mock := fixture(t)

	mock.ExpectExec("UPDATE users SET").
		WithArgs("Bob", "a@x.com", "", uint64(8)).
		WillReturnError(assertableDuplicateErr{})

	rec := putUser(e, h, "8", `{"name":"Bob","email":"a@x.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardTopDefaultsToTen(t *testing.T) {
	e, h, mock := fixture(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM leaderboard ORDER BY `rank` LIMIT").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "user_name", "team", "total_calories", "total_activities", "rank", "updated_at"}).
			AddRow(1, "b@x.com", "Bob", "T2", 700, 1, 1, now))

	rec := get(e, "/api/leaderboard/top", h.Leaderboard.Top)
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []model.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTeamNotFound(t *testing.T) {
	e, h, mock := fixture(t)

	mock.ExpectQuery("FROM teams WHERE id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}))

	req := httptest.NewRequest(http.MethodGet, "/api/teams/404", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")
	_ = h.Teams.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIRootListsEndpoints(t *testing.T) {
	e := newEcho()
	rec := get(e, "/", APIRoot)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/leaderboard/refresh")
	assert.Contains(t, rec.Body.String(), "/api/workouts/recommended")
}

package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/alex-pricope/hackathon-judging-api/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededTeam() *storage.Team {
	return &storage.Team{
		TeamID:   "alpha",
		TeamName: "Alpha",
		Password: "secret1",
		Members: []storage.Member{
			{Name: "Ada", Role: "Lead", Email: "ada@example.com"},
		},
		ServicesUsed: []string{"Lambda"},
	}
}

func TestTeamController_GetOwnHidesPassword(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(seededTeam())

	res := env.do(http.MethodGet, "/team/me", nil, env.teamToken("alpha"))
	require.Equal(t, http.StatusOK, res.Code)

	out := decode(res)
	assert.Equal(t, "alpha", out["team_id"])
	assert.NotContains(t, out, "password")
	assert.NotContains(t, res.Body.String(), "secret1")
}

func TestTeamController_GetOwnMissingRecord(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(http.MethodGet, "/team/me", nil, env.teamToken("deleted"))
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Team not found", decode(res)["error"])
}

func TestTeamController_UpdateOwn(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(seededTeam())
	env.addUseCase(2, "RobCo Industries", true)
	token := env.teamToken("alpha")

	res := env.do(http.MethodPut, "/team/me", map[string]any{
		"team_name":            "Alpha Prime",
		"use_case":             "2",
		"solution_description": "A robot butler",
		"password":             "hijack",
		"team_id":              "other",
	}, token)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	out := decode(res)
	assert.Equal(t, "alpha", out["team_id"])
	assert.Equal(t, "Alpha Prime", out["team_name"])
	assert.Equal(t, float64(2), out["use_case"])
	assert.Equal(t, "RobCo Industries", out["use_case_name"])
	assert.Equal(t, "A robot butler", out["solution_description"])
	assert.NotContains(t, out, "password")

	stored, err := env.stores.Teams.Get(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, "secret1", stored.Password)
	assert.NotEmpty(t, stored.UpdatedAt)

	// zero clears the selection
	res = env.do(http.MethodPut, "/team/me", map[string]any{"use_case": 0}, token)
	require.Equal(t, http.StatusOK, res.Code)
	out = decode(res)
	assert.Equal(t, float64(0), out["use_case"])
	assert.Equal(t, "", out["use_case_name"])
}

func TestTeamController_UpdateOwnRejects(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"no allowed fields", map[string]any{"password": "x", "created_at": "never"}, "No valid fields to update"},
		{"empty body", "", "No valid fields to update"},
		{"inactive use case", map[string]any{"use_case": 3}, "Invalid use_case"},
		{"unknown use case", map[string]any{"use_case": 42}, "Invalid use_case"},
		{"fractional use case", map[string]any{"use_case": 2.5}, "Invalid use_case"},
		{"non numeric use case", map[string]any{"use_case": "two"}, "Invalid use_case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.addTeam(seededTeam())
			env.addUseCase(3, "Retired", false)

			res := env.do(http.MethodPut, "/team/me", tt.body, env.teamToken("alpha"))
			assert.Equal(t, http.StatusBadRequest, res.Code)
			assert.Equal(t, tt.message, decode(res)["error"])

			stored, err := env.stores.Teams.Get(context.Background(), "alpha")
			require.NoError(t, err)
			assert.Equal(t, "Alpha", stored.TeamName)
			assert.Equal(t, 0, stored.UseCase)
		})
	}
}

func TestTeamController_UpdateOwnMissingRecordDoesNotUpsert(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(http.MethodPut, "/team/me", map[string]any{"team_name": "Ghost"}, env.teamToken("ghost"))
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, 0, env.stores.DB.Count(storagetest.TeamsTable))
}

func TestTeamController_PublicCard(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(seededTeam())

	res := env.do(http.MethodGet, "/team-card/alpha", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotContains(t, res.Body.String(), "ada@example.com")
	assert.NotContains(t, res.Body.String(), "secret1")

	out := decode(res)
	assert.Equal(t, "Alpha", out["team_name"])
	assert.Equal(t, []any{map[string]any{"name": "Ada", "role": "Lead"}}, out["members"])

	res = env.do(http.MethodGet, "/team-card/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestTeamController_PanelistViews(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(seededTeam())
	env.addTeam(&storage.Team{TeamID: "beta", TeamName: "Beta", Password: "secret2"})
	token := env.panelistToken("judge", false)

	res := env.do(http.MethodGet, "/teams", nil, token)
	require.Equal(t, http.StatusOK, res.Code)
	teams := decode(res)["teams"].([]any)
	assert.Len(t, teams, 2)
	assert.NotContains(t, res.Body.String(), "secret")

	res = env.do(http.MethodGet, "/teams/beta", nil, token)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Beta", decode(res)["team_name"])

	res = env.do(http.MethodGet, "/teams/gamma", nil, token)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Team not found", decode(res)["error"])
}

func TestTeamController_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(seededTeam())
	admin := env.panelistToken("boss", true)

	res := env.do(http.MethodPut, "/teams/alpha/reset-password", map[string]any{"new_password": "123"}, admin)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "new_password required (minimum 6 characters)", decode(res)["error"])

	res = env.do(http.MethodPut, "/teams/ghost/reset-password", map[string]any{"new_password": "fresh-pass"}, admin)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, 1, env.stores.DB.Count(storagetest.TeamsTable))

	res = env.do(http.MethodPut, "/teams/alpha/reset-password", map[string]any{"new_password": "fresh-pass"}, admin)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Password reset successfully for team alpha", decode(res)["message"])

	stored, err := env.stores.Teams.Get(context.Background(), "alpha")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "fresh-pass"))
	assert.False(t, auth.CheckPassword(stored.Password, "secret1"))
}

func TestTeamController_DeleteCascadesScores(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(seededTeam())
	env.addTeam(&storage.Team{TeamID: "beta", TeamName: "Beta"})
	for _, judge := range []string{"j1", "j2", "j3"} {
		require.NoError(t, env.stores.Scores.Put(context.Background(), &storage.Score{TeamID: "alpha", PanelistID: judge, Total: 8}))
	}
	require.NoError(t, env.stores.Scores.Put(context.Background(), &storage.Score{TeamID: "beta", PanelistID: "j1", Total: 12}))
	admin := env.panelistToken("boss", true)

	res := env.do(http.MethodDelete, "/teams/alpha", nil, admin)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Equal(t, `Team "Alpha" and all associated scores deleted successfully`, decode(res)["message"])

	_, err := env.stores.Teams.Get(context.Background(), "alpha")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	remaining, err := env.stores.Scores.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "beta", remaining[0].TeamID)

	res = env.do(http.MethodDelete, "/teams/alpha", nil, admin)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

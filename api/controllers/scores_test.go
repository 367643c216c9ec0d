package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/alex-pricope/hackathon-judging-api/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScore(teamID string) map[string]any {
	return map[string]any{
		"team_id":              teamID,
		"presentation":         4,
		"innovation":           5,
		"functionality":        3,
		"aws_well_architected": 2,
		"comments":             "solid",
	}
}

func TestScoreController_SubmitComputesTotal(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(&storage.Team{TeamID: "alpha", TeamName: "Alpha"})
	token := env.panelistToken("judge", false)

	req := validScore("alpha")
	req["total"] = 99
	res := env.do(http.MethodPost, "/scores", req, token)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	out := decode(res)
	assert.Equal(t, "Score submitted successfully", out["message"])
	assert.Equal(t, "judge", out["panelist_id"])
	assert.Equal(t, float64(14), out["total"])

	scores, err := env.stores.Scores.GetByTeam(context.Background(), "alpha")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 14, scores[0].Total)
	assert.Equal(t, "solid", scores[0].Comments)
	assert.NotEmpty(t, scores[0].SubmittedAt)
}

func TestScoreController_ResubmitOverwrites(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(&storage.Team{TeamID: "alpha"})
	token := env.panelistToken("judge", false)

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/scores", validScore("alpha"), token).Code)
	second := validScore("alpha")
	second["presentation"] = 1
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/scores", second, token).Code)

	assert.Equal(t, 1, env.stores.DB.Count(storagetest.ScoresTable))
	scores, err := env.stores.Scores.GetByTeam(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, 11, scores[0].Total)
}

func TestScoreController_SubmitValidation(t *testing.T) {
	with := func(field string, value any) map[string]any {
		req := validScore("alpha")
		if value == nil {
			delete(req, field)
		} else {
			req[field] = value
		}
		return req
	}

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"missing team", with("team_id", nil), http.StatusBadRequest, "team_id required"},
		{"missing rating", with("innovation", nil), http.StatusBadRequest, "innovation score required"},
		{"rating too high", with("functionality", 6), http.StatusBadRequest, "functionality must be between 1 and 5"},
		{"rating zero", with("presentation", 0), http.StatusBadRequest, "presentation must be between 1 and 5"},
		{"fractional rating", with("aws_well_architected", 2.5), http.StatusBadRequest, "aws_well_architected must be between 1 and 5"},
		{"string rating", with("innovation", "4"), http.StatusBadRequest, "innovation must be between 1 and 5"},
		{"null rating", `{"team_id":"alpha","presentation":null,"innovation":4,"functionality":4,"aws_well_architected":4}`, http.StatusBadRequest, "presentation must be between 1 and 5"},
		{"unknown team", with("team_id", "ghost"), http.StatusNotFound, "Team not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.addTeam(&storage.Team{TeamID: "alpha"})

			res := env.do(http.MethodPost, "/scores", tt.body, env.panelistToken("judge", false))
			assert.Equal(t, tt.status, res.Code)
			assert.Equal(t, tt.message, decode(res)["error"])
			assert.Equal(t, 0, env.stores.DB.Count(storagetest.ScoresTable))
		})
	}
}

func TestScoreController_FirstFailingRatingIsReported(t *testing.T) {
	env := newTestEnv(t)
	env.addTeam(&storage.Team{TeamID: "alpha"})

	req := validScore("alpha")
	req["presentation"] = 9
	delete(req, "functionality")

	res := env.do(http.MethodPost, "/scores", req, env.panelistToken("judge", false))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "presentation must be between 1 and 5", decode(res)["error"])
}

func TestScoreController_Leaderboard(t *testing.T) {
	env := newTestEnv(t)
	for _, s := range []*storage.Score{
		{TeamID: "alpha", PanelistID: "j1", Presentation: 2, Innovation: 2, Functionality: 2, AWSWellArchitected: 2, Total: 8},
		{TeamID: "beta", PanelistID: "j1", Presentation: 5, Innovation: 5, Functionality: 5, AWSWellArchitected: 5, Total: 20},
		{TeamID: "beta", PanelistID: "j2", Presentation: 3, Innovation: 3, Functionality: 3, AWSWellArchitected: 3, Total: 12},
	} {
		require.NoError(t, env.stores.Scores.Put(context.Background(), s))
	}

	// any authenticated principal may read the board
	res := env.do(http.MethodGet, "/scores", nil, env.teamToken("alpha"))
	require.Equal(t, http.StatusOK, res.Code)

	out := decode(res)
	board := out["leaderboard"].([]any)
	require.Len(t, board, 2)
	first := board[0].(map[string]any)
	assert.Equal(t, "beta", first["team_id"])
	assert.Equal(t, float64(16), first["avg_total"])
	assert.Equal(t, float64(2), first["num_scores"])
	assert.Len(t, out["all_scores"].([]any), 3)

	res = env.do(http.MethodGet, "/scores/beta", nil, env.panelistToken("judge", false))
	require.Equal(t, http.StatusOK, res.Code)
	out = decode(res)
	assert.Equal(t, "beta", out["team_id"])
	assert.Len(t, out["scores"].([]any), 2)

	res = env.do(http.MethodGet, "/scores/nobody", nil, env.teamToken("alpha"))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []any{}, decode(res)["scores"])
}

func TestScoreController_EmptyLeaderboard(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(http.MethodGet, "/scores", nil, env.panelistToken("judge", false))
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"leaderboard":[],"all_scores":[]}`, res.Body.String())
}

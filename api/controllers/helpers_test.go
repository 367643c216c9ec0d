package controllers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/alex-pricope/hackathon-judging-api/api"
	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	testutils "github.com/alex-pricope/hackathon-judging-api/api/controllers/testing"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/alex-pricope/hackathon-judging-api/storage/storagetest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	stores *storagetest.Stores
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stores := storagetest.NewStores()
	tokens := auth.NewTokenService(testSecret)

	router := api.NewEngine(gin.TestMode, &api.Storages{
		Teams:     stores.Teams,
		Panelists: stores.Panelists,
		Scores:    stores.Scores,
		UseCases:  stores.UseCases,
		Criteria:  stores.Criteria,
	}, tokens, nil)

	return &testEnv{t: t, router: router, stores: stores, tokens: tokens}
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var headers map[string]string
	if token != "" {
		headers = testutils.Bearer(token)
	}
	return testutils.PerformRequest(e.router, method, path, body, headers)
}

func (e *testEnv) addTeam(team *storage.Team) {
	e.t.Helper()
	require.NoError(e.t, e.stores.Teams.Create(context.Background(), team))
}

func (e *testEnv) addPanelist(panelist *storage.Panelist) {
	e.t.Helper()
	require.NoError(e.t, e.stores.Panelists.Create(context.Background(), panelist))
}

func (e *testEnv) addUseCase(id int, name string, active bool) {
	e.t.Helper()
	require.NoError(e.t, e.stores.UseCases.Put(context.Background(), &storage.UseCase{
		UseCaseID: id, Name: name, Active: &active, SortOrder: &id,
	}))
}

func (e *testEnv) teamToken(teamID string) string {
	e.t.Helper()
	token, err := e.tokens.Issue(map[string]any{"type": "team", "team_id": teamID, "team_name": teamID})
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) panelistToken(panelistID string, admin bool) string {
	e.t.Helper()
	token, err := e.tokens.Issue(map[string]any{"type": "panelist", "panelist_id": panelistID, "name": panelistID, "is_admin": admin})
	require.NoError(e.t, err)
	return token
}

func decode(res *httptest.ResponseRecorder) map[string]any {
	return testutils.DecodeBody(res)
}

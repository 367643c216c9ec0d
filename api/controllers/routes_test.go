package controllers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alex-pricope/hackathon-judging-api/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes_AuthorizationGate(t *testing.T) {
	env := newTestEnv(t)
	team := env.teamToken("alpha")
	judge := env.panelistToken("judge", false)
	admin := env.panelistToken("boss", true)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"no token", http.MethodGet, "/team/me", "", http.StatusUnauthorized, "Unauthorized - Invalid or missing token"},
		{"garbage token", http.MethodGet, "/teams", "not.a.token", http.StatusUnauthorized, "Unauthorized - Invalid or missing token"},
		{"panelist on team route", http.MethodGet, "/team/me", judge, http.StatusForbidden, "Forbidden - Team access only"},
		{"team on panelist route", http.MethodGet, "/teams", team, http.StatusForbidden, "Forbidden - Panelist access only"},
		{"team submits score", http.MethodPost, "/scores", team, http.StatusForbidden, "Forbidden - Panelist access only"},
		{"judge on admin route", http.MethodGet, "/panelists", judge, http.StatusForbidden, "Forbidden - Admin access only"},
		{"team on admin route", http.MethodDelete, "/teams/alpha", team, http.StatusForbidden, "Forbidden - Admin access only"},
		{"judge creates use case", http.MethodPost, "/use-cases", judge, http.StatusForbidden, "Forbidden - Admin access only"},
		{"judge edits criteria", http.MethodPut, "/judging-criteria", judge, http.StatusForbidden, "Forbidden - Admin access only"},
		{"scores need a token", http.MethodGet, "/scores", "", http.StatusUnauthorized, "Unauthorized - Invalid or missing token"},
		{"admin reads panelists", http.MethodGet, "/panelists", admin, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.do(tt.method, tt.path, nil, tt.token)
			assert.Equal(t, tt.status, res.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decode(res)["error"])
			}
			assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRoutes_ExpiredTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	old := env.tokens.WithClock(func() time.Time { return time.Now().Add(-25 * time.Hour) })
	token, err := old.Issue(map[string]any{"type": "panelist", "panelist_id": "judge"})
	require.NoError(t, err)

	res := env.do(http.MethodGet, "/teams", nil, token)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRoutes_PreflightAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(http.MethodOptions, "/panelists/anyone/toggle-admin", nil, "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "OK", decode(res)["message"])
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", res.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,Authorization", res.Header().Get("Access-Control-Allow-Headers"))

	res = env.do(http.MethodGet, "/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Not found", decode(res)["error"])
	assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))

	res = env.do(http.MethodGet, "/nowhere", nil, env.teamToken("alpha"))
	assert.Equal(t, http.StatusNotFound, res.Code)

	assert.NotEmpty(t, res.Header().Get("X-Request-ID"))
}

func TestRoutes_StorageFailureIsInternalError(t *testing.T) {
	env := newTestEnv(t)
	env.stores.DB.Errors["Scan"] = errors.New("dynamo is down")

	res := env.do(http.MethodGet, "/use-cases", nil, "")
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "dynamo is down", decode(res)["error"])

	delete(env.stores.DB.Errors, "Scan")
	env.stores.DB.Errors["GetItem"] = errors.New("throttled")
	res = env.do(http.MethodPost, "/auth/team-login", map[string]any{"team_id": "a", "password": "b"}, "")
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, 0, env.stores.DB.Count(storagetest.TeamsTable))
}

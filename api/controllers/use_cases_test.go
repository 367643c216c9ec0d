package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useCaseBody(name string) map[string]any {
	req := map[string]any{}
	for _, field := range models.UseCaseRequiredFields {
		req[field] = field + " text"
	}
	req["name"] = name
	req["challenges"] = []string{"latency"}
	req["values"] = []string{"trust"}
	return req
}

func TestUseCaseController_ListActiveSorted(t *testing.T) {
	env := newTestEnv(t)
	order := func(v int) *int { return &v }
	inactive := false
	for _, uc := range []*storage.UseCase{
		{UseCaseID: 1, Name: "late", SortOrder: order(5)},
		{UseCaseID: 2, Name: "first", SortOrder: order(1)},
		{UseCaseID: 3, Name: "hidden", SortOrder: order(0), Active: &inactive},
		{UseCaseID: 4, Name: "unordered"},
		{UseCaseID: 5, Name: "tied", SortOrder: order(5)},
	} {
		require.NoError(t, env.stores.UseCases.Put(context.Background(), uc))
	}

	res := env.do(http.MethodGet, "/use-cases", nil, "")
	require.Equal(t, http.StatusOK, res.Code)

	var names []string
	for _, uc := range decode(res)["use_cases"].([]any) {
		names = append(names, uc.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"first", "late", "tied", "unordered"}, names)
}

func TestUseCaseController_Get(t *testing.T) {
	env := newTestEnv(t)
	env.addUseCase(7, "Retired", false)

	res := env.do(http.MethodGet, "/use-cases/7", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Retired", decode(res)["name"])

	res = env.do(http.MethodGet, "/use-cases/8", nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Use case not found", decode(res)["error"])

	res = env.do(http.MethodGet, "/use-cases/seven", nil, "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid use_case_id", decode(res)["error"])
}

func TestUseCaseController_CreateAssignsNextID(t *testing.T) {
	env := newTestEnv(t)
	admin := env.panelistToken("boss", true)

	res := env.do(http.MethodPost, "/use-cases", useCaseBody("Vault-Tec"), admin)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	out := decode(res)
	assert.Equal(t, "Use case created", out["message"])
	created := out["use_case"].(map[string]any)
	assert.Equal(t, float64(1), created["use_case_id"])
	assert.Equal(t, float64(1), created["sort_order"])
	assert.Equal(t, true, created["active"])
	assert.Equal(t, "", created["closing"])

	env.addUseCase(5, "Manual", true)
	req := useCaseBody("Nuka-Cola")
	req["sort_order"] = 0
	req["active"] = false
	res = env.do(http.MethodPost, "/use-cases", req, admin)
	require.Equal(t, http.StatusCreated, res.Code)
	created = decode(res)["use_case"].(map[string]any)
	assert.Equal(t, float64(6), created["use_case_id"])
	assert.Equal(t, float64(0), created["sort_order"])
	assert.Equal(t, false, created["active"])
}

func TestUseCaseController_CreateRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	req := useCaseBody("Incomplete")
	delete(req, "tension")

	res := env.do(http.MethodPost, "/use-cases", req, env.panelistToken("boss", true))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "tension is required", decode(res)["error"])
}

func TestUseCaseController_Update(t *testing.T) {
	env := newTestEnv(t)
	env.addUseCase(1, "Old", true)
	admin := env.panelistToken("boss", true)

	res := env.do(http.MethodPut, "/use-cases/1", map[string]any{
		"name":        "New",
		"values":      []string{"a", "b"},
		"sort_order":  3,
		"use_case_id": 99,
	}, admin)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	out := decode(res)
	assert.Equal(t, float64(1), out["use_case_id"])
	assert.Equal(t, "New", out["name"])
	assert.Equal(t, []any{"a", "b"}, out["values"])
	assert.Equal(t, float64(3), out["sort_order"])

	res = env.do(http.MethodPut, "/use-cases/1", map[string]any{"unknown": 1}, admin)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "No valid fields to update", decode(res)["error"])

	res = env.do(http.MethodPut, "/use-cases/2", map[string]any{"name": "Ghost"}, admin)
	assert.Equal(t, http.StatusNotFound, res.Code)
	_, err := env.stores.UseCases.Get(context.Background(), 2)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUseCaseController_SoftDeleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.addUseCase(1, "Doomed", true)
	admin := env.panelistToken("boss", true)

	for i := 0; i < 2; i++ {
		res := env.do(http.MethodDelete, "/use-cases/1", nil, admin)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Use case deactivated", decode(res)["message"])
	}

	stored, err := env.stores.UseCases.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, stored.IsActive())

	res := env.do(http.MethodGet, "/use-cases", nil, "")
	assert.Equal(t, []any{}, decode(res)["use_cases"])

	res = env.do(http.MethodDelete, "/use-cases/4", nil, admin)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

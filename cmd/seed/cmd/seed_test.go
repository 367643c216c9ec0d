package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alex-pricope/hackathon-judging-api/api"
	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/alex-pricope/hackathon-judging-api/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFakeStorages(t *testing.T) *storagetest.Stores {
	t.Helper()
	stores := storagetest.NewStores()
	previous := openStorages
	openStorages = func(context.Context) (*api.Storages, error) {
		return &api.Storages{
			Teams:     stores.Teams,
			Panelists: stores.Panelists,
			Scores:    stores.Scores,
			UseCases:  stores.UseCases,
			Criteria:  stores.Criteria,
		}, nil
	}
	t.Cleanup(func() { openStorages = previous })
	return stores
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeedUseCases_BundledFile(t *testing.T) {
	stores := useFakeStorages(t)

	out, err := run(t, "use-cases", "--file", "../../../seeds/use_cases.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Done! 6 use cases seeded.")

	robco, err := stores.UseCases.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "RobCo Industries", robco.Name)
	assert.True(t, robco.IsActive())
	assert.NotEmpty(t, robco.Challenges)
}

func TestSeedUseCases_Defaults(t *testing.T) {
	stores := useFakeStorages(t)
	path := writeFile(t, "use_cases.yaml", `
use_cases:
  - use_case_id: 4
    name: West Tek Research
    challenges: [preserve]
`)

	_, err := run(t, "use-cases", "--file", path)
	require.NoError(t, err)

	uc, err := stores.UseCases.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, uc.Order())
	assert.True(t, uc.IsActive())
	assert.Equal(t, []string{}, uc.Values)
	assert.NotEmpty(t, uc.CreatedAt)
}

func TestSeedUseCases_RejectsMissingID(t *testing.T) {
	stores := useFakeStorages(t)
	path := writeFile(t, "bad.yaml", "use_cases:\n  - name: Nameless\n")

	_, err := run(t, "use-cases", "--file", path)
	assert.Error(t, err)
	assert.Equal(t, 0, stores.DB.Count(storagetest.UseCasesTable))
}

func TestSeedCriteria(t *testing.T) {
	stores := useFakeStorages(t)

	_, err := run(t, "criteria", "--file", "../../../seeds/judging_criteria.yaml")
	require.NoError(t, err)

	criteria, err := stores.Criteria.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.JudgingCriteriaID, criteria.CriteriaID)
	assert.Contains(t, criteria.Intro, "four categories")
	assert.Len(t, criteria.Categories, 4)
}

func TestSeedAdmin(t *testing.T) {
	stores := useFakeStorages(t)

	out, err := run(t, "admin", "--id", "Head Judge", "--name", "Head Judge", "--password", "first-admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin head-judge created.")

	admin, err := stores.Panelists.Get(context.Background(), "head-judge")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, auth.CheckPassword(admin.Password, "first-admin"))

	_, err = run(t, "admin", "--id", "head-judge", "--name", "Again", "--password", "first-admin")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "admin", "--id", "short", "--name", "", "--password", "123")
	assert.ErrorContains(t, err, "at least 6 characters")
}

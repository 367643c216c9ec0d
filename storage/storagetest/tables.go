package storagetest

import "github.com/alex-pricope/hackathon-judging-api/storage"

const (
	TeamsTable     = "Teams"
	PanelistsTable = "Panelists"
	ScoresTable    = "Scores"
	UseCasesTable  = "UseCases"
	CriteriaTable  = "JudgingCriteria"
)

// Stores bundles every storage wired to one FakeDynamo.
type Stores struct {
	DB        *FakeDynamo
	Teams     *storage.DynamoTeamStorage
	Panelists *storage.DynamoPanelistStorage
	Scores    *storage.DynamoScoreStorage
	UseCases  *storage.DynamoUseCaseStorage
	Criteria  *storage.DynamoJudgingCriteriaStorage
}

// NewStores creates the five tables with the production key schema.
func NewStores() *Stores {
	db := NewFakeDynamo()
	db.CreateTable(TeamsTable, "team_id", "")
	db.CreateTable(PanelistsTable, "panelist_id", "")
	db.CreateTable(ScoresTable, "team_id", "panelist_id")
	db.CreateTable(UseCasesTable, "use_case_id", "")
	db.CreateTable(CriteriaTable, "criteria_id", "")

	return &Stores{
		DB:        db,
		Teams:     &storage.DynamoTeamStorage{Client: db, TableName: TeamsTable},
		Panelists: &storage.DynamoPanelistStorage{Client: db, TableName: PanelistsTable},
		Scores:    &storage.DynamoScoreStorage{Client: db, TableName: ScoresTable},
		UseCases:  &storage.DynamoUseCaseStorage{Client: db, TableName: UseCasesTable},
		Criteria:  &storage.DynamoJudgingCriteriaStorage{Client: db, TableName: CriteriaTable},
	}
}

package models

import "github.com/alex-pricope/hackathon-judging-api/storage"

type TeamsResponse struct {
	Teams []*storage.Team `json:"teams"`
}

type PublicMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// TeamCardResponse is the shareable subset of a team: no password, no emails.
type TeamCardResponse struct {
	TeamID      string         `json:"team_id"`
	TeamName    string         `json:"team_name"`
	UseCase     int            `json:"use_case"`
	UseCaseName string         `json:"use_case_name"`
	Members     []PublicMember `json:"members"`
}

func TransformTeamToCard(t *storage.Team) TeamCardResponse {
	members := make([]PublicMember, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, PublicMember{Name: m.Name, Role: m.Role})
	}
	return TeamCardResponse{
		TeamID:      t.TeamID,
		TeamName:    t.TeamName,
		UseCase:     t.UseCase,
		UseCaseName: t.UseCaseName,
		Members:     members,
	}
}

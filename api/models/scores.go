package models

import "github.com/alex-pricope/hackathon-judging-api/storage"

// ScoreRequest ratings are pointers so a missing rating is distinguishable from zero.
type ScoreRequest struct {
	TeamID             string `json:"team_id"`
	Presentation       *int   `json:"presentation" validate:"required,min=1,max=5"`
	Innovation         *int   `json:"innovation" validate:"required,min=1,max=5"`
	Functionality      *int   `json:"functionality" validate:"required,min=1,max=5"`
	AWSWellArchitected *int   `json:"aws_well_architected" validate:"required,min=1,max=5"`
	Comments           string `json:"comments"`
}

// RatingFields are the four rated dimensions, in validation order.
var RatingFields = []string{"presentation", "innovation", "functionality", "aws_well_architected"}

type ScoreSubmitResponse struct {
	Message    string `json:"message"`
	TeamID     string `json:"team_id"`
	PanelistID string `json:"panelist_id"`
	Total      int    `json:"total"`
}

type TeamScoresResponse struct {
	TeamID string           `json:"team_id"`
	Scores []*storage.Score `json:"scores"`
}

type AllScoresResponse struct {
	Leaderboard []*LeaderboardEntry `json:"leaderboard"`
	AllScores   []*storage.Score    `json:"all_scores"`
}

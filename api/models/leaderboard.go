package models

import (
	"sort"

	"github.com/alex-pricope/hackathon-judging-api/storage"
)

type LeaderboardEntry struct {
	TeamID                string           `json:"team_id"`
	Scores                []*storage.Score `json:"scores"`
	AvgPresentation       float64          `json:"avg_presentation"`
	AvgInnovation         float64          `json:"avg_innovation"`
	AvgFunctionality      float64          `json:"avg_functionality"`
	AvgAWSWellArchitected float64          `json:"avg_aws_well_architected"`
	AvgTotal              float64          `json:"avg_total"`
	NumScores             int              `json:"num_scores"`
}

// BuildLeaderboard groups scores by team and ranks teams by mean total,
// highest first. Equal means are ordered by team_id ascending.
func BuildLeaderboard(scores []*storage.Score) []*LeaderboardEntry {
	byTeam := make(map[string]*LeaderboardEntry)
	for _, s := range scores {
		entry, ok := byTeam[s.TeamID]
		if !ok {
			entry = &LeaderboardEntry{TeamID: s.TeamID}
			byTeam[s.TeamID] = entry
		}
		entry.Scores = append(entry.Scores, s)
		entry.NumScores++
	}

	leaderboard := make([]*LeaderboardEntry, 0, len(byTeam))
	for _, entry := range byTeam {
		var presentation, innovation, functionality, architected, total int
		for _, s := range entry.Scores {
			presentation += s.Presentation
			innovation += s.Innovation
			functionality += s.Functionality
			architected += s.AWSWellArchitected
			total += s.Total
		}
		n := float64(entry.NumScores)
		entry.AvgPresentation = float64(presentation) / n
		entry.AvgInnovation = float64(innovation) / n
		entry.AvgFunctionality = float64(functionality) / n
		entry.AvgAWSWellArchitected = float64(architected) / n
		entry.AvgTotal = float64(total) / n
		leaderboard = append(leaderboard, entry)
	}

	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].AvgTotal != leaderboard[j].AvgTotal {
			return leaderboard[i].AvgTotal > leaderboard[j].AvgTotal
		}
		return leaderboard[i].TeamID < leaderboard[j].TeamID
	})
	return leaderboard
}

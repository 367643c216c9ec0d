package models

import "github.com/alex-pricope/hackathon-judging-api/storage"

type PanelistsResponse struct {
	Panelists []*storage.Panelist `json:"panelists"`
}

type PanelistCreateResponse struct {
	Message    string `json:"message"`
	PanelistID string `json:"panelist_id"`
	Name       string `json:"name"`
	IsAdmin    bool   `json:"is_admin"`
}

type ToggleAdminResponse struct {
	Message    string `json:"message"`
	PanelistID string `json:"panelist_id"`
	IsAdmin    bool   `json:"is_admin"`
}

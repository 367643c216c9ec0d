package models

import "github.com/alex-pricope/hackathon-judging-api/storage"

type UseCasesResponse struct {
	UseCases []*storage.UseCase `json:"use_cases"`
}

// UseCaseRequiredFields must all be present when creating a use case.
var UseCaseRequiredFields = []string{
	"name", "archetype", "quote", "background", "reality",
	"persona", "tension", "focus", "challenges", "values",
}

type UseCaseCreateRequest struct {
	Name           string   `json:"name"`
	Archetype      string   `json:"archetype"`
	Quote          string   `json:"quote"`
	Background     string   `json:"background"`
	Reality        string   `json:"reality"`
	Persona        string   `json:"persona"`
	Tension        string   `json:"tension"`
	Focus          string   `json:"focus"`
	Challenges     []string `json:"challenges"`
	Values         []string `json:"values"`
	Closing        string   `json:"closing"`
	ASCIILogo      string   `json:"ascii_logo"`
	LoadingMessage string   `json:"loading_message"`
	SortOrder      *int     `json:"sort_order"`
	Active         *bool    `json:"active"`
}

type UseCaseCreateResponse struct {
	Message string           `json:"message"`
	UseCase *storage.UseCase `json:"use_case"`
}

// TransformUseCaseCreateRequest builds the record for a new id, applying the
// defaults for optional fields.
func TransformUseCaseCreateRequest(id int, req *UseCaseCreateRequest, now string) *storage.UseCase {
	sortOrder := id
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	challenges, values := req.Challenges, req.Values
	if challenges == nil {
		challenges = []string{}
	}
	if values == nil {
		values = []string{}
	}

	return &storage.UseCase{
		UseCaseID:      id,
		Name:           req.Name,
		Archetype:      req.Archetype,
		Quote:          req.Quote,
		Background:     req.Background,
		Reality:        req.Reality,
		Persona:        req.Persona,
		Tension:        req.Tension,
		Focus:          req.Focus,
		Challenges:     challenges,
		Values:         values,
		Closing:        req.Closing,
		ASCIILogo:      req.ASCIILogo,
		LoadingMessage: req.LoadingMessage,
		SortOrder:      &sortOrder,
		Active:         &active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

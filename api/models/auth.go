package models

type TeamLoginResponse struct {
	Token    string `json:"token"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

type TeamRegisterResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

type PanelistLoginResponse struct {
	Token      string `json:"token"`
	PanelistID string `json:"panelist_id"`
	Name       string `json:"name"`
	IsAdmin    bool   `json:"is_admin"`
}

// TeamRegisterRequest is validated after id normalization.
type TeamRegisterRequest struct {
	TeamID   string `json:"team_id" validate:"required,slug"`
	TeamName string `json:"team_name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type PanelistCreateRequest struct {
	PanelistID string `json:"panelist_id" validate:"required,slug"`
	Name       string `json:"name" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	IsAdmin    bool   `json:"is_admin"`
}

type PasswordResetRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

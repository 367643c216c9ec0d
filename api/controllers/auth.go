package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// TokenIssuer is satisfied by auth.TokenService.
type TokenIssuer interface {
	Issue(claims map[string]any) (string, error)
}

type AuthController struct {
	teamsStorage     storage.TeamStorage
	panelistsStorage storage.PanelistStorage
	tokens           TokenIssuer
	validate         *validator.Validate
}

func NewAuthController(teamStorage storage.TeamStorage, panelistStorage storage.PanelistStorage, tokens TokenIssuer) *AuthController {
	return &AuthController{
		teamsStorage:     teamStorage,
		panelistsStorage: panelistStorage,
		tokens:           tokens,
		validate:         newValidator(),
	}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/auth")

	group.POST("/team-login", c.teamLogin)
	group.POST("/panelist-login", c.panelistLogin)
	group.POST("/team-register", c.teamRegister)
}

// teamLogin godoc
// @Summary Log in as a team
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.TeamLoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/team-login [post]
func (c *AuthController) teamLogin(g *gin.Context) {
	body := transport.ReadBody(g)
	teamID := normalizeID(body.String("team_id"), false)
	password := body.String("password")

	if teamID == "" || password == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "team_id and password required"})
		return
	}

	team, err := c.teamsStorage.Get(g.Request.Context(), teamID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		respondError(g, err, "")
		return
	}
	if team == nil || !auth.CheckPassword(team.Password, password) {
		logging.Log.Warnf("AUTH: failed team login for %s", teamID)
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	teamName := team.TeamName
	if teamName == "" {
		teamName = teamID
	}

	token, err := c.tokens.Issue(map[string]any{
		"type":      transport.PrincipalTeam,
		"team_id":   teamID,
		"team_name": teamName,
	})
	if err != nil {
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("AUTH: team %s logged in", teamID)
	g.JSON(http.StatusOK, models.TeamLoginResponse{Token: token, TeamID: teamID, TeamName: teamName})
}

// panelistLogin godoc
// @Summary Log in as a panelist
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.PanelistLoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/panelist-login [post]
func (c *AuthController) panelistLogin(g *gin.Context) {
	body := transport.ReadBody(g)
	panelistID := normalizeID(body.String("panelist_id"), true)
	password := body.String("password")

	if panelistID == "" || password == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "panelist_id and password required"})
		return
	}

	panelist, err := c.panelistsStorage.Get(g.Request.Context(), panelistID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		respondError(g, err, "")
		return
	}
	if panelist == nil || !auth.CheckPassword(panelist.Password, password) {
		logging.Log.Warnf("AUTH: failed panelist login for %s", panelistID)
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	name := panelist.Name
	if name == "" {
		name = panelistID
	}

	token, err := c.tokens.Issue(map[string]any{
		"type":        transport.PrincipalPanelist,
		"panelist_id": panelistID,
		"name":        name,
		"is_admin":    panelist.IsAdmin,
	})
	if err != nil {
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("AUTH: panelist %s logged in (admin=%t)", panelistID, panelist.IsAdmin)
	g.JSON(http.StatusOK, models.PanelistLoginResponse{Token: token, PanelistID: panelistID, Name: name, IsAdmin: panelist.IsAdmin})
}

// teamRegister godoc
// @Summary Register a new team
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.TeamRegisterRequest true "Registration"
// @Success 201 {object} models.TeamRegisterResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/team-register [post]
func (c *AuthController) teamRegister(g *gin.Context) {
	body := transport.ReadBody(g)
	req := models.TeamRegisterRequest{
		TeamID:   normalizeID(body.String("team_id"), true),
		TeamName: body.String("team_name"),
		Password: body.String("password"),
	}

	if err := c.validate.Struct(req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: credentialsError(err, "team_id, team_name, and password required", "team_id")})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(g, err, "")
		return
	}

	now := storage.NowTimestamp()
	team := &storage.Team{
		TeamID:       req.TeamID,
		TeamName:     req.TeamName,
		Password:     hash,
		Members:      []storage.Member{},
		ServicesUsed: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.teamsStorage.Create(g.Request.Context(), team); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			g.JSON(http.StatusConflict, models.ErrorResponse{Error: "Team ID already exists"})
			return
		}
		respondError(g, err, "")
		return
	}

	token, err := c.tokens.Issue(map[string]any{
		"type":      transport.PrincipalTeam,
		"team_id":   team.TeamID,
		"team_name": team.TeamName,
	})
	if err != nil {
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("AUTH: registered team %s", team.TeamID)
	g.JSON(http.StatusCreated, models.TeamRegisterResponse{
		Message:  "Team registered successfully",
		Token:    token,
		TeamID:   team.TeamID,
		TeamName: team.TeamName,
	})
}

// credentialsError turns validation failures of an id/name/password request into one message.
func credentialsError(err error, requiredMessage, idField string) string {
	errs, ok := fieldErrors(err)
	if !ok {
		return "invalid request"
	}
	switch {
	case hasTag(errs, "required"):
		return requiredMessage
	case hasTag(errs, "min"):
		return "Password must be at least 6 characters"
	default:
		return idField + " may only contain lowercase letters, digits, '-', '_' and '.'"
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TeamController struct {
	teamsStorage    storage.TeamStorage
	scoresStorage   storage.ScoreStorage
	useCasesStorage storage.UseCaseStorage
	validate        *validator.Validate
	fields          updatableFields
}

func NewTeamController(teamStorage storage.TeamStorage, scoreStorage storage.ScoreStorage, useCaseStorage storage.UseCaseStorage) *TeamController {
	c := &TeamController{
		teamsStorage:    teamStorage,
		scoresStorage:   scoreStorage,
		useCasesStorage: useCaseStorage,
		validate:        newValidator(),
	}
	c.fields = updatableFields{
		"team_name":            setString("team_name"),
		"use_case":             c.setUseCase,
		"solution_description": setString("solution_description"),
		"services_used":        setStringList("services_used"),
		"members":              setMembers("members"),
	}
	return c
}

func (c *TeamController) RegisterRoutes(engine *gin.Engine, authn *transport.Authenticator) {
	engine.GET("/team-card/:team_id", c.getCard)

	own := engine.Group("/team", authn.Require(transport.TeamOnly))
	own.GET("/me", c.getOwn)
	own.PUT("/me", c.updateOwn)

	engine.GET("/teams", authn.Require(transport.PanelistOnly), c.getAll)
	engine.GET("/teams/:team_id", authn.Require(transport.PanelistOnly), c.get)
	engine.PUT("/teams/:team_id/reset-password", authn.Require(transport.AdminOnly), c.resetPassword)
	engine.DELETE("/teams/:team_id", authn.Require(transport.AdminOnly), c.delete)
}

// setUseCase accepts a number or a numeric string. Zero clears the selection;
// anything else must name an active use case, whose name is copied onto the team.
func (c *TeamController) setUseCase(ctx context.Context, raw json.RawMessage, changes storage.Changes) error {
	id, ok := wholeNumber(raw, true)
	if !ok {
		return badRequest("Invalid use_case")
	}
	if id == 0 {
		changes["use_case"] = 0
		changes["use_case_name"] = ""
		return nil
	}

	useCase, err := c.useCasesStorage.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return badRequest("Invalid use_case")
	}
	if err != nil {
		return err
	}
	if !useCase.IsActive() {
		return badRequest("Invalid use_case")
	}

	changes["use_case"] = id
	changes["use_case_name"] = useCase.Name
	return nil
}

// getCard godoc
// @Summary Public team card
// @Description Shareable team view without passwords or member emails
// @Tags teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {object} models.TeamCardResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /team-card/{team_id} [get]
func (c *TeamController) getCard(g *gin.Context) {
	team, err := c.teamsStorage.Get(g.Request.Context(), g.Param("team_id"))
	if err != nil {
		respondError(g, err, "Team not found")
		return
	}
	g.JSON(http.StatusOK, models.TransformTeamToCard(team))
}

// getOwn godoc
// @Summary Get the caller's team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} storage.Team
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /team/me [get]
func (c *TeamController) getOwn(g *gin.Context) {
	principal := transport.CurrentPrincipal(g)
	team, err := c.teamsStorage.Get(g.Request.Context(), principal.TeamID)
	if err != nil {
		respondError(g, err, "Team not found")
		return
	}
	g.JSON(http.StatusOK, team)
}

// updateOwn godoc
// @Summary Update the caller's team
// @Description Accepts any of team_name, use_case, solution_description, services_used, members; other fields are ignored
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} storage.Team
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /team/me [put]
func (c *TeamController) updateOwn(g *gin.Context) {
	ctx := g.Request.Context()
	principal := transport.CurrentPrincipal(g)

	changes, err := c.fields.changes(ctx, transport.ReadBody(g))
	if err != nil {
		respondError(g, err, "Team not found")
		return
	}

	team, err := c.teamsStorage.Update(ctx, principal.TeamID, changes)
	if err != nil {
		respondError(g, err, "Team not found")
		return
	}
	g.JSON(http.StatusOK, team)
}

// getAll godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TeamsResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /teams [get]
func (c *TeamController) getAll(g *gin.Context) {
	teams, err := c.teamsStorage.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, err, "")
		return
	}
	if teams == nil {
		teams = []*storage.Team{}
	}
	g.JSON(http.StatusOK, models.TeamsResponse{Teams: teams})
}

// get godoc
// @Summary Get a team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param team_id path string true "Team ID"
// @Success 200 {object} storage.Team
// @Failure 404 {object} models.ErrorResponse
// @Router /teams/{team_id} [get]
func (c *TeamController) get(g *gin.Context) {
	team, err := c.teamsStorage.Get(g.Request.Context(), g.Param("team_id"))
	if err != nil {
		respondError(g, err, "Team not found")
		return
	}
	g.JSON(http.StatusOK, team)
}

// resetPassword godoc
// @Summary Reset a team password
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team_id path string true "Team ID"
// @Param request body models.PasswordResetRequest true "New password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /teams/{team_id}/reset-password [put]
func (c *TeamController) resetPassword(g *gin.Context) {
	teamID := g.Param("team_id")
	hash, err := newPasswordHash(c.validate, transport.ReadBody(g))
	if err != nil {
		respondError(g, err, "")
		return
	}

	if _, err := c.teamsStorage.Update(g.Request.Context(), teamID, storage.Changes{"password": hash}); err != nil {
		respondError(g, err, "Team not found")
		return
	}

	logging.Log.Infof("TEAM: password reset for %s", teamID)
	g.JSON(http.StatusOK, models.MessageResponse{Message: fmt.Sprintf("Password reset successfully for team %s", teamID)})
}

// delete godoc
// @Summary Delete a team and its scores
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param team_id path string true "Team ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /teams/{team_id} [delete]
func (c *TeamController) delete(g *gin.Context) {
	ctx := g.Request.Context()
	teamID := g.Param("team_id")

	team, err := c.teamsStorage.Get(ctx, teamID)
	if err != nil {
		respondError(g, err, "Team not found")
		return
	}
	teamName := team.TeamName
	if teamName == "" {
		teamName = teamID
	}

	deleted, err := c.scoresStorage.DeleteByTeam(ctx, teamID)
	if err != nil {
		respondError(g, err, "")
		return
	}
	if err := c.teamsStorage.Delete(ctx, teamID); err != nil {
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("TEAM: deleted team %s with %d scores", teamID, deleted)
	g.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Team \"%s\" and all associated scores deleted successfully", teamName),
	})
}

// newPasswordHash validates new_password and hashes it.
func newPasswordHash(validate *validator.Validate, body transport.Body) (string, error) {
	req := models.PasswordResetRequest{NewPassword: body.String("new_password")}
	if err := validate.Struct(req); err != nil {
		if _, ok := fieldErrors(err); ok {
			return "", badRequest("new_password required (minimum 6 characters)")
		}
		return "", err
	}
	return auth.HashPassword(req.NewPassword)
}

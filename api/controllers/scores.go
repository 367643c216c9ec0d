package controllers

import (
	"net/http"

	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ScoreController struct {
	scoresStorage storage.ScoreStorage
	teamsStorage  storage.TeamStorage
	validate      *validator.Validate
}

func NewScoreController(scoreStorage storage.ScoreStorage, teamStorage storage.TeamStorage) *ScoreController {
	return &ScoreController{
		scoresStorage: scoreStorage,
		teamsStorage:  teamStorage,
		validate:      newValidator(),
	}
}

func (c *ScoreController) RegisterRoutes(engine *gin.Engine, authn *transport.Authenticator) {
	group := engine.Group("/scores")

	group.POST("", authn.Require(transport.PanelistOnly), c.submit)
	group.GET("", authn.Require(transport.AnyPrincipal), c.getAll)
	group.GET("/:team_id", authn.Require(transport.AnyPrincipal), c.getByTeam)
}

// parseScoreRequest reads the ratings in order. Missing ratings stay nil and
// ratings that are not whole numbers become 0, so the validator reports the
// first offending field either way.
func (c *ScoreController) parseScoreRequest(body transport.Body) (*models.ScoreRequest, error) {
	req := &models.ScoreRequest{
		TeamID:   body.String("team_id"),
		Comments: body.String("comments"),
	}
	if req.TeamID == "" {
		return nil, badRequest("team_id required")
	}

	ratings := []**int{&req.Presentation, &req.Innovation, &req.Functionality, &req.AWSWellArchitected}
	for i, field := range models.RatingFields {
		raw, ok := body[field]
		if !ok {
			continue
		}
		v, _ := wholeNumber(raw, false)
		*ratings[i] = &v
	}

	if err := c.validate.Struct(req); err != nil {
		errs, ok := fieldErrors(err)
		if !ok {
			return nil, err
		}
		if errs[0].Tag() == "required" {
			return nil, badRequest("%s score required", errs[0].Field())
		}
		return nil, badRequest("%s must be between 1 and 5", errs[0].Field())
	}
	return req, nil
}

// submit godoc
// @Summary Submit or replace a score
// @Description One score per (team, panelist); a second submission overwrites the first
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ScoreRequest true "Score"
// @Success 200 {object} models.ScoreSubmitResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scores [post]
func (c *ScoreController) submit(g *gin.Context) {
	ctx := g.Request.Context()
	principal := transport.CurrentPrincipal(g)

	req, err := c.parseScoreRequest(transport.ReadBody(g))
	if err != nil {
		respondError(g, err, "")
		return
	}

	if _, err := c.teamsStorage.Get(ctx, req.TeamID); err != nil {
		respondError(g, err, "Team not found")
		return
	}

	score := &storage.Score{
		TeamID:             req.TeamID,
		PanelistID:         principal.PanelistID,
		Presentation:       *req.Presentation,
		Innovation:         *req.Innovation,
		Functionality:      *req.Functionality,
		AWSWellArchitected: *req.AWSWellArchitected,
		Comments:           req.Comments,
		SubmittedAt:        storage.NowTimestamp(),
	}
	score.Total = score.Presentation + score.Innovation + score.Functionality + score.AWSWellArchitected

	if err := c.scoresStorage.Put(ctx, score); err != nil {
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("SCORE: %s scored %s with total %d", score.PanelistID, score.TeamID, score.Total)
	g.JSON(http.StatusOK, models.ScoreSubmitResponse{
		Message:    "Score submitted successfully",
		TeamID:     score.TeamID,
		PanelistID: score.PanelistID,
		Total:      score.Total,
	})
}

// getAll godoc
// @Summary Leaderboard and all scores
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AllScoresResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /scores [get]
func (c *ScoreController) getAll(g *gin.Context) {
	scores, err := c.scoresStorage.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, err, "")
		return
	}
	if scores == nil {
		scores = []*storage.Score{}
	}
	g.JSON(http.StatusOK, models.AllScoresResponse{
		Leaderboard: models.BuildLeaderboard(scores),
		AllScores:   scores,
	})
}

// getByTeam godoc
// @Summary Scores of one team
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param team_id path string true "Team ID"
// @Success 200 {object} models.TeamScoresResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /scores/{team_id} [get]
func (c *ScoreController) getByTeam(g *gin.Context) {
	teamID := g.Param("team_id")
	scores, err := c.scoresStorage.GetByTeam(g.Request.Context(), teamID)
	if err != nil {
		respondError(g, err, "")
		return
	}
	if scores == nil {
		scores = []*storage.Score{}
	}
	g.JSON(http.StatusOK, models.TeamScoresResponse{TeamID: teamID, Scores: scores})
}

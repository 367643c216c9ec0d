package controllers

import (
	"net/http"

	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/gin-gonic/gin"
)

type JudgingCriteriaController struct {
	criteriaStorage storage.JudgingCriteriaStorage
	fields          updatableFields
}

func NewJudgingCriteriaController(criteriaStorage storage.JudgingCriteriaStorage) *JudgingCriteriaController {
	return &JudgingCriteriaController{
		criteriaStorage: criteriaStorage,
		fields: updatableFields{
			"intro":             setString("intro"),
			"categories":        setDocument("categories"),
			"required_tool":     setDocument("required_tool"),
			"expected_services": setDocument("expected_services"),
			"closing":           setString("closing"),
		},
	}
}

func (c *JudgingCriteriaController) RegisterRoutes(engine *gin.Engine, authn *transport.Authenticator) {
	engine.GET("/judging-criteria", c.get)
	engine.PUT("/judging-criteria", authn.Require(transport.AdminOnly), c.update)
}

// get godoc
// @Summary Get the judging criteria
// @Tags judging-criteria
// @Produce json
// @Success 200 {object} storage.JudgingCriteria
// @Failure 404 {object} models.ErrorResponse
// @Router /judging-criteria [get]
func (c *JudgingCriteriaController) get(g *gin.Context) {
	criteria, err := c.criteriaStorage.Get(g.Request.Context())
	if err != nil {
		respondError(g, err, "Judging criteria not found")
		return
	}
	g.JSON(http.StatusOK, criteria)
}

// update godoc
// @Summary Update the judging criteria
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} storage.JudgingCriteria
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /judging-criteria [put]
func (c *JudgingCriteriaController) update(g *gin.Context) {
	ctx := g.Request.Context()
	changes, err := c.fields.changes(ctx, transport.ReadBody(g))
	if err != nil {
		respondError(g, err, "")
		return
	}

	criteria, err := c.criteriaStorage.Update(ctx, changes)
	if err != nil {
		respondError(g, err, "Judging criteria not found")
		return
	}
	g.JSON(http.StatusOK, criteria)
}

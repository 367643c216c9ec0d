package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/gin-gonic/gin"
)

type UseCaseController struct {
	useCasesStorage storage.UseCaseStorage
	fields          updatableFields
}

func NewUseCaseController(useCaseStorage storage.UseCaseStorage) *UseCaseController {
	return &UseCaseController{
		useCasesStorage: useCaseStorage,
		fields: updatableFields{
			"name":            setString("name"),
			"archetype":       setString("archetype"),
			"quote":           setString("quote"),
			"background":      setString("background"),
			"reality":         setString("reality"),
			"persona":         setString("persona"),
			"tension":         setString("tension"),
			"focus":           setString("focus"),
			"challenges":      setStringList("challenges"),
			"values":          setStringList("values"),
			"closing":         setString("closing"),
			"ascii_logo":      setString("ascii_logo"),
			"loading_message": setString("loading_message"),
			"sort_order":      setInt("sort_order"),
			"active":          setBool("active"),
		},
	}
}

func (c *UseCaseController) RegisterRoutes(engine *gin.Engine, authn *transport.Authenticator) {
	group := engine.Group("/use-cases")

	group.GET("", c.getAll)
	group.GET("/:use_case_id", c.get)
	group.POST("", authn.Require(transport.AdminOnly), c.create)
	group.PUT("/:use_case_id", authn.Require(transport.AdminOnly), c.update)
	group.DELETE("/:use_case_id", authn.Require(transport.AdminOnly), c.delete)
}

func useCaseID(g *gin.Context) (int, error) {
	id, err := strconv.Atoi(g.Param("use_case_id"))
	if err != nil {
		return 0, badRequest("Invalid use_case_id")
	}
	return id, nil
}

// getAll godoc
// @Summary List active use cases
// @Description Ordered by sort_order, then id
// @Tags use-cases
// @Produce json
// @Success 200 {object} models.UseCasesResponse
// @Router /use-cases [get]
func (c *UseCaseController) getAll(g *gin.Context) {
	all, err := c.useCasesStorage.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, err, "")
		return
	}

	active := make([]*storage.UseCase, 0, len(all))
	for _, uc := range all {
		if uc.IsActive() {
			active = append(active, uc)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Order() != active[j].Order() {
			return active[i].Order() < active[j].Order()
		}
		return active[i].UseCaseID < active[j].UseCaseID
	})

	g.JSON(http.StatusOK, models.UseCasesResponse{UseCases: active})
}

// get godoc
// @Summary Get a use case
// @Description Inactive use cases are returned too
// @Tags use-cases
// @Produce json
// @Param use_case_id path int true "Use case ID"
// @Success 200 {object} storage.UseCase
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /use-cases/{use_case_id} [get]
func (c *UseCaseController) get(g *gin.Context) {
	id, err := useCaseID(g)
	if err != nil {
		respondError(g, err, "")
		return
	}

	useCase, err := c.useCasesStorage.Get(g.Request.Context(), id)
	if err != nil {
		respondError(g, err, "Use case not found")
		return
	}
	g.JSON(http.StatusOK, useCase)
}

// create godoc
// @Summary Create a use case
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UseCaseCreateRequest true "Use case"
// @Success 201 {object} models.UseCaseCreateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /use-cases [post]
func (c *UseCaseController) create(g *gin.Context) {
	ctx := g.Request.Context()
	body := transport.ReadBody(g)

	for _, field := range models.UseCaseRequiredFields {
		if !body.Has(field) {
			respondError(g, badRequest("%s is required", field), "")
			return
		}
	}

	var req models.UseCaseCreateRequest
	if err := body.Decode(&req); err != nil {
		respondError(g, badRequest("Invalid use case: %v", err), "")
		return
	}

	id, err := c.useCasesStorage.NextID(ctx)
	if err != nil {
		respondError(g, err, "")
		return
	}

	useCase := models.TransformUseCaseCreateRequest(id, &req, storage.NowTimestamp())
	if err := c.useCasesStorage.Create(ctx, useCase); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			g.JSON(http.StatusConflict, models.ErrorResponse{Error: "Use case ID already exists"})
			return
		}
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("USECASE: created use case %d (%s)", useCase.UseCaseID, useCase.Name)
	g.JSON(http.StatusCreated, models.UseCaseCreateResponse{Message: "Use case created", UseCase: useCase})
}

// update godoc
// @Summary Update a use case
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param use_case_id path int true "Use case ID"
// @Success 200 {object} storage.UseCase
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /use-cases/{use_case_id} [put]
func (c *UseCaseController) update(g *gin.Context) {
	ctx := g.Request.Context()
	id, err := useCaseID(g)
	if err != nil {
		respondError(g, err, "")
		return
	}

	if _, err := c.useCasesStorage.Get(ctx, id); err != nil {
		respondError(g, err, "Use case not found")
		return
	}

	changes, err := c.fields.changes(ctx, transport.ReadBody(g))
	if err != nil {
		respondError(g, err, "")
		return
	}

	useCase, err := c.useCasesStorage.Update(ctx, id, changes)
	if err != nil {
		respondError(g, err, "Use case not found")
		return
	}
	g.JSON(http.StatusOK, useCase)
}

// delete godoc
// @Summary Deactivate a use case
// @Description Soft delete: the record stays and is hidden from the list
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param use_case_id path int true "Use case ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /use-cases/{use_case_id} [delete]
func (c *UseCaseController) delete(g *gin.Context) {
	id, err := useCaseID(g)
	if err != nil {
		respondError(g, err, "")
		return
	}

	if _, err := c.useCasesStorage.Update(g.Request.Context(), id, storage.Changes{"active": false}); err != nil {
		respondError(g, err, "Use case not found")
		return
	}

	logging.Log.Infof("USECASE: deactivated use case %d", id)
	g.JSON(http.StatusOK, models.MessageResponse{Message: "Use case deactivated"})
}

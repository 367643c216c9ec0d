package controllers

import (
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

type PanelistController struct {
	panelistsStorage storage.PanelistStorage
	validate         *validator.Validate
}

func NewPanelistController(panelistStorage storage.PanelistStorage) *PanelistController {
	return &PanelistController{
		panelistsStorage: panelistStorage,
		validate:         newValidator(),
	}
}

func (c *PanelistController) RegisterRoutes(engine *gin.Engine, authn *transport.Authenticator) {
	group := engine.Group("/panelists", authn.Require(transport.AdminOnly))

	group.GET("", c.getAll)
	group.POST("", c.create)
	group.PUT("/:panelist_id/reset-password", c.resetPassword)
	group.PUT("/:panelist_id/toggle-admin", c.toggleAdmin)
}

// getAll godoc
// @Summary List panelists
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PanelistsResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /panelists [get]
func (c *PanelistController) getAll(g *gin.Context) {
	panelists, err := c.panelistsStorage.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, err, "")
		return
	}
	if panelists == nil {
		panelists = []*storage.Panelist{}
	}
	g.JSON(http.StatusOK, models.PanelistsResponse{Panelists: panelists})
}

// create godoc
// @Summary Create a panelist
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PanelistCreateRequest true "Panelist"
// @Success 201 {object} models.PanelistCreateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /panelists [post]
func (c *PanelistController) create(g *gin.Context) {
	body := transport.ReadBody(g)
	req := models.PanelistCreateRequest{
		PanelistID: normalizeID(body.String("panelist_id"), true),
		Name:       body.String("name"),
		Password:   body.String("password"),
		IsAdmin:    body.Bool("is_admin"),
	}

	if err := c.validate.Struct(req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: credentialsError(err, "panelist_id, name, and password required", "panelist_id")})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(g, err, "")
		return
	}

	now := storage.NowTimestamp()
	panelist := &storage.Panelist{
		PanelistID: req.PanelistID,
		Name:       req.Name,
		Password:   hash,
		IsAdmin:    req.IsAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.panelistsStorage.Create(g.Request.Context(), panelist); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			g.JSON(http.StatusConflict, models.ErrorResponse{Error: "Panelist ID already exists"})
			return
		}
		respondError(g, err, "")
		return
	}

	logging.Log.Infof("PANELIST: created %s (admin=%t) by %s", panelist.PanelistID, panelist.IsAdmin, transport.CurrentPrincipal(g).PanelistID)
	g.JSON(http.StatusCreated, models.PanelistCreateResponse{
		Message:    "Panelist created successfully",
		PanelistID: panelist.PanelistID,
		Name:       panelist.Name,
		IsAdmin:    panelist.IsAdmin,
	})
}

// resetPassword godoc
// @Summary Reset a panelist password
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param panelist_id path string true "Panelist ID"
// @Param request body models.PasswordResetRequest true "New password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /panelists/{panelist_id}/reset-password [put]
func (c *PanelistController) resetPassword(g *gin.Context) {
	panelistID := g.Param("panelist_id")
	hash, err := newPasswordHash(c.validate, transport.ReadBody(g))
	if err != nil {
		respondError(g, err, "")
		return
	}

	if _, err := c.panelistsStorage.Update(g.Request.Context(), panelistID, storage.Changes{"password": hash}); err != nil {
		respondError(g, err, "Panelist not found")
		return
	}

	logging.Log.Infof("PANELIST: password reset for %s", panelistID)
	g.JSON(http.StatusOK, models.MessageResponse{Message: fmt.Sprintf("Password reset successfully for panelist %s", panelistID)})
}

// toggleAdmin godoc
// @Summary Promote or demote a panelist
// @Description Admins cannot change their own flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param panelist_id path string true "Panelist ID"
// @Success 200 {object} models.ToggleAdminResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /panelists/{panelist_id}/toggle-admin [put]
func (c *PanelistController) toggleAdmin(g *gin.Context) {
	ctx := g.Request.Context()
	panelistID := g.Param("panelist_id")

	if panelistID == transport.CurrentPrincipal(g).PanelistID {
		g.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Cannot modify your own admin status"})
		return
	}

	current, err := c.panelistsStorage.Get(ctx, panelistID)
	if err != nil {
		respondError(g, err, "Panelist not found")
		return
	}

	updated, err := c.panelistsStorage.Update(ctx, panelistID, storage.Changes{"is_admin": !current.IsAdmin})
	if err != nil {
		respondError(g, err, "Panelist not found")
		return
	}

	status := "demoted from admin"
	if updated.IsAdmin {
		status = "promoted to admin"
	}
	logging.Log.Infof("PANELIST: %s %s", panelistID, status)
	g.JSON(http.StatusOK, models.ToggleAdminResponse{
		Message:    fmt.Sprintf("Panelist %s %s", panelistID, status),
		PanelistID: panelistID,
		IsAdmin:    updated.IsAdmin,
	})
}

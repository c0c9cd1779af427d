package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/services"
	"github.com/nucesstack/notestack/internal/middleware"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/helpers"
)

// ModerationController drives the pending-note review queue.
type ModerationController struct {
	moderationService *services.ModerationService
}

// NewModerationController creates a new ModerationController
func NewModerationController(moderationService *services.ModerationService) *ModerationController {
	return &ModerationController{moderationService: moderationService}
}

// ListPending returns the paginated review queue.
func (c *ModerationController) ListPending(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	pending, err := c.moderationService.ListPending(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pending))
}

// Approve publishes a pending note.
func (c *ModerationController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	note, err := c.moderationService.Approve(ctx, id, middleware.CurrentUsername(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// Deny removes a pending note, keeping an audit record.
func (c *ModerationController) Deny(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.moderationService.Deny(ctx, id, middleware.CurrentUsername(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Note denied and removed"}))
}

// ListDenials returns the denial audit trail, newest first. The limit
// query parameter caps the number of rows (default 50, max 200).
func (c *ModerationController) ListDenials(ctx *gin.Context) {
	limit := uint64(50)
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("limit must be a positive number"))
			return
		}
		if parsed > 200 {
			parsed = 200
		}
		limit = parsed
	}

	denials, err := c.moderationService.ListDenials(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(denials))
}

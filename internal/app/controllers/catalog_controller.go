package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/services"
	"github.com/nucesstack/notestack/internal/middleware"
)

// CatalogController serves the public, read-only catalog: semesters,
// their subjects, and approved notes.
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListSemesters returns all semesters.
func (c *CatalogController) ListSemesters(ctx *gin.Context) {
	semesters, err := c.catalogService.ListSemesters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(semesters))
}

// ListSubjects returns a semester's subjects with approved note counts.
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.ListSubjectsBySemesterSlug(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subjects))
}

// ListNotes returns a subject's approved notes.
func (c *CatalogController) ListNotes(ctx *gin.Context) {
	notes, err := c.catalogService.ListNotesBySubjectSlug(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

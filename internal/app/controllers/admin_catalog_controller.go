package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/services"
	"github.com/nucesstack/notestack/internal/middleware"
)

// AdminCatalogController manages semesters and subjects from the panel.
type AdminCatalogController struct {
	catalogService *services.CatalogService
	noteService    *services.NoteService
}

// NewAdminCatalogController creates a new AdminCatalogController
func NewAdminCatalogController(catalogService *services.CatalogService, noteService *services.NoteService) *AdminCatalogController {
	return &AdminCatalogController{
		catalogService: catalogService,
		noteService:    noteService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListSemesters returns all semesters (same data as the public route,
// kept under the panel prefix so the panel works off one API base).
func (c *AdminCatalogController) ListSemesters(ctx *gin.Context) {
	semesters, err := c.catalogService.ListSemesters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(semesters))
}

// CreateSemester creates a semester.
func (c *AdminCatalogController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.catalogService.CreateSemester(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(semester))
}

// ListSubjects returns all subjects with full note counts.
func (c *AdminCatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.ListSubjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subjects))
}

// CreateSubject creates a subject under a semester.
func (c *AdminCatalogController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	subject, err := c.catalogService.CreateSubject(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(subject))
}

// DeleteSubject removes a subject.
func (c *AdminCatalogController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteSubject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Subject deleted"}))
}

// ListSubjectNotes returns every note under a subject, pending ones
// included.
func (c *AdminCatalogController) ListSubjectNotes(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	notes, err := c.noteService.ListNotesBySubjectID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

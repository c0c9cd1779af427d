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

// NoteController handles panel-side note management.
type NoteController struct {
	noteService *services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// ListNotes returns a paginated note list, optionally filtered by
// subjectId query parameter.
func (c *NoteController) ListNotes(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var subjectID *int64
	if raw := ctx.Query("subjectId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subjectId").
				WithDetails("subjectId must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		subjectID = &id
	}

	notes, err := c.noteService.ListNotes(ctx, subjectID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// GetNote returns one note by ID.
func (c *NoteController) GetNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	note, err := c.noteService.GetNote(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// CreateNote creates an approved note directly from the panel.
func (c *NoteController) CreateNote(ctx *gin.Context) {
	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid note data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	note, err := c.noteService.CreateNote(ctx, &req, middleware.CurrentUsername(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(note))
}

// UpdateNote rewrites a note's metadata and identifiers.
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid note data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	note, err := c.noteService.UpdateNote(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DeleteNote removes a note.
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Note deleted"}))
}

// NotesCount returns the total note count with a per-semester
// breakdown for the panel dashboard.
func (c *NoteController) NotesCount(ctx *gin.Context) {
	total, breakdown, err := c.noteService.NotesCount(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if raw := ctx.Query("semester_id"); raw != "" {
		semesterID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("semester_id must be a number"))
			return
		}
		var count int64
		for _, entry := range breakdown {
			if entry.SemesterID == semesterID {
				count = entry.Count
				break
			}
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
			"semesterId": semesterID,
			"count":      count,
		}))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"total":       total.Count,
		"perSemester": breakdown,
	}))
}

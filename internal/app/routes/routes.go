package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nucesstack/notestack/internal/app/controllers"
	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	adminCatalogController *controllers.AdminCatalogController,
	noteController *controllers.NoteController,
	submissionController *controllers.SubmissionController,
	moderationController *controllers.ModerationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Public catalog routes ---
	v1.GET("/semesters", catalogController.ListSemesters)
	v1.GET("/semesters/:slug/subjects", catalogController.ListSubjects)
	v1.GET("/subjects/:slug/notes", catalogController.ListNotes)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Contributors and admins may both submit.
	authenticated.POST("/submissions", submissionController.Submit)

	// --- Admin panel routes ---
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/semesters", adminCatalogController.ListSemesters)
		admin.POST("/semesters", adminCatalogController.CreateSemester)

		admin.GET("/subjects", adminCatalogController.ListSubjects)
		admin.POST("/subjects", adminCatalogController.CreateSubject)
		admin.DELETE("/subjects/:id", adminCatalogController.DeleteSubject)
		admin.GET("/subjects/:id/notes", adminCatalogController.ListSubjectNotes)

		admin.GET("/notes", noteController.ListNotes)
		admin.POST("/notes", noteController.CreateNote)
		admin.GET("/notes/:id", noteController.GetNote)
		admin.PUT("/notes/:id", noteController.UpdateNote)
		admin.DELETE("/notes/:id", noteController.DeleteNote)
		admin.GET("/notes-count", noteController.NotesCount)

		admin.GET("/pending-notes", moderationController.ListPending)
		admin.POST("/pending-notes/:id/approve", moderationController.Approve)
		admin.POST("/pending-notes/:id/deny", moderationController.Deny)
		admin.GET("/denied-notes", moderationController.ListDenials)
	}
}

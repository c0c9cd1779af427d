package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/repositories"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/auth"
	"github.com/nucesstack/notestack/internal/pkg/helpers"
	"github.com/nucesstack/notestack/internal/pkg/logger"
)

const defaultAdminUsername = "admin"

// CreateDefaultData seeds the first admin account and a starter
// semester/subject pair so a fresh deployment is usable immediately.
// Everything here is idempotent; existing rows are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	adminRepo := repositories.NewAdminRepository(dbPool)
	semesterRepo := repositories.NewSemesterRepository(dbPool)
	subjectRepo := repositories.NewSubjectRepository(dbPool)

	var finalErr error

	exists, err := adminRepo.ExistsByUsername(ctx, defaultAdminUsername)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		password := os.Getenv("ADMIN_INITIAL_PASSWORD")
		if password == "" {
			logger.Warn().Msg("ADMIN_INITIAL_PASSWORD not set, skipping default admin creation")
		} else {
			hash, err := auth.HashPassword(password)
			if err != nil {
				finalErr = errors.Join(finalErr, err)
			} else {
				admin := &models.Admin{
					Username: defaultAdminUsername,
					Password: hash,
					Role:     models.RoleAdmin,
				}
				if err := adminRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
					logger.Error().Err(err).Msg("Error creating default admin account")
					finalErr = errors.Join(finalErr, err)
				} else {
					logger.Info().Str("username", defaultAdminUsername).Msg("Default admin account created")
				}
			}
		}
	}

	semesterName := "Fall 2025"
	semester := &models.Semester{Name: semesterName, Slug: helpers.Slugify(semesterName)}
	err = semesterRepo.Create(ctx, semester)
	switch {
	case err == nil:
		logger.Info().Str("slug", semester.Slug).Msg("Starter semester created")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		existing, errGet := semesterRepo.GetBySlug(ctx, semester.Slug)
		if errGet != nil {
			finalErr = errors.Join(finalErr, errGet)
		} else {
			semester = existing
		}
	default:
		logger.Error().Err(err).Msg("Error creating starter semester")
		finalErr = errors.Join(finalErr, err)
	}

	if semester.ID > 0 {
		subjectName := "Algorithms"
		subject := &models.Subject{
			Name:       subjectName,
			Slug:       helpers.Slugify(subjectName),
			SemesterID: semester.ID,
		}
		if err := subjectRepo.Create(ctx, subject); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			logger.Error().Err(err).Msg("Error creating starter subject")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/dberrors"
	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// SemesterRepository handles database operations for semesters
type SemesterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new semester and fills in its generated ID.
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	sql, args, err := r.sb.Insert("semesters").
		Columns("name", "slug").
		Values(semester.Name, semester.Slug).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create semester SQL")
		return fmt.Errorf("failed to build create semester query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&semester.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("slug", semester.Slug).Msg("Error executing create semester query")
		return fmt.Errorf("error creating semester: %w", err)
	}

	return nil
}

// GetAll retrieves all semesters ordered by creation.
func (r *SemesterRepository) GetAll(ctx context.Context) ([]*models.Semester, error) {
	sql, args, err := r.sb.Select("id", "name", "slug").
		From("semesters").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list semesters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		var s models.Semester
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug); err != nil {
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		semesters = append(semesters, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

// GetByID retrieves a semester by its ID.
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug retrieves a semester by its slug.
func (r *SemesterRepository) GetBySlug(ctx context.Context, slug string) (*models.Semester, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *SemesterRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Semester, error) {
	sql, args, err := r.sb.Select("id", "name", "slug").
		From("semesters").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get semester query: %w", err)
	}

	var s models.Semester
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		logger.Error().Err(err).Msg("Error scanning semester row")
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return &s, nil
}

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

// SubjectWithCount pairs a subject with its note count. Whether the
// count includes unapproved notes depends on how the list was queried.
type SubjectWithCount struct {
	models.Subject
	NotesCount int64 `db:"notes_count"`
}

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new subject and fills in its generated ID.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "slug", "semester_id", "description").
		Values(subject.Name, subject.Slug, subject.SemesterID, subject.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create subject SQL")
		return fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSemesterNotFound
		}
		logger.Error().Err(err).Str("slug", subject.Slug).Msg("Error executing create subject query")
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// selectWithCountQuery builds the subject list query with a note count
// aggregated per subject. When approvedOnly is set, unapproved notes
// are excluded from the count (public catalog view).
func (r *SubjectRepository) selectWithCountQuery(approvedOnly bool) squirrel.SelectBuilder {
	countExpr := "COUNT(n.id) AS notes_count"
	builder := r.sb.Select(
		"s.id", "s.name", "s.slug", "s.semester_id", "s.description", countExpr,
	).From("subjects s").
		GroupBy("s.id").
		OrderBy("s.id ASC")

	if approvedOnly {
		return builder.LeftJoin("notes n ON n.subject_id = s.id AND n.approved = TRUE")
	}
	return builder.LeftJoin("notes n ON n.subject_id = s.id")
}

// ListBySemester retrieves subjects for a semester with note counts.
func (r *SubjectRepository) ListBySemester(ctx context.Context, semesterID int64, approvedOnly bool) ([]*SubjectWithCount, error) {
	sqlStr, args, err := r.selectWithCountQuery(approvedOnly).
		Where(squirrel.Eq{"s.semester_id": semesterID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	return r.queryWithCount(ctx, sqlStr, args)
}

// ListAll retrieves every subject with note counts (admin view).
func (r *SubjectRepository) ListAll(ctx context.Context) ([]*SubjectWithCount, error) {
	sqlStr, args, err := r.selectWithCountQuery(false).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	return r.queryWithCount(ctx, sqlStr, args)
}

func (r *SubjectRepository) queryWithCount(ctx context.Context, sqlStr string, args []interface{}) ([]*SubjectWithCount, error) {
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*SubjectWithCount
	for rows.Next() {
		var s SubjectWithCount
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.SemesterID, &s.Description, &s.NotesCount); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// GetByID retrieves a subject by its ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug retrieves a subject by its slug.
func (r *SubjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Subject, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *SubjectRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "name", "slug", "semester_id", "description").
		From("subjects").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	var s models.Subject
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.Slug, &s.SemesterID, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &s, nil
}

// Delete removes a subject by ID. Notes referencing the subject keep
// the database from deleting it; that surfaces as a foreign key error.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("subject still has notes and cannot be deleted")
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error executing delete subject query")
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/dberrors"
	"github.com/nucesstack/notestack/internal/pkg/helpers"
	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// ListNotesParams holds filters and pagination for note listings.
type ListNotesParams struct {
	SubjectID *int64
	Approved  *bool
	Page      int
	Size      int
}

// SemesterNotesCount is one row of the per-semester note counter.
type SemesterNotesCount struct {
	SemesterID int64 `db:"semester_id"`
	Count      int64 `db:"count"`
}

// NoteRepository handles database operations for notes
type NoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const noteColumns = "id, title, description, subject_id, semester_id, pdf_id, video_id, approved, uploader"

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	err := row.Scan(
		&n.ID, &n.Title, &n.Description, &n.SubjectID, &n.SemesterID,
		&n.PdfID, &n.VideoID, &n.Approved, &n.Uploader,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note row")
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note and returns its generated ID.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	sql, args, err := r.sb.Insert("notes").
		Columns("title", "description", "subject_id", "semester_id", "pdf_id", "video_id", "approved", "uploader").
		Values(note.Title, note.Description, note.SubjectID, note.SemesterID, note.PdfID, note.VideoID, note.Approved, note.Uploader).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, fmt.Errorf("failed to build create note query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Str("title", note.Title).Msg("Error executing create note query")
		return 0, fmt.Errorf("error creating note: %w", err)
	}

	note.ID = id
	return id, nil
}

// GetByID retrieves a note by its ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sql, args, err := r.sb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get note query: %w", err)
	}

	return scanNote(r.db.QueryRow(ctx, sql, args...))
}

// ListBySubject retrieves notes for a subject, newest first. When
// approvedOnly is set, pending notes are excluded (public view).
func (r *NoteRepository) ListBySubject(ctx context.Context, subjectID int64, approvedOnly bool) ([]*models.Note, error) {
	builder := r.sb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("id DESC")
	if approvedOnly {
		builder = builder.Where(squirrel.Eq{"approved": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notes query: %w", err)
	}

	return r.queryNotes(ctx, sql, args)
}

// List retrieves a paginated, filtered list of notes, newest first.
func (r *NoteRepository) List(ctx context.Context, params ListNotesParams) ([]*models.Note, dto.PaginationInfo, error) {
	builder := r.sb.Select(noteColumns).From("notes").OrderBy("id DESC")
	countBuilder := r.sb.Select("count(*)").From("notes")

	if params.SubjectID != nil {
		builder = builder.Where(squirrel.Eq{"subject_id": *params.SubjectID})
		countBuilder = countBuilder.Where(squirrel.Eq{"subject_id": *params.SubjectID})
	}
	if params.Approved != nil {
		builder = builder.Where(squirrel.Eq{"approved": *params.Approved})
		countBuilder = countBuilder.Where(squirrel.Eq{"approved": *params.Approved})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to build count notes query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting notes")
		return nil, dto.PaginationInfo{}, fmt.Errorf("error counting notes: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sql, args, err := builder.Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to build list notes query: %w", err)
	}

	notes, err := r.queryNotes(ctx, sql, args)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return notes, helpers.NewPaginationInfo(total, params.Page, params.Size), nil
}

func (r *NoteRepository) queryNotes(ctx context.Context, sql string, args []interface{}) ([]*models.Note, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Description, &n.SubjectID, &n.SemesterID,
			&n.PdfID, &n.VideoID, &n.Approved, &n.Uploader,
		); err != nil {
			return nil, fmt.Errorf("error scanning note row: %w", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// Update rewrites a note's mutable fields.
func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	sql, args, err := r.sb.Update("notes").
		Set("title", note.Title).
		Set("description", note.Description).
		Set("pdf_id", note.PdfID).
		Set("video_id", note.VideoID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": note.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update note query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", note.ID).Msg("Error executing update note query")
		return fmt.Errorf("error updating note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Approve marks a note as approved. Approving an already approved note
// is a no-op that still succeeds.
func (r *NoteRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("notes").
		Set("approved", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve note query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error executing approve note query")
		return fmt.Errorf("error approving note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Delete removes a note by ID.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete note query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error executing delete note query")
		return fmt.Errorf("error deleting note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// CountAll returns the total number of notes, restricted to approved
// ones when approvedOnly is set.
func (r *NoteRepository) CountAll(ctx context.Context, approvedOnly bool) (int64, error) {
	builder := r.sb.Select("count(*)").From("notes")
	if approvedOnly {
		builder = builder.Where(squirrel.Eq{"approved": true})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting notes: %w", err)
	}
	return count, nil
}

// CountBySemester returns note counts grouped by semester, restricted
// to approved ones when approvedOnly is set.
func (r *NoteRepository) CountBySemester(ctx context.Context, approvedOnly bool) ([]SemesterNotesCount, error) {
	builder := r.sb.Select("semester_id", "count(*)").
		From("notes").
		GroupBy("semester_id").
		OrderBy("semester_id ASC")
	if approvedOnly {
		builder = builder.Where(squirrel.Eq{"approved": true})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by semester query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting notes by semester: %w", err)
	}
	defer rows.Close()

	var counts []SemesterNotesCount
	for rows.Next() {
		var c SemesterNotesCount
		if err := rows.Scan(&c.SemesterID, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning count row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/db"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// AuditRepository records moderation denials. The audit row and the
// note removal commit together, so denied submissions stay traceable.
type AuditRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(database *db.PostgresDB) *AuditRepository {
	return &AuditRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// DenyNote writes the audit row and deletes the note in a single
// transaction. A failed audit write leaves the note in the queue; a
// failed delete rolls the audit row back.
func (r *AuditRepository) DenyNote(ctx context.Context, record *models.DeniedNoteRecord) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertSQL, insertArgs, err := r.sb.Insert("denied_notes_log").
			Columns("note_id", "title", "pdf_id", "video_id", "uploader", "denied_by", "denied_at").
			Values(record.NoteID, record.Title, record.PdfID, record.VideoID, record.Uploader, record.DeniedBy, time.Now()).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build record denial query: %w", err)
		}

		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&record.ID); err != nil {
			logger.Error().Err(err).Int64("noteID", record.NoteID).Msg("Error executing record denial query")
			return fmt.Errorf("error recording denial: %w", err)
		}

		deleteSQL, deleteArgs, err := r.sb.Delete("notes").
			Where(squirrel.Eq{"id": record.NoteID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete denied note query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, deleteSQL, deleteArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("noteID", record.NoteID).Msg("Error deleting denied note")
			return fmt.Errorf("error deleting denied note: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNoteNotFound
		}

		return nil
	})
}

// ListDenials retrieves audit rows, newest first.
func (r *AuditRepository) ListDenials(ctx context.Context, limit uint64) ([]*models.DeniedNoteRecord, error) {
	sql, args, err := r.sb.Select("id", "note_id", "title", "pdf_id", "video_id", "uploader", "denied_by", "denied_at").
		From("denied_notes_log").
		OrderBy("denied_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list denials query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing denials: %w", err)
	}
	defer rows.Close()

	var records []*models.DeniedNoteRecord
	for rows.Next() {
		var rec models.DeniedNoteRecord
		if err := rows.Scan(&rec.ID, &rec.NoteID, &rec.Title, &rec.PdfID, &rec.VideoID, &rec.Uploader, &rec.DeniedBy, &rec.DeniedAt); err != nil {
			return nil, fmt.Errorf("error scanning denial row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

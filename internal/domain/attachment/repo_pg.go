package attachment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ucna/ucna/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type attachmentRepoPG struct{ pool *pgxpool.Pool }

func NewAttachmentRepoPG(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepoPG{pool: pool}
}

func (r *attachmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const attachmentCols = `id, assessment_id, category, file_name, content_type, size,
	blob_id, hash, uploaded_by, created_at`

func scanAttachment(row pgx.Row) (*Attachment, error) {
	var a Attachment
	err := row.Scan(&a.ID, &a.AssessmentID, &a.Category, &a.FileName, &a.ContentType,
		&a.Size, &a.BlobID, &a.Hash, &a.UploadedBy, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepoPG) Create(ctx context.Context, a *Attachment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO attachments (id, assessment_id, category, file_name, content_type,
			size, blob_id, hash, uploaded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.AssessmentID, a.Category, a.FileName, a.ContentType,
		a.Size, a.BlobID, a.Hash, a.UploadedBy)
	return err
}

func (r *attachmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+attachmentCols+` FROM attachments WHERE id = $1`, id)
	return scanAttachment(row)
}

func (r *attachmentRepoPG) ListByAssessment(ctx context.Context, assessmentID uuid.UUID, category string) ([]*Attachment, error) {
	query := `SELECT ` + attachmentCols + ` FROM attachments WHERE assessment_id = $1`
	args := []interface{}{assessmentID}
	if category != "" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.AssessmentID, &a.Category, &a.FileName, &a.ContentType,
			&a.Size, &a.BlobID, &a.Hash, &a.UploadedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *attachmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

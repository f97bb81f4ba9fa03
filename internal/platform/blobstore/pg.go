package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

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

// PGBlobStore keeps blob content and metadata in the blobs table.
type PGBlobStore struct{ pool *pgxpool.Pool }

func NewPGBlobStore(pool *pgxpool.Pool) *PGBlobStore {
	return &PGBlobStore{pool: pool}
}

func (s *PGBlobStore) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return s.pool
}

const blobCols = `id, assessment_id, category, file_name, content_type, size,
	hash, created_by, created_at`

func scanBlobMeta(row pgx.Row) (*BlobMetadata, error) {
	var m BlobMetadata
	err := row.Scan(&m.ID, &m.AssessmentID, &m.Category, &m.FileName, &m.ContentType,
		&m.Size, &m.Hash, &m.CreatedBy, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PGBlobStore) Upload(ctx context.Context, meta BlobMetadata, content io.Reader) (*BlobMetadata, error) {
	meta, data, err := prepareUpload(meta, content)
	if err != nil {
		return nil, err
	}

	_, err = s.conn(ctx).Exec(ctx, `
		INSERT INTO blobs (id, assessment_id, category, file_name, content_type,
			size, hash, created_by, content)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		meta.ID, meta.AssessmentID, meta.Category, meta.FileName, meta.ContentType,
		meta.Size, meta.Hash, meta.CreatedBy, data)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *PGBlobStore) Download(ctx context.Context, id string) (io.ReadCloser, *BlobMetadata, error) {
	var (
		m    BlobMetadata
		data []byte
	)
	err := s.conn(ctx).QueryRow(ctx, `
		SELECT `+blobCols+`, content FROM blobs WHERE id = $1`, id).
		Scan(&m.ID, &m.AssessmentID, &m.Category, &m.FileName, &m.ContentType,
			&m.Size, &m.Hash, &m.CreatedBy, &m.CreatedAt, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), &m, nil
}

func (s *PGBlobStore) Delete(ctx context.Context, id string) error {
	tag, err := s.conn(ctx).Exec(ctx, `DELETE FROM blobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlobNotFound
	}
	return nil
}

func (s *PGBlobStore) GetMetadata(ctx context.Context, id string) (*BlobMetadata, error) {
	row := s.conn(ctx).QueryRow(ctx,
		`SELECT `+blobCols+` FROM blobs WHERE id = $1`, id)
	return scanBlobMeta(row)
}

func (s *PGBlobStore) ListByAssessment(ctx context.Context, assessmentID, category string, limit, offset int) ([]*BlobMetadata, int, error) {
	if limit <= 0 {
		limit = 20
	}

	countQuery := `SELECT COUNT(*) FROM blobs WHERE assessment_id = $1`
	query := `SELECT ` + blobCols + ` FROM blobs WHERE assessment_id = $1`
	args := []interface{}{assessmentID}
	if category != "" {
		countQuery += ` AND category = $2`
		query += ` AND category = $2`
		args = append(args, category)
	}

	var total int
	if err := s.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*BlobMetadata
	for rows.Next() {
		var m BlobMetadata
		if err := rows.Scan(&m.ID, &m.AssessmentID, &m.Category, &m.FileName, &m.ContentType,
			&m.Size, &m.Hash, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &m)
	}
	return items, total, rows.Err()
}

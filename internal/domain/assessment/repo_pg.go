package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ucna/ucna/internal/platform/db"
	"github.com/ucna/ucna/internal/schema"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Assessment Repository ===========

type assessmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssessmentRepoPG(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepoPG{pool: pool}
}

func (r *assessmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const assessmentCols = `id, status, assessor_name, assessment_date, created_at, updated_at`

func (r *assessmentRepoPG) scan(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.Status, &a.AssessorName, &a.AssessmentDate,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *assessmentRepoPG) Create(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assessments (id, status, assessor_name, assessment_date)
		VALUES ($1,$2,$3,$4)`,
		a.ID, a.Status, a.AssessorName, a.AssessmentDate)
	return err
}

func (r *assessmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE id = $1`, id))
}

func (r *assessmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE assessments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assessmentRepoPG) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE assessments SET updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *assessmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+assessmentCols+` FROM assessments ORDER BY updated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

// =========== Section Repository ===========

// sectionRepoPG serves every section table through one implementation. The
// SQL is generated from the section's declared field list, so the schema
// package stays the single source of truth for column names.
type sectionRepoPG struct{ pool *pgxpool.Pool }

func NewSectionRepoPG(pool *pgxpool.Pool) SectionRepository {
	return &sectionRepoPG{pool: pool}
}

func (r *sectionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *sectionRepoPG) Upsert(ctx context.Context, assessmentID uuid.UUID, section *schema.Section, data map[string]string) error {
	cols := []string{"id", "assessment_id"}
	args := []interface{}{uuid.New(), assessmentID}
	var sets []string
	for _, f := range section.Fields {
		v, ok := data[f.Name]
		if !ok {
			continue
		}
		cols = append(cols, f.Name)
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", f.Name, f.Name))
	}
	if len(sets) == 0 {
		return nil
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES (%s)
		ON CONFLICT (assessment_id) DO UPDATE SET %s`,
		section.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(sets, ", "))

	_, err := r.conn(ctx).Exec(ctx, query, args...)
	return err
}

func (r *sectionRepoPG) Get(ctx context.Context, assessmentID uuid.UUID, section *schema.Section) (map[string]string, error) {
	names := section.FieldNames()
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE assessment_id = $1`,
		strings.Join(names, ", "), section.Table)

	dest := make([]interface{}, len(names))
	vals := make([]*string, len(names))
	for i := range vals {
		dest[i] = &vals[i]
	}
	err := r.conn(ctx).QueryRow(ctx, query, assessmentID).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec := make(map[string]string, len(names))
	for i, name := range names {
		if vals[i] != nil && *vals[i] != "" {
			rec[name] = *vals[i]
		}
	}
	return rec, nil
}

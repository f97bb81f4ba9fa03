package careplan

import (
	"context"
	"fmt"

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

// entryRepoPG serves all seven domain tables through one implementation; the
// table name comes off the domain and every table shares the same columns.
type entryRepoPG struct{ pool *pgxpool.Pool }

func NewEntryRepoPG(pool *pgxpool.Pool) EntryRepository {
	return &entryRepoPG{pool: pool}
}

func (r *entryRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const entryCols = `id, assessment_id, description, identified_need, planned_outcomes,
	how_to_achieve, level_of_need, review_date, created_at`

func (r *entryRepoPG) ListByAssessment(ctx context.Context, assessmentID uuid.UUID, domain Domain) ([]*Entry, error) {
	if !domain.Valid() {
		return nil, fmt.Errorf("unknown care plan domain: %s", domain)
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+entryCols+` FROM `+domain.Table()+` WHERE assessment_id = $1 ORDER BY created_at, id`,
		assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AssessmentID, &e.Description, &e.IdentifiedNeed,
			&e.PlannedOutcomes, &e.HowToAchieve, &e.LevelOfNeed, &e.ReviewDate,
			&e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}

func (r *entryRepoPG) Replace(ctx context.Context, assessmentID uuid.UUID, domain Domain, entries []*Entry) error {
	if !domain.Valid() {
		return fmt.Errorf("unknown care plan domain: %s", domain)
	}
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		c := r.conn(ctx)
		if _, err := c.Exec(ctx, `DELETE FROM `+domain.Table()+` WHERE assessment_id = $1`, assessmentID); err != nil {
			return err
		}
		for _, e := range entries {
			e.ID = uuid.New()
			e.AssessmentID = assessmentID
			if _, err := c.Exec(ctx, `
				INSERT INTO `+domain.Table()+` (id, assessment_id, description, identified_need,
					planned_outcomes, how_to_achieve, level_of_need, review_date)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				e.ID, e.AssessmentID, e.Description, e.IdentifiedNeed,
				e.PlannedOutcomes, e.HowToAchieve, e.LevelOfNeed, e.ReviewDate); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *entryRepoPG) DeleteByAssessment(ctx context.Context, assessmentID uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		c := r.conn(ctx)
		for _, d := range Domains() {
			if _, err := c.Exec(ctx, `DELETE FROM `+d.Table()+` WHERE assessment_id = $1`, assessmentID); err != nil {
				return err
			}
		}
		return nil
	})
}

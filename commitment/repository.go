package commitment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository is the pgxpool-backed commitment store. The commitments table
// keeps one open row per record (partial unique index on resolved_at IS NULL)
// and never deletes: resolution stamps resolved_at.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const openColumns = `id, record_id, due_date, set_at, created_at`

func (r *PGRepository) GetOpen(ctx context.Context, recordID string) (Commitment, error) {
	const query = `
		SELECT ` + openColumns + `
		FROM commitments
		WHERE record_id = $1 AND resolved_at IS NULL
	`
	var c Commitment
	if err := r.pool.QueryRow(ctx, query, recordID).Scan(&c.ID, &c.RecordID, &c.DueDate, &c.SetAt, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Commitment{}, ErrNotFound
		}
		return Commitment{}, fmt.Errorf("commitment: get open: %w", err)
	}
	return c, nil
}

// Ensure inserts an open commitment unless one already exists for the record.
func (r *PGRepository) Ensure(ctx context.Context, c Commitment) (Commitment, error) {
	const insert = `
		INSERT INTO commitments (id, record_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING ` + openColumns + `
	`
	var out Commitment
	err := r.pool.QueryRow(ctx, insert, c.ID, c.RecordID, c.CreatedAt).
		Scan(&out.ID, &out.RecordID, &out.DueDate, &out.SetAt, &out.CreatedAt)
	if err == nil {
		return out, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return r.GetOpen(ctx, c.RecordID)
	}
	return Commitment{}, fmt.Errorf("commitment: ensure: %w", err)
}

// SetDueDate updates the open commitment's promise. Plain UPDATE: concurrent
// writers for the same record resolve last-write-wins.
func (r *PGRepository) SetDueDate(ctx context.Context, recordID string, dueDate, setAt time.Time) (Commitment, error) {
	const update = `
		UPDATE commitments
		SET due_date = $2, set_at = $3
		WHERE record_id = $1 AND resolved_at IS NULL
		RETURNING ` + openColumns + `
	`
	var c Commitment
	if err := r.pool.QueryRow(ctx, update, recordID, dueDate, setAt).Scan(&c.ID, &c.RecordID, &c.DueDate, &c.SetAt, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Commitment{}, ErrNotFound
		}
		return Commitment{}, fmt.Errorf("commitment: set due date: %w", err)
	}
	return c, nil
}

func (r *PGRepository) Resolve(ctx context.Context, recordID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE commitments
		SET resolved_at = now()
		WHERE record_id = $1 AND resolved_at IS NULL
	`, recordID)
	if err != nil {
		return fmt.Errorf("commitment: resolve: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

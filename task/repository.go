package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"revtriage/hygiene"
)

// PGRepository stores reminder-task records in Postgres. Rows are append-only;
// the latest row per record is the one idempotency compares against.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Latest(ctx context.Context, recordID string) (ExistingTask, error) {
	const query = `
		SELECT task_id, record_id, created_at, issue_signature
		FROM reminder_tasks
		WHERE record_id = $1
		ORDER BY created_at DESC, task_id DESC
		LIMIT 1
	`
	var (
		t   ExistingTask
		sig []string
	)
	if err := r.pool.QueryRow(ctx, query, recordID).Scan(&t.TaskID, &t.RecordID, &t.CreatedAt, &sig); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ExistingTask{}, ErrNoExistingTask
		}
		return ExistingTask{}, fmt.Errorf("task: latest: %w", err)
	}
	t.IssueSignature = hygiene.Signature(sig)
	return t, nil
}

func (r *PGRepository) Record(ctx context.Context, t ExistingTask) error {
	const insert = `
		INSERT INTO reminder_tasks (task_id, record_id, created_at, issue_signature)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, insert, t.TaskID, t.RecordID, t.CreatedAt, []string(t.IssueSignature)); err != nil {
		return fmt.Errorf("task: record: %w", err)
	}
	return nil
}

package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"revtriage/calendar"
)

var (
	// ErrNotFound signals the requested record does not exist.
	ErrNotFound = errors.New("record: not found")
)

// Store is the read surface the engine evaluates from.
type Store interface {
	Fetch(ctx context.Context, filters Filters) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	FetchActivity(ctx context.Context, recordID string) ([]ActivityEvent, error)
}

// PGStore is the pgxpool-backed record store.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const recordColumns = `
	id, crm_id, kind, name, owner_id, pipeline, stage,
	stage_entered_at, amount, products, close_date, contract_ends_at,
	sentiment_risk, next_step, created_at, last_activity_at, next_activity_at, updated_at
`

// Fetch returns record snapshots matching the filters, newest first.
func (s *PGStore) Fetch(ctx context.Context, filters Filters) ([]Record, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 500 {
		filters.PageSize = 100
	}

	var (
		conds []string
		args  []any
	)
	addCond := func(expr string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filters.Kind != "" {
		addCond("kind = $%d", string(filters.Kind))
	}
	if filters.Pipeline != "" {
		addCond("pipeline = $%d", string(filters.Pipeline))
	}
	if filters.OwnerID != "" {
		addCond("owner_id = $%d", filters.OwnerID)
	}
	if filters.Quarter != 0 {
		start, end := calendar.QuarterBounds(filters.Year, filters.Quarter)
		addCond("close_date >= $%d", start)
		addCond("close_date < $%d", end)
	}
	if filters.StageCategory != "" {
		// Categories other than open map to a fixed stage-name list; open is
		// everything that does not map.
		if filters.StageCategory == StageOpen {
			addCond("lower(btrim(stage)) <> ALL($%d)", mappedStageNames())
		} else {
			addCond("lower(btrim(stage)) = ANY($%d)", stageNamesFor(filters.StageCategory))
		}
	}

	query := `SELECT ` + recordColumns + ` FROM records`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("record: fetch: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, filters.PageSize)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record: iterate: %w", err)
	}
	return records, nil
}

// GetByID fetches a single record snapshot.
func (s *PGStore) GetByID(ctx context.Context, id string) (Record, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// FetchActivity returns the logged activity events for a record, oldest first.
func (s *PGStore) FetchActivity(ctx context.Context, recordID string) ([]ActivityEvent, error) {
	const query = `
		SELECT id, record_id, type, occurred_at
		FROM activity_events
		WHERE record_id = $1
		ORDER BY occurred_at, id
	`
	rows, err := s.pool.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("record: fetch activity: %w", err)
	}
	defer rows.Close()

	events := make([]ActivityEvent, 0, 16)
	for rows.Next() {
		var (
			ev  ActivityEvent
			typ string
		)
		if err := rows.Scan(&ev.ID, &ev.RecordID, &typ, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("record: scan activity: %w", err)
		}
		ev.Type = ActivityType(typ)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record: iterate activity: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec            Record
		kind, pipeline string
		stageEnteredAt *time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.CRMID, &kind, &rec.Name, &rec.OwnerID, &pipeline, &rec.Stage,
		&stageEnteredAt, &rec.Amount, &rec.Products, &rec.CloseDate, &rec.ContractEndsAt,
		&rec.SentimentRisk, &rec.NextStep, &rec.CreatedAt, &rec.LastActivityAt, &rec.NextActivityAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("record: scan: %w", err)
	}
	rec.Kind = Kind(kind)
	rec.Pipeline = Pipeline(pipeline)
	rec.StageEnteredAt = stageEnteredAt
	rec.StageCategory = ResolveStageCategory(rec.Stage)
	return rec, nil
}

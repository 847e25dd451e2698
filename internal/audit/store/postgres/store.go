package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"simbahan/internal/audit"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
	txcontext "simbahan/pkg/platform/tx"
)

// Store implements audit.Store on PostgreSQL.
//
// Schema:
//
//	CREATE TABLE transition_records (
//	    id              UUID PRIMARY KEY,
//	    church_id       TEXT NOT NULL,
//	    from_status     TEXT NOT NULL,
//	    to_status       TEXT NOT NULL,
//	    actor_id        UUID NOT NULL,
//	    actor_role      TEXT NOT NULL,
//	    score           INTEGER NOT NULL,
//	    confidence      TEXT NOT NULL,
//	    is_heritage     BOOLEAN NOT NULL,
//	    notes           TEXT NOT NULL DEFAULT '',
//	    client_platform TEXT NOT NULL DEFAULT '',
//	    outcome         TEXT NOT NULL,
//	    error_code      TEXT NOT NULL DEFAULT '',
//	    created_at      TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX transition_records_church_idx
//	    ON transition_records (church_id, created_at DESC);
//
// Only INSERT and SELECT statements exist here; the ledger is append-only.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execer prefers a transaction stored in context so the church store can
// write status change and audit record atomically.
func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) Append(ctx context.Context, rec audit.TransitionRecord) error {
	query := `
		INSERT INTO transition_records (
			id, church_id, from_status, to_status, actor_id, actor_role,
			score, confidence, is_heritage, notes, client_platform,
			outcome, error_code, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		rec.ID,
		rec.ChurchID.String(),
		rec.FromStatus.String(),
		rec.ToStatus.String(),
		uuid.UUID(rec.ActorID),
		rec.ActorRole.String(),
		rec.Score.Score,
		string(rec.Score.Confidence),
		rec.Score.IsHeritage,
		rec.Notes,
		rec.ClientPlatform,
		string(rec.Outcome),
		rec.ErrorCode,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert transition record: %w", err)
	}
	return nil
}

func (s *Store) ListByChurch(ctx context.Context, churchID id.ParishID) ([]audit.TransitionRecord, error) {
	query := selectColumns + `
		WHERE church_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, churchID.String())
	if err != nil {
		return nil, fmt.Errorf("list transition records: %w", err)
	}
	defer rows.Close()

	var records []audit.TransitionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) LatestApplied(ctx context.Context, churchID id.ParishID, to models.Status) (*audit.TransitionRecord, error) {
	query := selectColumns + `
		WHERE church_id = $1 AND to_status = $2 AND outcome = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query,
		churchID.String(), to.String(), string(audit.OutcomeApplied))
	if err != nil {
		return nil, fmt.Errorf("find latest applied record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sentinel.ErrNotFound
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

const selectColumns = `
	SELECT id, church_id, from_status, to_status, actor_id, actor_role,
	       score, confidence, is_heritage, notes, client_platform,
	       outcome, error_code, created_at
	FROM transition_records
`

func scanRecord(rows *sql.Rows) (audit.TransitionRecord, error) {
	var (
		rec        audit.TransitionRecord
		churchID   string
		fromStatus string
		toStatus   string
		actorID    uuid.UUID
		actorRole  string
		confidence string
		outcome    string
	)
	err := rows.Scan(
		&rec.ID, &churchID, &fromStatus, &toStatus, &actorID, &actorRole,
		&rec.Score.Score, &confidence, &rec.Score.IsHeritage,
		&rec.Notes, &rec.ClientPlatform, &outcome, &rec.ErrorCode,
		&rec.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, sentinel.ErrNotFound
		}
		return rec, fmt.Errorf("scan transition record: %w", err)
	}
	rec.ChurchID = id.ParishID(churchID)
	rec.FromStatus = models.Status(fromStatus)
	rec.ToStatus = models.Status(toStatus)
	rec.ActorID = id.ActorID(actorID)
	rec.ActorRole = id.Role(actorRole)
	rec.Score.Confidence = models.Confidence(confidence)
	rec.Outcome = audit.Outcome(outcome)
	return rec, nil
}

// Package postgres implements the actor store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"simbahan/internal/actor/models"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
)

// Store persists actors.
//
// Schema:
//
//	CREATE TABLE actors (
//	    id          UUID PRIMARY KEY,
//	    role        TEXT NOT NULL,
//	    diocese     TEXT NOT NULL,
//	    parish      TEXT NOT NULL DEFAULT '',
//	    secret_hash BYTEA NOT NULL,
//	    active      BOOLEAN NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE UNIQUE INDEX actors_active_secretary_idx
//	    ON actors (parish) WHERE role = 'parish_secretary' AND active;
//
// The partial unique index enforces one active secretary per parish at the
// database level, matching the in-memory store's critical-section check.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, a *models.Actor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO actors (id, role, diocese, parish, secret_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID.String(), a.Role.String(), a.Diocese.String(), a.Parish.String(),
		a.SecretHash, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert actor: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, actorID id.ActorID) (*models.Actor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, role, diocese, parish, secret_hash, active, created_at, updated_at
		FROM actors WHERE id = $1`,
		actorID.String(),
	)

	var (
		a          models.Actor
		rawID      string
		rawRole    string
		rawDiocese string
		rawParish  string
	)
	err := row.Scan(&rawID, &rawRole, &rawDiocese, &rawParish, &a.SecretHash, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan actor: %w", err)
	}

	if a.ID, err = id.ParseActorID(rawID); err != nil {
		return nil, fmt.Errorf("parse actor id: %w", err)
	}
	a.Role = id.Role(rawRole)
	a.Diocese = id.Diocese(rawDiocese)
	a.Parish = id.ParishID(rawParish)
	return &a, nil
}

func (s *Store) Update(ctx context.Context, a *models.Actor) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE actors
		SET role = $2, diocese = $3, parish = $4, secret_hash = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		a.ID.String(), a.Role.String(), a.Diocese.String(), a.Parish.String(),
		a.SecretHash, a.Active, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

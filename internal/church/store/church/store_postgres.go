package church

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"simbahan/internal/audit"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
	txcontext "simbahan/pkg/platform/tx"
)

// PostgresStore implements the church repository on PostgreSQL.
//
// Schema:
//
//	CREATE TABLE churches (
//	    id                  TEXT PRIMARY KEY,
//	    diocese             TEXT NOT NULL,
//	    status              TEXT NOT NULL,
//	    heritage_tag        TEXT NOT NULL DEFAULT '',
//	    founding_year       INTEGER NOT NULL DEFAULT 0,
//	    architectural_style TEXT NOT NULL DEFAULT '',
//	    description         TEXT NOT NULL DEFAULT '',
//	    keywords            JSONB NOT NULL DEFAULT '[]',
//	    version             BIGINT NOT NULL,
//	    created_at          TIMESTAMPTZ NOT NULL,
//	    updated_at          TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX churches_diocese_idx ON churches (diocese, status);
//
// CompareAndSwap runs the guarded UPDATE and the transition-record INSERT in
// one transaction, sharing it with the audit store through the tx context.
type PostgresStore struct {
	db    *sql.DB
	audit audit.Store
}

func NewPostgres(db *sql.DB, audits audit.Store) *PostgresStore {
	return &PostgresStore{db: db, audit: audits}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Church) error {
	keywords, err := json.Marshal(c.Profile.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	query := `
		INSERT INTO churches (
			id, diocese, status, heritage_tag, founding_year,
			architectural_style, description, keywords,
			version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		c.ID.String(), c.Diocese.String(), c.Status.String(),
		string(c.Profile.HeritageTag), c.Profile.FoundingYear,
		c.Profile.ArchitecturalStyle, c.Profile.Description, keywords,
		c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert church: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, parish id.ParishID) (*models.Church, error) {
	row := s.db.QueryRowContext(ctx, selectChurch+` WHERE id = $1`, parish.String())
	return scanChurch(row)
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]models.Church, error) {
	query := selectChurch + ` WHERE ($1 = '' OR diocese = $1) AND ($2 = '' OR status = $2)`
	rows, err := s.db.QueryContext(ctx, query, filter.Diocese.String(), filter.Status.String())
	if err != nil {
		return nil, fmt.Errorf("list churches: %w", err)
	}
	defer rows.Close()

	var out []models.Church
	for rows.Next() {
		c, err := scanChurch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CompareAndSwap(ctx context.Context, parish id.ParishID, expectedVersion int64, to models.Status, rec audit.TransitionRecord) (*models.Church, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE churches
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4
	`, to.String(), rec.Timestamp, parish.String(), expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("compare-and-swap status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Distinguish a missing church from a stale version.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM churches WHERE id = $1)`, parish.String(),
		).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, sentinel.ErrNotFound
		}
		return nil, sentinel.ErrConflict
	}

	if err := s.audit.Append(txcontext.WithTx(ctx, tx), rec); err != nil {
		return nil, fmt.Errorf("append transition record: %w", err)
	}

	row := tx.QueryRowContext(ctx, selectChurch+` WHERE id = $1`, parish.String())
	updated, err := scanChurch(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return updated, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, parish id.ParishID, expectedVersion int64, profile models.Profile, now time.Time) (*models.Church, error) {
	keywords, err := json.Marshal(profile.Keywords)
	if err != nil {
		return nil, fmt.Errorf("marshal keywords: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE churches
		SET heritage_tag = $1, founding_year = $2, architectural_style = $3,
		    description = $4, keywords = $5,
		    version = version + 1, updated_at = $6
		WHERE id = $7 AND version = $8
	`, string(profile.HeritageTag), profile.FoundingYear, profile.ArchitecturalStyle,
		profile.Description, keywords, now, parish.String(), expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM churches WHERE id = $1)`, parish.String(),
		).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, sentinel.ErrNotFound
		}
		return nil, sentinel.ErrConflict
	}
	return s.Get(ctx, parish)
}

const selectChurch = `
	SELECT id, diocese, status, heritage_tag, founding_year,
	       architectural_style, description, keywords,
	       version, created_at, updated_at
	FROM churches
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChurch(row rowScanner) (*models.Church, error) {
	var (
		c        models.Church
		churchID string
		diocese  string
		status   string
		tag      string
		keywords []byte
	)
	err := row.Scan(
		&churchID, &diocese, &status, &tag, &c.Profile.FoundingYear,
		&c.Profile.ArchitecturalStyle, &c.Profile.Description, &keywords,
		&c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan church: %w", err)
	}
	if err := json.Unmarshal(keywords, &c.Profile.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshal keywords: %w", err)
	}
	c.ID = id.ParishID(churchID)
	c.Diocese = id.Diocese(diocese)
	c.Status = models.Status(status)
	c.Profile.HeritageTag = models.HeritageTag(tag)
	return &c, nil
}

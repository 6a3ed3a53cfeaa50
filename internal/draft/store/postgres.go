package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/engine"
	"github.com/mcdev12/gridlock/internal/models"
	"github.com/mcdev12/gridlock/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// Postgres is the production DraftStore. The schedule and pick list live as
// JSONB on a single row per draft, so one conditional UPDATE covers the
// whole unit of consistency. See schema.sql for the table definition.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed draft store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateDraft(ctx context.Context, d *models.DraftSession) error {
	picks, picked, settings, err := marshalDraftFields(d)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (
			id, sport, format, year, teams, rounds,
			picks, picked, current_index, settings, created_at, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		d.ID, d.Sport, string(d.Format), d.Year, d.Teams, d.Rounds,
		picks, picked, d.CurrentIndex, settings, d.CreatedAt, d.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert draft: %w", err)
	}
	return nil
}

func (s *Postgres) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sport, format, year, teams, rounds,
		       picks, picked, current_index, settings, created_at, version
		FROM drafts WHERE id = $1`, id)

	var d models.DraftSession
	var format string
	var picks, picked []byte
	var settings pqtype.NullRawMessage

	err := row.Scan(
		&d.ID, &d.Sport, &format, &d.Year, &d.Teams, &d.Rounds,
		&picks, &picked, &d.CurrentIndex, &settings, &d.CreatedAt, &d.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	d.Format = models.ScoringFormat(format)
	if err := json.Unmarshal(picks, &d.Picks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal picks: %w", err)
	}
	if err := json.Unmarshal(picked, &d.PickedIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal picked ids: %w", err)
	}
	if settings.Valid {
		d.Settings = &models.DraftSettings{}
		if err := json.Unmarshal(settings.RawMessage, d.Settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
	}

	return &d, nil
}

// UpdateDraft writes the mutable fields conditioned on the stored version.
// The existence probe runs in the same transaction as the UPDATE so a zero
// row count can be classified as not-found versus lost-race.
func (s *Postgres) UpdateDraft(ctx context.Context, d *models.DraftSession, expectedVersion int) error {
	picks, picked, _, err := marshalDraftFields(d)
	if err != nil {
		return err
	}

	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE drafts
			SET picks = $1, picked = $2, current_index = $3, version = version + 1
			WHERE id = $4 AND version = $5`,
			picks, picked, d.CurrentIndex, d.ID, expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update draft: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected count: %w", err)
		}
		if rows == 0 {
			var exists bool
			err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM drafts WHERE id = $1)`, d.ID,
			).Scan(&exists)
			if err != nil {
				return fmt.Errorf("failed to probe draft existence: %w", err)
			}
			if !exists {
				return engine.ErrDraftNotFound
			}
			return engine.ErrVersionConflict
		}

		d.Version = expectedVersion + 1
		return nil
	})
}

func marshalDraftFields(d *models.DraftSession) (picks, picked []byte, settings pqtype.NullRawMessage, err error) {
	picks, err = json.Marshal(d.Picks)
	if err != nil {
		return nil, nil, settings, fmt.Errorf("failed to marshal picks: %w", err)
	}
	picked, err = json.Marshal(d.PickedIDs)
	if err != nil {
		return nil, nil, settings, fmt.Errorf("failed to marshal picked ids: %w", err)
	}
	if d.Settings != nil {
		raw, err := json.Marshal(d.Settings)
		if err != nil {
			return nil, nil, settings, fmt.Errorf("failed to marshal settings: %w", err)
		}
		settings = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}
	return picks, picked, settings, nil
}

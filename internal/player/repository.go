package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mcdev12/gridlock/internal/models"
)

// Repository reads the player catalog from Postgres. Rank/adp/tier are
// stored as JSONB maps keyed by scoring format and resolved per query, so
// format polymorphism stays a data value rather than a code path.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListPlayers returns all catalog entries for a sport with rank/adp/tier
// resolved for the given format, ordered rank-ascending with unranked
// players last. The order is stable and downstream scoring depends on it.
func (r *Repository) ListPlayers(ctx context.Context, sport string, format models.ScoringFormat) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, name, position, team,
		       (rank->>$2)::int, (adp->>$2)::float8, (tier->>$2)::int
		FROM players
		WHERE sport = $1 AND position = ANY($3)
		ORDER BY (rank->>$2)::int ASC NULLS LAST, player_id`,
		sport, string(format), pq.Array(models.TrackedPositions),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

// GetPlayer resolves one catalog entry for the given format. Returns
// (nil, nil) when no such player exists for the sport.
func (r *Repository) GetPlayer(ctx context.Context, sport, playerID string, format models.ScoringFormat) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT player_id, name, position, team,
		       (rank->>$3)::int, (adp->>$3)::float8, (tier->>$3)::int
		FROM players
		WHERE sport = $1 AND player_id = $2`,
		sport, playerID, string(format),
	)

	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (models.Player, error) {
	var p models.Player
	var rank, tier sql.NullInt64
	var adp sql.NullFloat64

	if err := row.Scan(&p.ID, &p.Name, &p.Position, &p.Team, &rank, &adp, &tier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan player: %w", err)
	}

	if rank.Valid {
		v := int(rank.Int64)
		p.Rank = &v
	}
	if adp.Valid {
		v := adp.Float64
		p.ADP = &v
	}
	if tier.Valid {
		v := int(tier.Int64)
		p.Tier = &v
	}
	return p, nil
}

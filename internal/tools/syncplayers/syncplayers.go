package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/gridlock/clients"
	"github.com/mcdev12/gridlock/internal/dbconfig"
	"github.com/mcdev12/gridlock/internal/models"
)

const batchSize = 500

const upsertPlayer = `
    INSERT INTO players (sport, player_id, name, position, team, status, rank, updated_at)
    VALUES ($1, $2, $3, $4, $5, 'active', $6, now())
    ON CONFLICT (sport, player_id) DO UPDATE SET
      name = EXCLUDED.name,
      position = EXCLUDED.position,
      team = EXCLUDED.team,
      status = EXCLUDED.status,
      rank = EXCLUDED.rank,
      updated_at = now()
`

func main() {
	ctx := context.Background()
	sport := "nfl"

	// 1) Fetch the player universe from Sleeper
	sleeper := clients.NewSleeperClient()
	players, err := sleeper.FetchNFLPlayers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch players: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert in batches
	total, upserted, errs := len(players), 0, 0
	for start := 0; start < total; start += batchSize {
		end := min(start+batchSize, total)

		batch := &pgx.Batch{}
		for _, p := range players[start:end] {
			batch.Queue(upsertPlayer, sport, p.ID, p.Name, p.Position, p.Team, rankJSON(p))
		}

		results := pool.SendBatch(ctx, batch)
		for range batch.Len() {
			if _, err := results.Exec(); err != nil {
				errs++
			} else {
				upserted++
			}
		}
		if err := results.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close batch: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf(
		"Players sync: sport=%s total=%d upserted=%d errors=%d\n",
		sport, total, upserted, errs,
	)
}

// rankJSON builds the per-format rank map. The Sleeper search rank seeds all
// formats; a format-specific rankings feed can overwrite entries later.
func rankJSON(p models.Player) []byte {
	ranks := map[string]int{}
	if p.Rank != nil {
		for _, format := range []models.ScoringFormat{
			models.FormatStandard, models.FormatPPR, models.FormatHalfPPR,
		} {
			ranks[string(format)] = *p.Rank
		}
	}
	data, _ := json.Marshal(ranks)
	return data
}

package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcdev12/gridlock/internal/models"
)

// CatalogRepository defines what the app layer needs from the catalog store.
type CatalogRepository interface {
	ListPlayers(ctx context.Context, sport string, format models.ScoringFormat) ([]models.Player, error)
	GetPlayer(ctx context.Context, sport, playerID string, format models.ScoringFormat) (*models.Player, error)
}

// App handles catalog read logic. It satisfies the draft engine's Catalog
// interface.
type App struct {
	repo CatalogRepository
}

// NewApp creates a new catalog App.
func NewApp(repo CatalogRepository) *App {
	return &App{repo: repo}
}

// ListPlayers returns the catalog for a sport/format, defaulting to
// nfl/standard when unset.
func (a *App) ListPlayers(ctx context.Context, sport string, format models.ScoringFormat) ([]models.Player, error) {
	sport, format = normalize(sport, format)

	players, err := a.repo.ListPlayers(ctx, sport, format)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetPlayer resolves one catalog entry; (nil, nil) when absent.
func (a *App) GetPlayer(ctx context.Context, sport, playerID string, format models.ScoringFormat) (*models.Player, error) {
	sport, format = normalize(sport, format)

	p, err := a.repo.GetPlayer(ctx, sport, playerID, format)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func normalize(sport string, format models.ScoringFormat) (string, models.ScoringFormat) {
	sport = strings.ToLower(sport)
	if sport == "" {
		sport = "nfl"
	}
	if format == "" {
		format = models.FormatStandard
	}
	return sport, format
}

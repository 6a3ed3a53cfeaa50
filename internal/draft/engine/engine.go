package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridlock/internal/models"
	"github.com/rs/zerolog/log"
)

// DraftStore is the session persistence the engine mutates. Implementations
// must arbitrate concurrent writers with a conditional write, not an
// in-process lock: the engine may run across multiple stateless instances.
type DraftStore interface {
	CreateDraft(ctx context.Context, d *models.DraftSession) error
	// GetDraft returns ErrDraftNotFound for unknown ids. The returned
	// session is a consistent snapshot owned by the caller.
	GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftSession, error)
	// UpdateDraft writes d conditioned on the stored version matching
	// expectedVersion, bumping d.Version on success. Returns
	// ErrVersionConflict when another writer got there first.
	UpdateDraft(ctx context.Context, d *models.DraftSession, expectedVersion int) error
}

// Catalog is the read-only player lookup the engine consumes. ListPlayers
// must return a stable, rank-ascending order with unranked players last.
// GetPlayer returns (nil, nil) when the player does not exist.
type Catalog interface {
	ListPlayers(ctx context.Context, sport string, format models.ScoringFormat) ([]models.Player, error)
	GetPlayer(ctx context.Context, sport, playerID string, format models.ScoringFormat) (*models.Player, error)
}

// Engine owns the draft session lifecycle: it validates and applies state
// transitions and serializes them through the store's version check.
type Engine struct {
	store   DraftStore
	catalog Catalog
	weights Weights
	clock   clockwork.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the autopick scorer tuning.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithClock injects the clock used for timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// New creates a draft engine backed by the given store and catalog.
func New(store DraftStore, catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		catalog: catalog,
		weights: DefaultWeights(),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Draft parameter bounds, matching the external validation policy.
const (
	MinTeams  = 2
	MaxTeams  = 32
	MinRounds = 1
	MaxRounds = 30
)

// CreateDraftRequest carries the parameters for a new draft. Zero values
// fall back to defaults (nfl / standard / 12 teams / 15 rounds / current year).
type CreateDraftRequest struct {
	Sport    string                `json:"sport"`
	Format   models.ScoringFormat  `json:"format"`
	Year     int                   `json:"year"`
	Teams    int                   `json:"teams"`
	Rounds   int                   `json:"rounds"`
	Settings *models.DraftSettings `json:"settings,omitempty"`
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// CreateDraft builds the schedule once and persists the session with
// cursor 0 and version 1. Out-of-range team/round counts are clamped to the
// accepted bounds before construction.
func (e *Engine) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.DraftSession, error) {
	sport := strings.ToLower(req.Sport)
	if sport == "" {
		sport = "nfl"
	}
	format := models.ScoringFormat(strings.ToLower(string(req.Format)))
	if format == "" {
		format = models.FormatStandard
	}
	year := req.Year
	if year == 0 {
		year = e.clock.Now().Year()
	}
	teams := req.Teams
	if teams == 0 {
		teams = 12
	}
	rounds := req.Rounds
	if rounds == 0 {
		rounds = 15
	}
	teams = clamp(teams, MinTeams, MaxTeams)
	rounds = clamp(rounds, MinRounds, MaxRounds)

	picks, err := BuildSnakeOrder(teams, rounds)
	if err != nil {
		return nil, err
	}

	d := &models.DraftSession{
		ID:           uuid.New(),
		Sport:        sport,
		Format:       format,
		Year:         year,
		Teams:        teams,
		Rounds:       rounds,
		Picks:        picks,
		PickedIDs:    []string{},
		CurrentIndex: 0,
		Settings:     req.Settings,
		CreatedAt:    e.clock.Now(),
		Version:      1,
	}

	if err := e.store.CreateDraft(ctx, d); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}

	log.Info().
		Str("draft_id", d.ID.String()).
		Str("sport", sport).
		Str("format", string(format)).
		Int("teams", teams).
		Int("rounds", rounds).
		Msg("draft created")

	return d, nil
}

// errNoop signals that a transition changed nothing and the conditional
// write can be skipped.
var errNoop = errors.New("no changes")

// mutate is the concurrency controller: one read-modify-conditional-write
// cycle, retried once from a fresh read on a version conflict. A conflict
// that persists surfaces as ErrVersionConflict. Returns the written session.
func (e *Engine) mutate(ctx context.Context, id uuid.UUID, fn func(d *models.DraftSession) error) (*models.DraftSession, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		d, err := e.store.GetDraft(ctx, id)
		if err != nil {
			return nil, err
		}

		expected := d.Version
		if err := fn(d); err != nil {
			if errors.Is(err, errNoop) {
				return d, nil
			}
			return nil, err
		}

		lastErr = e.store.UpdateDraft(ctx, d, expected)
		if lastErr == nil {
			return d, nil
		}
		if !errors.Is(lastErr, ErrVersionConflict) {
			return nil, lastErr
		}

		log.Debug().
			Str("draft_id", id.String()).
			Int("expected_version", expected).
			Msg("version conflict, retrying from fresh read")
	}
	return nil, lastErr
}

// applyPick assigns the current slot and advances the cursor. Slots are
// single-assignment: the caller must have verified the slot is open.
func (e *Engine) applyPick(d *models.DraftSession, p models.Player) {
	slot := &d.Picks[d.CurrentIndex]
	playerID := p.ID
	slot.PlayerID = &playerID
	slot.Player = models.SnapshotOf(p)

	d.PickedIDs = append([]string{p.ID}, d.PickedIDs...)
	d.CurrentIndex++
}

// SubmitPick claims playerID for the team on the clock and returns the
// updated session.
func (e *Engine) SubmitPick(ctx context.Context, id uuid.UUID, playerID string) (*models.DraftSession, error) {
	return e.mutate(ctx, id, func(d *models.DraftSession) error {
		if d.Completed() {
			return ErrDraftCompleted
		}
		for _, taken := range d.PickedIDs {
			if taken == playerID {
				return ErrPlayerTaken
			}
		}

		p, err := e.catalog.GetPlayer(ctx, d.Sport, playerID, d.Format)
		if err != nil {
			return fmt.Errorf("look up player %s: %w", playerID, err)
		}
		if p == nil {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
		}

		e.applyPick(d, *p)

		log.Info().
			Str("draft_id", d.ID.String()).
			Str("player_id", playerID).
			Int("overall", d.CurrentIndex).
			Msg("pick submitted")
		return nil
	})
}

// AutoPick selects the best available player for the team on the clock and
// applies it exactly like a manual pick. Returns the chosen player and the
// updated session.
func (e *Engine) AutoPick(ctx context.Context, id uuid.UUID) (*models.Player, *models.DraftSession, error) {
	var chosen *models.Player
	d, err := e.mutate(ctx, id, func(d *models.DraftSession) error {
		if d.Completed() {
			return ErrDraftCompleted
		}

		players, byID, err := e.loadCatalog(ctx, d)
		if err != nil {
			return err
		}

		slot := d.CurrentSlot()
		counts := CountRoster(d, slot.Team, byID)
		best := e.weights.SelectBest(players, takenSet(d.PickedIDs), counts, slot.Round)
		if best == nil {
			return ErrNoEligiblePlayers
		}

		e.applyPick(d, *best)
		chosen = best

		log.Info().
			Str("draft_id", d.ID.String()).
			Str("player_id", best.ID).
			Str("position", best.Position).
			Int("team", slot.Team).
			Int("round", slot.Round).
			Msg("auto-pick applied")
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return chosen, d, nil
}

// SimulateToEnd autopicks every remaining slot. The loop is bounded by the
// schedule length and stops early if the catalog runs out; a partial finish
// is not an error, callers detect it via the completed flag. The whole run
// is persisted once at the end as a single conditional write.
func (e *Engine) SimulateToEnd(ctx context.Context, id uuid.UUID) (bool, *models.DraftSession, error) {
	var completed bool
	d, err := e.mutate(ctx, id, func(d *models.DraftSession) error {
		if d.Completed() {
			completed = true
			return errNoop
		}

		players, byID, err := e.loadCatalog(ctx, d)
		if err != nil {
			return err
		}

		taken := takenSet(d.PickedIDs)
		applied := 0
		for !d.Completed() {
			slot := d.CurrentSlot()
			counts := CountRoster(d, slot.Team, byID)
			best := e.weights.SelectBest(players, taken, counts, slot.Round)
			if best == nil {
				break
			}
			e.applyPick(d, *best)
			taken[best.ID] = struct{}{}
			applied++
		}

		completed = d.Completed()
		log.Info().
			Str("draft_id", d.ID.String()).
			Int("picks_applied", applied).
			Bool("completed", completed).
			Msg("simulation finished")

		if applied == 0 {
			return errNoop
		}
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return completed, d, nil
}

// DescribeDraft is the read-only projection of a session. Repeated calls on
// an unchanged draft return an identical view.
func (e *Engine) DescribeDraft(ctx context.Context, id uuid.UUID) (*DraftView, error) {
	d, err := e.store.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewDraftView(d), nil
}

func (e *Engine) loadCatalog(ctx context.Context, d *models.DraftSession) ([]models.Player, map[string]models.Player, error) {
	players, err := e.catalog.ListPlayers(ctx, d.Sport, d.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	byID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return players, byID, nil
}

func takenSet(ids []string) map[string]struct{} {
	taken := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		taken[id] = struct{}{}
	}
	return taken
}

package engine

import "errors"

// Engine error taxonomy. All of these are terminal for the current request;
// the engine never downgrades them to a silent no-op.
var (
	// ErrInvalidConfig is returned for draft parameters outside accepted bounds.
	ErrInvalidConfig = errors.New("invalid draft configuration")

	// ErrDraftNotFound is returned when no draft exists for the given id.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrPlayerTaken is returned when a pick names an already-claimed player.
	ErrPlayerTaken = errors.New("player already picked")

	// ErrDraftCompleted is returned when a mutation targets a finished draft.
	ErrDraftCompleted = errors.New("draft already completed")

	// ErrUnknownPlayer is returned when a manual pick references a player
	// absent from the catalog for the draft's sport.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrNoEligiblePlayers is returned when autopick finds no candidate left.
	ErrNoEligiblePlayers = errors.New("no players left")

	// ErrVersionConflict is returned when a conditional write lost the race
	// and the single retry lost it again.
	ErrVersionConflict = errors.New("draft modified concurrently")
)

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/engine"
	"github.com/mcdev12/gridlock/internal/draft/events"
	"github.com/mcdev12/gridlock/internal/draft/publish"
	"github.com/mcdev12/gridlock/internal/models"
	"github.com/rs/zerolog/log"
)

// DraftEngine defines what the gateway needs from the draft engine.
type DraftEngine interface {
	CreateDraft(ctx context.Context, req engine.CreateDraftRequest) (*models.DraftSession, error)
	DescribeDraft(ctx context.Context, id uuid.UUID) (*engine.DraftView, error)
	SubmitPick(ctx context.Context, id uuid.UUID, playerID string) (*models.DraftSession, error)
	AutoPick(ctx context.Context, id uuid.UUID) (*models.Player, *models.DraftSession, error)
	SimulateToEnd(ctx context.Context, id uuid.UUID) (bool, *models.DraftSession, error)
}

// PlayerCatalog defines what the gateway needs from the player catalog.
type PlayerCatalog interface {
	ListPlayers(ctx context.Context, sport string, format models.ScoringFormat) ([]models.Player, error)
}

// Service exposes the draft engine over JSON/HTTP.
type Service struct {
	engine    DraftEngine
	players   PlayerCatalog
	publisher publish.Publisher
}

// NewService creates the gateway service.
func NewService(eng DraftEngine, players PlayerCatalog, publisher publish.Publisher) *Service {
	return &Service{
		engine:    eng,
		players:   players,
		publisher: publisher,
	}
}

// RegisterRoutes registers the draft API routes.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/drafts", s.HandleCreateDraft)
	mux.HandleFunc("GET /api/drafts/{id}", s.HandleGetDraft)
	mux.HandleFunc("POST /api/drafts/{id}/pick", s.HandleSubmitPick)
	mux.HandleFunc("POST /api/drafts/{id}/auto-pick", s.HandleAutoPick)
	mux.HandleFunc("POST /api/drafts/{id}/sim-to-end", s.HandleSimulateToEnd)
	mux.HandleFunc("GET /api/players", s.HandleListPlayers)
}

// HandleCreateDraft handles POST /api/drafts
func (s *Service) HandleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req engine.CreateDraftRequest
	// An empty body means all defaults.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := s.engine.CreateDraft(r.Context(), req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.emit(r.Context(), events.TypeDraftCreated, d.ID, events.DraftCreatedPayload{
		DraftID:    d.ID.String(),
		Sport:      d.Sport,
		Format:     string(d.Format),
		Teams:      d.Teams,
		Rounds:     d.Rounds,
		TotalPicks: len(d.Picks),
		CreatedAt:  d.CreatedAt,
	})

	writeJSON(w, http.StatusOK, map[string]string{"draft_id": d.ID.String()})
}

// HandleGetDraft handles GET /api/drafts/{id}
func (s *Service) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := draftID(w, r)
	if !ok {
		return
	}

	view, err := s.engine.DescribeDraft(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// HandleSubmitPick handles POST /api/drafts/{id}/pick
func (s *Service) HandleSubmitPick(w http.ResponseWriter, r *http.Request) {
	id, ok := draftID(w, r)
	if !ok {
		return
	}

	var body struct {
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	d, err := s.engine.SubmitPick(r.Context(), id, body.PlayerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.emitPick(r.Context(), d, false)

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleAutoPick handles POST /api/drafts/{id}/auto-pick
func (s *Service) HandleAutoPick(w http.ResponseWriter, r *http.Request) {
	id, ok := draftID(w, r)
	if !ok {
		return
	}

	chosen, d, err := s.engine.AutoPick(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.emitPick(r.Context(), d, true)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "picked": chosen})
}

// HandleSimulateToEnd handles POST /api/drafts/{id}/sim-to-end
func (s *Service) HandleSimulateToEnd(w http.ResponseWriter, r *http.Request) {
	id, ok := draftID(w, r)
	if !ok {
		return
	}

	completed, d, err := s.engine.SimulateToEnd(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if completed {
		s.emit(r.Context(), events.TypeDraftCompleted, d.ID, events.DraftCompletedPayload{
			DraftID:     d.ID.String(),
			TotalPicks:  len(d.Picks),
			CompletedAt: timeNow(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true, "completed": completed})
}

// HandleListPlayers handles GET /api/players?sport=&format=
func (s *Service) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	format := models.ScoringFormat(r.URL.Query().Get("format"))

	players, err := s.players.ListPlayers(r.Context(), sport, format)
	if err != nil {
		log.Error().Err(err).Msg("failed to list players")
		writeError(w, http.StatusInternalServerError, "failed to list players")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(players),
		"players": players,
	})
}

// emitPick publishes a PickMade event for the most recent pick on d, plus a
// DraftCompleted event when that pick finished the draft.
func (s *Service) emitPick(ctx context.Context, d *models.DraftSession, auto bool) {
	slot := d.Picks[d.CurrentIndex-1]
	payload := events.PickMadePayload{
		DraftID: d.ID.String(),
		Team:    slot.Team,
		Round:   slot.Round,
		Overall: slot.Overall,
		Auto:    auto,
		MadeAt:  timeNow(),
	}
	if slot.PlayerID != nil {
		payload.PlayerID = *slot.PlayerID
	}
	if slot.Player != nil {
		payload.PlayerName = slot.Player.Name
		payload.Position = slot.Player.Position
	}

	s.emit(ctx, events.TypePickMade, d.ID, payload)

	if d.Completed() {
		s.emit(ctx, events.TypeDraftCompleted, d.ID, events.DraftCompletedPayload{
			DraftID:     d.ID.String(),
			TotalPicks:  len(d.Picks),
			CompletedAt: timeNow(),
		})
	}
}

// emit publishes an event, logging failures without failing the request.
func (s *Service) emit(ctx context.Context, eventType string, draftID uuid.UUID, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, draftID, payload); err != nil {
		log.Error().
			Err(err).
			Str("event_type", eventType).
			Str("draft_id", draftID.String()).
			Msg("failed to publish event")
	}
}

func timeNow() time.Time {
	return time.Now().UTC()
}

func draftID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid draft id")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps engine errors onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, engine.ErrUnknownPlayer):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrPlayerTaken),
		errors.Is(err, engine.ErrDraftCompleted),
		errors.Is(err, engine.ErrNoEligiblePlayers),
		errors.Is(err, engine.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("draft operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

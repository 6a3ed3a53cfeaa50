package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/engine"
	"github.com/mcdev12/gridlock/internal/draft/gateway"
	"github.com/mcdev12/gridlock/internal/draft/store"
	"github.com/mcdev12/gridlock/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	players []models.Player
}

func (c *fakeCatalog) ListPlayers(ctx context.Context, sport string, format models.ScoringFormat) ([]models.Player, error) {
	return c.players, nil
}

func (c *fakeCatalog) GetPlayer(ctx context.Context, sport, playerID string, format models.ScoringFormat) (*models.Player, error) {
	for i := range c.players {
		if c.players[i].ID == playerID {
			p := c.players[i]
			return &p, nil
		}
	}
	return nil, nil
}

// capturePublisher records published event types in order.
type capturePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturePublisher) Publish(ctx context.Context, eventType string, draftID uuid.UUID, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *capturePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func newTestServer(t *testing.T, playerCount int) (*httptest.Server, *capturePublisher) {
	t.Helper()

	players := make([]models.Player, playerCount)
	for i := range players {
		rank := i + 1
		players[i] = models.Player{
			ID:       fmt.Sprintf("p%03d", rank),
			Name:     fmt.Sprintf("Player %03d", rank),
			Position: models.TrackedPositions[i%len(models.TrackedPositions)],
			Team:     "FA",
			Rank:     &rank,
		}
	}
	catalog := &fakeCatalog{players: players}

	eng := engine.New(store.NewMemory(), catalog)
	publisher := &capturePublisher{}
	svc := gateway.NewService(eng, catalog, publisher)

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, publisher
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createTestDraft(t *testing.T, server *httptest.Server, teams, rounds int) string {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/drafts", map[string]int{"teams": teams, "rounds": rounds})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		DraftID string `json:"draft_id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.DraftID)
	return created.DraftID
}

func TestCreateAndDescribeDraft(t *testing.T) {
	server, _ := newTestServer(t, 10)
	draftID := createTestDraft(t, server, 4, 2)

	resp, err := http.Get(server.URL + "/api/drafts/" + draftID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view engine.DraftView
	decodeBody(t, resp, &view)
	assert.Equal(t, draftID, view.DraftID)
	assert.Equal(t, 4, view.Teams)
	assert.Equal(t, 2, view.Rounds)
	assert.Len(t, view.Picks, 8)
	assert.False(t, view.Completed)
}

func TestGetDraftErrors(t *testing.T) {
	server, _ := newTestServer(t, 10)

	resp, err := http.Get(server.URL + "/api/drafts/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/drafts/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitPickFlow(t *testing.T) {
	server, publisher := newTestServer(t, 10)
	draftID := createTestDraft(t, server, 2, 2)
	pickURL := server.URL + "/api/drafts/" + draftID + "/pick"

	resp := postJSON(t, pickURL, map[string]string{"player_id": "p001"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Taking the same player again conflicts.
	resp = postJSON(t, pickURL, map[string]string{"player_id": "p001"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A player missing from the catalog is a bad request.
	resp = postJSON(t, pickURL, map[string]string{"player_id": "ghost"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing player_id is rejected before touching the engine.
	resp = postJSON(t, pickURL, map[string]string{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, []string{"DraftCreated", "PickMade"}, publisher.types())
}

func TestAutoPickAndSimulateToEnd(t *testing.T) {
	server, publisher := newTestServer(t, 20)
	draftID := createTestDraft(t, server, 2, 2)
	base := server.URL + "/api/drafts/" + draftID

	resp := postJSON(t, base+"/auto-pick", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var auto struct {
		OK     bool           `json:"ok"`
		Picked *models.Player `json:"picked"`
	}
	decodeBody(t, resp, &auto)
	assert.True(t, auto.OK)
	require.NotNil(t, auto.Picked)

	resp = postJSON(t, base+"/sim-to-end", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sim struct {
		OK        bool `json:"ok"`
		Completed bool `json:"completed"`
	}
	decodeBody(t, resp, &sim)
	assert.True(t, sim.Completed)

	// Completed drafts reject further mutations.
	resp = postJSON(t, base+"/pick", map[string]string{"player_id": "p010"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	assert.Equal(t,
		[]string{"DraftCreated", "PickMade", "DraftCompleted"},
		publisher.types())
}

func TestListPlayers(t *testing.T) {
	server, _ := newTestServer(t, 5)

	resp, err := http.Get(server.URL + "/api/players?sport=nfl&format=standard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count   int             `json:"count"`
		Players []models.Player `json:"players"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 5, body.Count)
	assert.Len(t, body.Players, 5)
}

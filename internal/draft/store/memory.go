package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/engine"
	"github.com/mcdev12/gridlock/internal/models"
)

// Memory is an in-process DraftStore for tests and dev mode. Sessions are
// held as serialized snapshots so readers never observe partial writes.
type Memory struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{drafts: make(map[uuid.UUID][]byte)}
}

func (m *Memory) CreateDraft(ctx context.Context, d *models.DraftSession) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.drafts[d.ID]; exists {
		return fmt.Errorf("draft %s already exists", d.ID)
	}
	m.drafts[d.ID] = data
	return nil
}

func (m *Memory) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftSession, error) {
	m.mu.RLock()
	data, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, engine.ErrDraftNotFound
	}

	var d models.DraftSession
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &d, nil
}

func (m *Memory) UpdateDraft(ctx context.Context, d *models.DraftSession, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.drafts[d.ID]
	if !ok {
		return engine.ErrDraftNotFound
	}

	var stored models.DraftSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("unmarshal stored draft: %w", err)
	}
	if stored.Version != expectedVersion {
		return engine.ErrVersionConflict
	}

	d.Version = expectedVersion + 1
	next, err := json.Marshal(d)
	if err != nil {
		d.Version = expectedVersion
		return fmt.Errorf("marshal draft: %w", err)
	}
	m.drafts[d.ID] = next
	return nil
}

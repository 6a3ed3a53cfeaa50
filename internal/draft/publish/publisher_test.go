package publish

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelopeWireFormat(t *testing.T) {
	draftID := uuid.New()

	data, eventID, err := newEnvelope("PickMade", draftID, map[string]int{"overall": 7})
	require.NoError(t, err)
	require.NotEmpty(t, eventID)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, eventID, envelope.EventID)
	assert.Equal(t, "PickMade", envelope.EventType)
	assert.Equal(t, draftID.String(), envelope.DraftID)
	assert.WithinDuration(t, time.Now().UTC(), envelope.Timestamp, time.Minute)
	assert.JSONEq(t, `{"overall": 7}`, string(envelope.Payload))
}

func TestNewEnvelopeRejectsUnmarshalablePayload(t *testing.T) {
	_, _, err := newEnvelope("PickMade", uuid.New(), make(chan int))
	assert.Error(t, err)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher()
	assert.NoError(t, p.Publish(context.Background(), "DraftCreated", uuid.New(), nil))
}

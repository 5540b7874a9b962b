package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event

	bus.Subscribe("plant.harvested", func(ctx context.Context, event Event) error {
		got = event
		return nil
	})

	err := bus.Publish(context.Background(), New("plant.harvested", Payload{"user_id": "u1", "coins": 10}))
	require.NoError(t, err)

	assert.Equal(t, Type("plant.harvested"), got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	payload, ok := got.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", payload["user_id"])
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe("session.completed", handler)
	bus.Subscribe("session.completed", handler)

	require.NoError(t, bus.Publish(context.Background(), New("session.completed", nil)))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), New("nobody.listens", nil)))
}

func TestMemoryBus_HandlerErrorsAreAggregated(t *testing.T) {
	bus := NewMemoryBus()
	called := 0
	bus.Subscribe("pack.opened", func(ctx context.Context, event Event) error {
		called++
		return errors.New("boom")
	})
	bus.Subscribe("pack.opened", func(ctx context.Context, event Event) error {
		called++
		return nil
	})

	err := bus.Publish(context.Background(), New("pack.opened", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 1 errors")
	assert.Equal(t, 2, called, "all handlers run even when one fails")
}

func TestGetMetadataValue(t *testing.T) {
	evt := Event{Metadata: map[string]interface{}{"source": "api"}}
	assert.Equal(t, "api", evt.GetMetadataValue("source"))
	assert.Nil(t, Event{}.GetMetadataValue("source"))
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, DefaultRetryDelay, CalculateRetryDelay(DefaultRetryDelay, 1))
	assert.Equal(t, 4*DefaultRetryDelay, CalculateRetryDelay(DefaultRetryDelay, 3))
	assert.Equal(t, DefaultRetryDelay, CalculateRetryDelay(DefaultRetryDelay, 0))
}

func TestEmit_SwallowsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	called := false
	bus.Subscribe("plant.harvested", func(_ context.Context, _ Event) error {
		called = true
		return errors.New("subscriber down")
	})

	assert.NotPanics(t, func() {
		Emit(context.Background(), bus, New("plant.harvested", Payload{"plant_id": "p1"}))
	})
	assert.True(t, called)

	// A nil bus is allowed
	Emit(context.Background(), nil, New("plant.harvested", nil))
}

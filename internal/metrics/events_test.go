package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
)

func TestEventMetricsCollector_RecordsBusinessMetrics(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	purchasedBefore := testutil.ToFloat64(ItemsPurchased.WithLabelValues("metrics-test-item"))
	spentBefore := testutil.ToFloat64(CoinsSpent)
	earnedBefore := testutil.ToFloat64(CoinsEarned.WithLabelValues(SourceSession))
	unlockedBefore := testutil.ToFloat64(SeedsUnlocked.WithLabelValues("metrics-test-seed"))
	reconBefore := testutil.ToFloat64(ReconciliationsRequired.WithLabelValues("metrics-test-op"))

	require.NoError(t, bus.Publish(ctx, event.New(domain.EventTypeItemPurchased, event.Payload{
		"item_slug": "metrics-test-item",
		"quantity":  3,
		"amount":    int64(45),
	})))
	require.NoError(t, bus.Publish(ctx, event.New(domain.EventTypeSessionCredited, event.Payload{
		"amount": int64(2),
	})))
	require.NoError(t, bus.Publish(ctx, event.New(domain.EventTypePackOpened, event.Payload{
		"item_slug":      "metrics-test-pack",
		"seed_slug":      "metrics-test-seed",
		"newly_unlocked": true,
	})))
	require.NoError(t, bus.Publish(ctx, event.New(domain.EventTypeReconciliationRequired, event.Payload{
		"operation": "metrics-test-op",
	})))

	assert.Equal(t, purchasedBefore+3, testutil.ToFloat64(ItemsPurchased.WithLabelValues("metrics-test-item")))
	assert.Equal(t, spentBefore+45, testutil.ToFloat64(CoinsSpent))
	assert.Equal(t, earnedBefore+2, testutil.ToFloat64(CoinsEarned.WithLabelValues(SourceSession)))
	assert.Equal(t, unlockedBefore+1, testutil.ToFloat64(SeedsUnlocked.WithLabelValues("metrics-test-seed")))
	assert.Equal(t, reconBefore+1, testutil.ToFloat64(ReconciliationsRequired.WithLabelValues("metrics-test-op")))
}

func TestEventMetricsCollector_IgnoresNonMapPayload(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues("metrics.test"))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{Type: "metrics.test", Payload: 42})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues("metrics.test")))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/metrics-test/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics-test/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 3.0, number(3))
	assert.Equal(t, 4.0, number(int64(4)))
	assert.Equal(t, 1.5, number(1.5))
	assert.Zero(t, number(-2))
	assert.Zero(t, number("7"))
}

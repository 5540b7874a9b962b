package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedClock(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewSimulatedClock(start)

	assert.Equal(t, start, c.Now())

	c.Advance(95 * time.Second)
	assert.Equal(t, start.Add(95*time.Second), c.Now())
	assert.Equal(t, 95*time.Second, c.Since(start))

	c.AdvanceDays(1.5)
	assert.Equal(t, start.Add(95*time.Second+36*time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestRealClock_ReturnsUTC(t *testing.T) {
	c := NewRealClock()
	assert.Equal(t, time.UTC, c.Now().Location())
}

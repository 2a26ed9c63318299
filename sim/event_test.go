package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Split_SharesTimeAndPayload(t *testing.T) {
	// GIVEN an emitted event with a payload
	m := NewEventManager()
	clock := fixedClock(2005, 6, 1)
	m.Setup(clock)

	ev := NewEvent([]int64{1, 2, 3, 4}, map[string]any{"cause": "ihd"})
	m.Emitter("collect")(ev)

	// WHEN it is split onto a sub-population
	derived := ev.Split([]int64{2, 4})

	// THEN time and payload carry over but the index is the new one
	assert.Equal(t, ev.Time, derived.Time)
	assert.Equal(t, []int64{2, 4}, derived.Index)
	assert.Equal(t, "ihd", derived.UserData["cause"])
	assert.Equal(t, []int64{1, 2, 3, 4}, ev.Index)
}

func TestNewEvent_TimeZeroUntilEmission(t *testing.T) {
	ev := NewEvent([]int64{7}, nil)
	assert.True(t, ev.Time.IsZero())
}

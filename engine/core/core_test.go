package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierReuseAfterRelease(t *testing.T) {
	a, b := new(int), new(int)
	idA := IdentifierAquireNewID(a)
	idB := IdentifierAquireNewID(b)
	assert.NotEqual(t, idA, idB)
	assert.Same(t, a, IdentifierOwner(idA))

	require.NoError(t, IdentifierReleaseID(idA))
	assert.Nil(t, IdentifierOwner(idA))
	assert.ErrorIs(t, IdentifierReleaseID(idA), ErrIdentifierReleased)

	c := new(int)
	assert.Equal(t, idA, IdentifierAquireNewID(c))

	require.NoError(t, IdentifierReleaseID(idA))
	require.NoError(t, IdentifierReleaseID(idB))
}

func TestEventFireStopsWhenHandled(t *testing.T) {
	const code SystemEventCode = 0x200
	calls := 0
	first := func(c SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls++
		assert.Equal(t, code, data.Type)
		assert.Equal(t, "payload", data.Data)
		return true
	}
	second := func(c SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls++
		return false
	}
	require.True(t, EventRegister(code, "a", first))
	require.True(t, EventRegister(code, "b", second))
	assert.False(t, EventRegister(code, "a", first))

	assert.True(t, EventFire(code, nil, EventContext{Data: "payload"}))
	assert.Equal(t, 1, calls)

	assert.True(t, EventUnregister(code, "a", first))
	assert.False(t, EventFire(code, nil, EventContext{Data: "payload"}))
	assert.Equal(t, 2, calls)
	assert.True(t, EventUnregister(code, "b", second))
}

func TestFrameMetricsAverages(t *testing.T) {
	m := NewFrameMetrics(2)
	_, ok := m.Last()
	assert.False(t, ok)

	m.Update(FrameSample{FrameMS: 10, StaticBatches: 2, DynamicBatches: 0})
	m.Update(FrameSample{FrameMS: 20, StaticBatches: 0, DynamicBatches: 4})
	m.Update(FrameSample{FrameMS: 30, StaticBatches: 0, DynamicBatches: 6})

	assert.InDelta(t, 25.0, m.AverageFrameMS(), 1e-9)
	static, dynamic := m.AverageBatches()
	assert.InDelta(t, 0.0, static, 1e-9)
	assert.InDelta(t, 5.0, dynamic, 1e-9)

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, 6, last.DynamicBatches)
}

func TestFrameMetricsResize(t *testing.T) {
	m := NewFrameMetrics(4)
	assert.Equal(t, 4, m.Window())
	for i := 1; i <= 4; i++ {
		m.Update(FrameSample{FrameMS: float64(i * 10)})
	}
	assert.InDelta(t, 25.0, m.AverageFrameMS(), 1e-9)

	m.Resize(2)
	assert.Equal(t, 2, m.Window())
	assert.InDelta(t, 35.0, m.AverageFrameMS(), 1e-9)

	m.Resize(0)
	assert.Equal(t, int(AVG_COUNT), m.Window())
	last, ok := m.Last()
	require.True(t, ok)
	assert.InDelta(t, 40.0, last.FrameMS, 1e-9)
}

func TestFrameMetricsFPS(t *testing.T) {
	m := NewFrameMetrics(0)
	assert.Zero(t, m.FPS())
	// ten 100ms frames fill one second, the eleventh closes it
	for i := 0; i < 11; i++ {
		m.Update(FrameSample{FrameMS: 100})
	}
	assert.InDelta(t, 10.0, m.FPS(), 1e-9)
}

func TestSetLogLevel(t *testing.T) {
	assert.NoError(t, SetLogLevel("info"))
	assert.Error(t, SetLogLevel("chatty"))
	assert.NoError(t, SetLogLevel("debug"))
}

package testbed

import (
	"testing"

	"github.com/spaghettifunk/meshproxy/engine"
	"github.com/spaghettifunk/meshproxy/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestbedRendersScene(t *testing.T) {
	backend := renderer.NewRecordingBackend()
	tb := NewTestGame(&engine.ApplicationConfig{FrameLimit: 4, Backend: backend})

	var packets []*renderer.RenderPacket
	render := tb.FnRender
	tb.FnRender = func(packet *renderer.RenderPacket, deltaTime float64) error {
		packets = append(packets, packet)
		return render(packet, deltaTime)
	}

	e, err := engine.New(tb.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())
	require.NoError(t, e.Shutdown())

	require.Len(t, packets, 4)
	last := packets[len(packets)-1]
	require.Len(t, last.Views, 2)

	// world view: ground static, cube and water dynamic
	assert.Len(t, last.Views[0].StaticBatches, 1)
	assert.Len(t, last.Views[0].DynamicBatches, 2)
	// editor view draws everything dynamically
	assert.Empty(t, last.Views[1].StaticBatches)
	assert.Len(t, last.Views[1].DynamicBatches, 3)

	assert.Equal(t, uint64(4), backend.FrameCount())
}

func TestNewTestGameDefaults(t *testing.T) {
	tb := NewTestGame(nil)
	assert.Equal(t, "MeshProxy Testbed", tb.ApplicationConfig.Name)
	assert.Len(t, tb.ApplicationConfig.Views, 2)
	assert.NotNil(t, tb.FnUpdate)
}

//go:build !shipping

package systems

import (
	"testing"

	"github.com/spaghettifunk/meshproxy/engine/config"
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionOverlayFrame(t *testing.T) {
	settings := config.Default()
	settings.Show.Collision = true
	rs, _ := newTestScene(t, settings)

	c := newTestComponent(t, UPDATE_FREQUENCY_INFREQUENT)
	c.SetBodySetup(NewBoxBodySetup(math.Extents3D{Min: math.NewVec3(0, 0, 0), Max: math.NewVec3(1, 1, 1)}))
	_, err := rs.AddPrimitive(c)
	require.NoError(t, err)

	packet := renderOne(t, rs)
	assert.Len(t, packet.Views[0].StaticBatches, 1, "overlays do not change the draw path")
	require.Len(t, packet.Lines, 12)
	for _, l := range packet.Lines {
		assert.Equal(t, metadata.SDPG_WORLD, l.DepthPriority)
	}

	last, ok := rs.Metrics.Last()
	require.True(t, ok)
	assert.Equal(t, 12, last.DebugLines)
}

func TestComplexAsSimpleBodyDrawsNothing(t *testing.T) {
	settings := config.Default()
	settings.Show.Collision = true
	rs, _ := newTestScene(t, settings)

	c := newTestComponent(t, UPDATE_FREQUENCY_INFREQUENT)
	body := NewBoxBodySetup(math.Extents3D{Max: math.NewVec3(1, 1, 1)})
	body.CollisionTraceFlag = metadata.COLLISION_TRACE_COMPLEX_AS_SIMPLE
	c.SetBodySetup(body)
	_, err := rs.AddPrimitive(c)
	require.NoError(t, err)

	assert.Empty(t, renderOne(t, rs).Lines)
}

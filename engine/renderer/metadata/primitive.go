package metadata

import "github.com/spaghettifunk/meshproxy/engine/math"

/** @brief Whether a component may move after it is registered. */
type ComponentMobility uint8

const (
	MOBILITY_STATIC ComponentMobility = iota
	MOBILITY_STATIONARY
	MOBILITY_MOVABLE
)

/** @brief Bitmask of the lighting channels a primitive receives light from. */
type LightingChannels uint8

const (
	LIGHTING_CHANNEL_0 LightingChannels = 1 << iota
	LIGHTING_CHANNEL_1
	LIGHTING_CHANNEL_2
)

/** @brief Channel mask every primitive starts with. */
const DefaultLightingChannels = LIGHTING_CHANNEL_0

/**
 * @brief The scene node flags a proxy copies when it is created. Plain
 * value: the proxy never reads the component again after construction.
 */
type PrimitiveState struct {
	Name         string
	LocalToWorld math.Mat4
	LocalBounds  math.Extents3D
	Mobility     ComponentMobility

	Visible           bool
	CastShadow        bool
	CastHiddenShadow  bool
	RenderInMainPass  bool
	RenderCustomDepth bool
	LightingChannels  LightingChannels
	CollisionEnabled  bool

	Selected bool
	Hovered  bool
}

// DefaultPrimitiveState returns the state of a freshly created, visible component.
func DefaultPrimitiveState(name string) PrimitiveState {
	return PrimitiveState{
		Name:             name,
		LocalToWorld:     math.NewMat4Identity(),
		Mobility:         MOBILITY_STATIC,
		Visible:          true,
		CastShadow:       true,
		RenderInMainPass: true,
		LightingChannels: DefaultLightingChannels,
		CollisionEnabled: true,
	}
}

package procmesh

import "github.com/spaghettifunk/meshproxy/engine/math"

var (
	// WireframeColour tints the one-frame wireframe override.
	WireframeColour = math.Colour{R: 0, G: 0.5, B: 1, A: 1}
	// CollisionColour is the base colour of simple collision wireframes.
	CollisionColour = math.NewColourRGBA8(157, 149, 223, 255)
	// BoundsColour is the base colour of the bounds overlay.
	BoundsColour = math.Colour{R: 1, G: 1, B: 1, A: 1}
	// SelectedColour replaces the base colour of selected primitives.
	SelectedColour = math.Colour{R: 0.828, G: 0.364, B: 0.003, A: 1}
)

const hoverBrighten float32 = 0.15

// SelectionColour returns base adjusted for the selection and hover state.
func SelectionColour(base math.Colour, selected, hovered bool) math.Colour {
	c := base
	if selected {
		c = SelectedColour
	}
	if hovered {
		c = c.Add(hoverBrighten)
	}
	return c
}

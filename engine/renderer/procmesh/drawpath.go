package procmesh

import "github.com/spaghettifunk/meshproxy/engine/renderer/metadata"

// DrawPath is the submission path a section takes for one view.
type DrawPath uint8

const (
	DRAW_PATH_STATIC DrawPath = iota
	DRAW_PATH_DYNAMIC
)

func (d DrawPath) String() string {
	if d == DRAW_PATH_STATIC {
		return "static"
	}
	return "dynamic"
}

// DrawPathConditions are the proxy and view wide inputs of the path decision.
type DrawPathConditions struct {
	StaticPathAvailable bool
	RichView            bool
	Selected            bool
	Wireframe           bool
}

// ForceDynamic reports whether every section must use the dynamic path.
func (c DrawPathConditions) ForceDynamic() bool {
	return !c.StaticPathAvailable || c.RichView || c.Selected || c.Wireframe
}

// SelectDrawPath picks the path of one section. A forced dynamic path wins
// over the section's own preference; otherwise the section decides alone.
func SelectDrawPath(c DrawPathConditions, sectionWantsStatic bool) DrawPath {
	if c.ForceDynamic() || !sectionWantsStatic {
		return DRAW_PATH_DYNAMIC
	}
	return DRAW_PATH_STATIC
}

func (p *SceneProxy) drawPathConditions(family *metadata.ViewFamily) DrawPathConditions {
	c := DrawPathConditions{
		StaticPathAvailable: p.IsStaticPathAvailable(),
		Selected:            p.state.Selected,
	}
	if family != nil {
		c.RichView = family.IsRichView()
		c.Wireframe = family.ShowFlags.Wireframe
	}
	return c
}

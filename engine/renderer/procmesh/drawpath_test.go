package procmesh_test

import (
	"testing"

	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
	"github.com/stretchr/testify/assert"
)

func TestSelectDrawPath(t *testing.T) {
	base := procmesh.DrawPathConditions{StaticPathAvailable: true}

	tests := []struct {
		name       string
		conditions procmesh.DrawPathConditions
		wantStatic bool
		expected   procmesh.DrawPath
	}{
		{"static section in a plain view", base, true, procmesh.DRAW_PATH_STATIC},
		{"dynamic section in a plain view", base, false, procmesh.DRAW_PATH_DYNAMIC},
		{"static path unavailable", procmesh.DrawPathConditions{}, true, procmesh.DRAW_PATH_DYNAMIC},
		{"rich view", procmesh.DrawPathConditions{StaticPathAvailable: true, RichView: true}, true, procmesh.DRAW_PATH_DYNAMIC},
		{"selected", procmesh.DrawPathConditions{StaticPathAvailable: true, Selected: true}, true, procmesh.DRAW_PATH_DYNAMIC},
		{"wireframe", procmesh.DrawPathConditions{StaticPathAvailable: true, Wireframe: true}, true, procmesh.DRAW_PATH_DYNAMIC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, procmesh.SelectDrawPath(tt.conditions, tt.wantStatic))
		})
	}
}

// Turning on any forcing condition never moves a section back to the static path.
func TestSelectDrawPathIsMonotonic(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		c := conditionsFromMask(mask)
		for bit := 0; bit < 4; bit++ {
			stronger := conditionsFromMask(mask | 1<<bit)
			// bit 0 is StaticPathAvailable, which forces when cleared.
			if bit == 0 {
				stronger = conditionsFromMask(mask &^ 1)
			}
			for _, wantsStatic := range []bool{true, false} {
				if procmesh.SelectDrawPath(c, wantsStatic) == procmesh.DRAW_PATH_DYNAMIC {
					assert.Equal(t, procmesh.DRAW_PATH_DYNAMIC, procmesh.SelectDrawPath(stronger, wantsStatic), "mask %04b bit %d", mask, bit)
				}
			}
		}
	}
}

func conditionsFromMask(mask int) procmesh.DrawPathConditions {
	return procmesh.DrawPathConditions{
		StaticPathAvailable: mask&1 != 0,
		RichView:            mask&2 != 0,
		Selected:            mask&4 != 0,
		Wireframe:           mask&8 != 0,
	}
}

func TestSectionsChooseIndependently(t *testing.T) {
	p := newProxy(t, newComponent(), newMesh(newSection(true), newSection(false), newSection(true), newSection(false)))
	p.CreateRenderThreadResources()

	family := defaultFamily()
	collector := rendererCollector(1)
	p.GetDynamicMeshElements(viewsFor(family, 1), family, 1, collector)

	var ids []int
	for _, b := range collector.MeshBatches(0) {
		ids = append(ids, b.SectionID)
	}
	assert.Equal(t, []int{1, 3}, ids)
	assert.Equal(t, "dynamic", procmesh.DRAW_PATH_DYNAMIC.String())
	assert.Equal(t, "static", procmesh.DRAW_PATH_STATIC.String())
}

package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminantSignFollowsMirroring(t *testing.T) {
	assert.InDelta(t, 1.0, NewMat4Identity().Determinant3x3(), 1e-6)
	assert.False(t, NewMat4Scale(NewVec3(2, 3, 4)).IsDeterminantNegative())
	assert.True(t, NewMat4Scale(NewVec3(-1, 1, 1)).IsDeterminantNegative())
	// Two mirrored axes cancel out.
	assert.False(t, NewMat4Scale(NewVec3(-1, -1, 1)).IsDeterminantNegative())
	// Translation does not affect the sign.
	assert.False(t, NewMat4Translation(NewVec3(-5, -5, -5)).IsDeterminantNegative())
}

func TestTransformWorldAppliesParent(t *testing.T) {
	parent := TransformFromPosition(NewVec3(10, 0, 0))
	child := TransformFromPosition(NewVec3(0, 2, 0))
	child.Parent = parent

	p := NewVec3Zero().Transform(child.GetWorld())
	assert.InDelta(t, 10, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)

	mirrored := TransformFromPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3(1, -1, 1))
	assert.True(t, mirrored.GetWorld().IsDeterminantNegative())
}

func TestExtentsTransformBy(t *testing.T) {
	e := Extents3D{Min: NewVec3(-1, -1, -1), Max: NewVec3(1, 1, 1)}
	out := e.TransformBy(NewMat4Scale(NewVec3(2, 1, 1)).Mul(NewMat4Translation(NewVec3(5, 0, 0))))
	assert.Equal(t, NewVec3(3, -1, -1), out.Min)
	assert.Equal(t, NewVec3(7, 1, 1), out.Max)
	assert.Equal(t, NewVec3(5, 0, 0), out.Center())
}

func TestColourAddClamps(t *testing.T) {
	c := Colour{R: 0.95, G: 0.5, B: 0, A: 0.25}.Add(0.1)
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 0.6, c.G, 1e-6)
	assert.InDelta(t, 0.1, c.B, 1e-6)
	assert.InDelta(t, 0.25, c.A, 1e-6)
	assert.Equal(t, 5, Clamp(9, 0, 5))
}

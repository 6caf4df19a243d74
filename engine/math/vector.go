package math

import m "math"

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{1, 1, 1}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(m.Sqrt(float64(v.Dot(v))))
}

/**
 * @brief Transforms v by m as a point (w = 1).
 */
func (v Vec3) Transform(mt Mat4) Vec3 {
	out := Vec3{}
	out.X = v.X*mt.Data[0+0] + v.Y*mt.Data[4+0] + v.Z*mt.Data[8+0] + 1.0*mt.Data[12+0]
	out.Y = v.X*mt.Data[0+1] + v.Y*mt.Data[4+1] + v.Z*mt.Data[8+1] + 1.0*mt.Data[12+1]
	out.Z = v.X*mt.Data[0+2] + v.Y*mt.Data[4+2] + v.Z*mt.Data[8+2] + 1.0*mt.Data[12+2]
	return out
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Center returns the midpoint of the extents.
func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// Corners returns the eight corners, bottom face first.
func (e Extents3D) Corners() [8]Vec3 {
	return [8]Vec3{
		{e.Min.X, e.Min.Y, e.Min.Z},
		{e.Max.X, e.Min.Y, e.Min.Z},
		{e.Max.X, e.Max.Y, e.Min.Z},
		{e.Min.X, e.Max.Y, e.Min.Z},
		{e.Min.X, e.Min.Y, e.Max.Z},
		{e.Max.X, e.Min.Y, e.Max.Z},
		{e.Max.X, e.Max.Y, e.Max.Z},
		{e.Min.X, e.Max.Y, e.Max.Z},
	}
}

// TransformBy returns the axis aligned extents enclosing e after transformation.
func (e Extents3D) TransformBy(mt Mat4) Extents3D {
	corners := e.Corners()
	first := corners[0].Transform(mt)
	out := Extents3D{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := c.Transform(mt)
		out.Min = Vec3{min(out.Min.X, p.X), min(out.Min.Y, p.Y), min(out.Min.Z, p.Z)}
		out.Max = Vec3{max(out.Max.X, p.X), max(out.Max.Y, p.Y), max(out.Max.Z, p.Z)}
	}
	return out
}

// ExtentsFromPoints returns the bounding extents of the given points.
func ExtentsFromPoints(points []Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	out := Extents3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		out.Min = Vec3{min(out.Min.X, p.X), min(out.Min.Y, p.Y), min(out.Min.Z, p.Z)}
		out.Max = Vec3{max(out.Max.X, p.X), max(out.Max.Y, p.Y), max(out.Max.Z, p.Z)}
	}
	return out
}

package math

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec3
}

// BoundsFromPoints returns the smallest box enclosing every point.
// An empty slice yields the zero box.
func BoundsFromPoints(points []Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.Encapsulate(p)
	}
	return b
}

// Encapsulate grows the box to include p.
func (b Bounds) Encapsulate(p Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the box enclosing all eight corners of b after m.
func (b Bounds) Transform(m Mat4) Bounds {
	out := Bounds{Min: m.TransformPoint(b.Min), Max: m.TransformPoint(b.Min)}
	for i := 1; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out = out.Encapsulate(m.TransformPoint(corner))
	}
	return out
}

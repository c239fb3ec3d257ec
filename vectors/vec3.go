package vectors

// Vec3 is a simple 3D vector with float32 components.
type Vec3 struct {
	X, Y, Z float32
}

// FromArray builds a vector from a [3]float32 triple.
func FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// Array returns the components as a [3]float32 triple.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Map applies f to every component.
func (v Vec3) Map(f func(float32) float32) Vec3 {
	return Vec3{f(v.X), f(v.Y), f(v.Z)}
}

// Mat3 is a row-major 3×3 matrix.
type Mat3 [3]Vec3

// MulVec returns m · v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v)}
}

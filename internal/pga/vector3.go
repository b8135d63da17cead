// Package pga implements the even subalgebra of the 3D projective geometric
// algebra (basis e0, e1, e2, e3 with e0² = 0) that the viewer uses for all
// rigid motions: rotors for rotations, full even multivectors for rotation +
// translation. Ray transport across portals is built on exactly two
// primitives from here: Transform.TransformPoint for positions and
// Rotor.Rotate for directions.
package pga

import "github.com/chewxy/math32"

// Vector3 is a 3-component float vector. Axis naming is fixed for the whole
// program: X is forward, Y is up, Z is right (right-handed).
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Named axes. Every package that talks about "forward", "up" or "right"
// means these.
var (
	Zero    = Vector3{}
	One     = Vector3{X: 1, Y: 1, Z: 1}
	Forward = Vector3{X: 1}
	Up      = Vector3{Y: 1}
	Right   = Vector3{Z: 1}
)

func (a Vector3) Add(b Vector3) Vector3 { return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3) Sub(b Vector3) Vector3 { return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vector3) Mul(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Div(s float32) Vector3 { return Vector3{v.X / s, v.Y / s, v.Z / s} }

// MulVec multiplies componentwise.
func (a Vector3) MulVec(b Vector3) Vector3 { return Vector3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

// DivVec divides componentwise.
func (a Vector3) DivVec(b Vector3) Vector3 { return Vector3{a.X / b.X, a.Y / b.Y, a.Z / b.Z} }

// Dot returns the dot product.
func (a Vector3) Dot(b Vector3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// SqrMagnitude returns the squared Euclidean length.
func (v Vector3) SqrMagnitude() float32 { return v.Dot(v) }

// Magnitude returns the Euclidean length.
func (v Vector3) Magnitude() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalised returns a unit-length copy, or the zero vector when the
// magnitude is below 1e-4. Degenerate input is never an error.
func (v Vector3) Normalised() Vector3 {
	m := v.Magnitude()
	if m > 1e-4 {
		return v.Mul(1 / m)
	}
	return Zero
}

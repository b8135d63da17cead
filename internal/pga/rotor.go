package pga

import "github.com/chewxy/math32"

// Rotor is a rotation-only even multivector: a scalar plus the three
// rotation bivectors e12, e13, e23. A unit rotor satisfies
// s² + e12² + e13² + e23² = 1; long chains of Then calls drift and callers
// are expected to Normalise when the magnitude leaves [1-ε, 1+ε].
type Rotor struct {
	S   float32 `json:"s"`
	E12 float32 `json:"e12"`
	E13 float32 `json:"e13"`
	E23 float32 `json:"e23"`
}

// IdentityRotor is the no-rotation rotor.
var IdentityRotor = Rotor{S: 1}

// RotationXY returns the rotor for a rotation by angle in the e1e2 plane
// (camera pitch under the forward=X, up=Y convention).
func RotationXY(angle float32) Rotor {
	return Rotor{S: math32.Cos(angle / 2), E12: math32.Sin(angle / 2)}
}

// RotationXZ returns the rotor for a rotation by angle in the e1e3 plane (yaw).
func RotationXZ(angle float32) Rotor {
	return Rotor{S: math32.Cos(angle / 2), E13: math32.Sin(angle / 2)}
}

// RotationYZ returns the rotor for a rotation by angle in the e2e3 plane (roll).
func RotationYZ(angle float32) Rotor {
	return Rotor{S: math32.Cos(angle / 2), E23: math32.Sin(angle / 2)}
}

// Then returns the rotor applying r first, then o: the Clifford product o·r.
func (r Rotor) Then(o Rotor) Rotor {
	a1, b1, c1, d1 := r.S, r.E12, r.E13, r.E23
	a2, b2, c2, d2 := o.S, o.E12, o.E13, o.E23
	return Rotor{
		S:   a1*a2 - b1*b2 - c1*c2 - d1*d2,
		E12: a1*b2 + a2*b1 + c2*d1 - c1*d2,
		E13: a1*c2 + a2*c1 + b1*d2 - b2*d1,
		E23: a1*d2 + a2*d1 + b2*c1 - b1*c2,
	}
}

// After returns the rotor applying o first, then r.
func (r Rotor) After(o Rotor) Rotor { return o.Then(r) }

// Reverse flips the sign of every bivector. For a unit rotor this is the
// inverse rotation.
func (r Rotor) Reverse() Rotor {
	return Rotor{S: r.S, E12: -r.E12, E13: -r.E13, E23: -r.E23}
}

// Magnitude returns the Euclidean norm over the four coefficients.
func (r Rotor) Magnitude() float32 {
	return math32.Sqrt(r.S*r.S + r.E12*r.E12 + r.E13*r.E13 + r.E23*r.E23)
}

// Normalised rescales to unit magnitude, or returns the identity when the
// magnitude is below 1e-4.
func (r Rotor) Normalised() Rotor {
	m := r.Magnitude()
	if m <= 1e-4 {
		return IdentityRotor
	}
	return Rotor{S: r.S / m, E12: r.E12 / m, E13: r.E13 / m, E23: r.E23 / m}
}

// Rotate applies the sandwich product R·P·R̃ to a point or direction.
// This is the closed form of the sandwich with the e0-grade terms dropped;
// the full-transform version in Transform.TransformPoint extends it with the
// translation terms and must stay consistent with it.
func (r Rotor) Rotate(p Vector3) Vector3 {
	a, b, c, d := r.S, r.E12, r.E13, r.E23
	x, y, z := p.X, p.Y, p.Z

	e012 := (c*c+d*d-a*a-b*b)*z - 2*(a*c)*x - 2*(a*d)*y - 2*(b*d)*x + 2*(b*c)*y
	e013 := (a*a+c*c-b*b-d*d)*y - 2*(a*d)*z - 2*(b*c)*z - 2*(c*d)*x + 2*(a*b)*x
	e023 := (b*b+c*c-a*a-d*d)*x - 2*(b*d)*z + 2*(a*b)*y + 2*(a*c)*z + 2*(c*d)*y

	return Vector3{X: -e023, Y: e013, Z: -e012}
}

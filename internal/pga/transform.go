package pga

// Transform is a full even multivector: the four rotor coefficients plus the
// three translation bivectors e01, e02, e03 and the pseudoscalar e0123. It
// represents a rigid motion. The translation bivectors carry half the
// Cartesian offset; every closed-form sandwich below assumes that
// factor-of-two convention, so never build a Transform by scaling one.
//
// Reverse is the inverse only for unit even multivectors. Everything this
// package constructs (translations, rotors, products of those) is unit, so
// the invariant holds as long as callers compose instead of mutating fields.
type Transform struct {
	S     float32 `json:"s"`
	E12   float32 `json:"e12"`
	E13   float32 `json:"e13"`
	E23   float32 `json:"e23"`
	E01   float32 `json:"e01"`
	E02   float32 `json:"e02"`
	E03   float32 `json:"e03"`
	E0123 float32 `json:"e0123"`
}

// IdentityTransform is the no-motion transform.
var IdentityTransform = Transform{S: 1}

// Translation returns the transform that moves points by v.
func Translation(v Vector3) Transform {
	return Transform{S: 1, E01: v.X / 2, E02: v.Y / 2, E03: v.Z / 2}
}

// FromRotor embeds a rotor as a transform with no translation.
func FromRotor(r Rotor) Transform {
	return Transform{S: r.S, E12: r.E12, E13: r.E13, E23: r.E23}
}

// TransformRotationXY returns FromRotor(RotationXY(angle)).
func TransformRotationXY(angle float32) Transform { return FromRotor(RotationXY(angle)) }

// TransformRotationXZ returns FromRotor(RotationXZ(angle)).
func TransformRotationXZ(angle float32) Transform { return FromRotor(RotationXZ(angle)) }

// TransformRotationYZ returns FromRotor(RotationYZ(angle)).
func TransformRotationYZ(angle float32) Transform { return FromRotor(RotationYZ(angle)) }

// RotorPart extracts the rotation, discarding translation. This is how ray
// directions are carried through a portal hop: positions go through
// TransformPoint, directions through RotorPart().Rotate.
func (t Transform) RotorPart() Rotor {
	return Rotor{S: t.S, E12: t.E12, E13: t.E13, E23: t.E23}
}

// Reverse negates all six bivectors, keeping the scalar and pseudoscalar.
// For unit even multivectors this is the inverse motion.
func (t Transform) Reverse() Transform {
	return Transform{
		S:     t.S,
		E12:   -t.E12,
		E13:   -t.E13,
		E23:   -t.E23,
		E01:   -t.E01,
		E02:   -t.E02,
		E03:   -t.E03,
		E0123: t.E0123,
	}
}

// Then returns the transform applying t first, then o: the Clifford product
// o·t over the full 8-term even multivector.
func (t Transform) Then(o Transform) Transform {
	a1, b1, c1, d1 := t.S, t.E12, t.E13, t.E23
	e1, f1, g1, h1 := t.E01, t.E02, t.E03, t.E0123
	a2, b2, c2, d2 := o.S, o.E12, o.E13, o.E23
	e2, f2, g2, h2 := o.E01, o.E02, o.E03, o.E0123
	return Transform{
		S:     a1*a2 - b1*b2 - c1*c2 - d1*d2,
		E12:   a1*b2 + a2*b1 + c2*d1 - c1*d2,
		E13:   a1*c2 + a2*c1 + b1*d2 - b2*d1,
		E23:   a1*d2 + a2*d1 + b2*c1 - b1*c2,
		E01:   a1*e2 + a2*e1 + b1*f2 + c1*g2 - b2*f1 - c2*g1 - d1*h2 - d2*h1,
		E02:   a1*f2 + a2*f1 + b2*e1 + c1*h2 + c2*h1 + d1*g2 - b1*e2 - d2*g1,
		E03:   a1*g2 + a2*g1 + c2*e1 + d2*f1 - b1*h2 - b2*h1 - c1*e2 - d1*f2,
		E0123: a1*h2 + a2*h1 + b1*g2 + b2*g1 + d1*e2 + d2*e1 - c1*f2 - c2*f1,
	}
}

// After returns the transform applying o first, then t.
func (t Transform) After(o Transform) Transform { return o.Then(t) }

// TransformPoint applies the sandwich product T·P·T̃ to a point. It extends
// Rotor.Rotate with the translation and pseudoscalar terms.
func (t Transform) TransformPoint(p Vector3) Vector3 {
	a, b, c, d := t.S, t.E12, t.E13, t.E23
	e, f, g, h := t.E01, t.E02, t.E03, t.E0123
	x, y, z := p.X, p.Y, p.Z

	e012 := -2*a*g - 2*b*h - 2*c*e - 2*d*f +
		(c*c+d*d-a*a-b*b)*z - 2*(a*c)*x - 2*(a*d)*y - 2*(b*d)*x + 2*(b*c)*y
	e013 := -2*c*h - 2*d*g + 2*a*f + 2*b*e +
		(a*a+c*c-b*b-d*d)*y - 2*(a*d)*z - 2*(b*c)*z - 2*(c*d)*x + 2*(a*b)*x
	e023 := -2*a*e - 2*d*h + 2*b*f + 2*c*g +
		(b*b+c*c-a*a-d*d)*x - 2*(b*d)*z + 2*(a*b)*y + 2*(a*c)*z + 2*(c*d)*y

	return Vector3{X: -e023, Y: e013, Z: -e012}
}

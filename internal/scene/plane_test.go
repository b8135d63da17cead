package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalview/internal/pga"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got pga.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	assert.InDelta(t, want.Z, got.Z, eps)
}

func TestIntersectStraightDown(t *testing.T) {
	p := DefaultPlane()
	hit, ok := p.Intersect(Ray{
		Origin:    pga.Vector3{Y: 1},
		Direction: pga.Vector3{Y: -1},
	})
	require.True(t, ok)
	assert.InDelta(t, 1, hit.Distance, eps)
	assert.True(t, hit.Front)
	assertVec(t, pga.Zero, hit.Position)
	assertVec(t, pga.Up, hit.Normal)
}

func TestIntersectFromBelow(t *testing.T) {
	p := DefaultPlane()
	hit, ok := p.Intersect(Ray{
		Origin:    pga.Vector3{Y: -2},
		Direction: pga.Vector3{Y: 1},
	})
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, eps)
	assert.False(t, hit.Front)
	assertVec(t, pga.Vector3{Y: -1}, hit.Normal)
}

func TestIntersectOutsideBounds(t *testing.T) {
	p := DefaultPlane() // 1x1, so the rectangle is [-0.5, 0.5] in x and z
	_, ok := p.Intersect(Ray{
		Origin:    pga.Vector3{X: 0.7, Y: 1},
		Direction: pga.Vector3{Y: -1},
	})
	assert.False(t, ok)

	_, ok = p.Intersect(Ray{
		Origin:    pga.Vector3{Y: 1, Z: -0.51},
		Direction: pga.Vector3{Y: -1},
	})
	assert.False(t, ok)
}

func TestIntersectPointingAway(t *testing.T) {
	p := DefaultPlane()
	_, ok := p.Intersect(Ray{
		Origin:    pga.Vector3{Y: 1},
		Direction: pga.Vector3{Y: 1},
	})
	assert.False(t, ok)
}

func TestIntersectGrazing(t *testing.T) {
	p := DefaultPlane()
	_, ok := p.Intersect(Ray{
		Origin:    pga.Vector3{X: -5, Y: 1},
		Direction: pga.Forward,
	})
	assert.False(t, ok)

	// Slightly tilted but still below the 1e-3 local-dy cutoff.
	_, ok = p.Intersect(Ray{
		Origin:    pga.Vector3{X: -5, Y: 1},
		Direction: pga.Vector3{X: 1, Y: -5e-4}.Normalised(),
	})
	assert.False(t, ok)
}

func TestIntersectRotatedPlane(t *testing.T) {
	// Stand the plane up: rotate local up into world forward so the plane
	// faces the camera, then place it 2 units ahead.
	p := DefaultPlane()
	p.XYRotation = -math32.Pi / 2
	p.Position = pga.Vector3{X: 2}

	hit, ok := p.Intersect(Ray{Origin: pga.Zero, Direction: pga.Forward})
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, eps)
	assertVec(t, pga.Vector3{X: 2}, hit.Position)
	assert.InDelta(t, 1, math32.Abs(hit.Normal.X), eps)
}

func TestIntersectTranslatedPlaneBounds(t *testing.T) {
	p := DefaultPlane()
	p.Position = pga.Vector3{X: 3}
	p.Width = 2

	// Inside the moved rectangle.
	_, ok := p.Intersect(Ray{Origin: pga.Vector3{X: 3.9, Y: 1}, Direction: pga.Vector3{Y: -1}})
	assert.True(t, ok)

	// Would hit the untranslated rectangle, but misses the moved one.
	_, ok = p.Intersect(Ray{Origin: pga.Vector3{X: 0.2, Y: 1}, Direction: pga.Vector3{Y: -1}})
	assert.False(t, ok)
}

func TestPlaneTransformRotationOrder(t *testing.T) {
	// XY then YZ then XZ. With only one angle set the order is invisible,
	// so set two and compare against the explicitly composed rotor.
	p := DefaultPlane()
	p.XYRotation = 0.5
	p.XZRotation = -0.3

	want := pga.Translation(pga.Zero).Then(pga.FromRotor(
		pga.RotationXY(0.5).Then(pga.RotationYZ(0)).Then(pga.RotationXZ(-0.3))))
	got := p.Transform()
	assert.InDelta(t, want.S, got.S, eps)
	assert.InDelta(t, want.E12, got.E12, eps)
	assert.InDelta(t, want.E13, got.E13, eps)
	assert.InDelta(t, want.E23, got.E23, eps)
}

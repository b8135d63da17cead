package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"portalview/internal/pga"
)

func TestCameraMoveForward(t *testing.T) {
	c := DefaultCamera()
	c.Position = pga.Zero

	changed := c.Update(InputState{Forward: true}, 0.5)
	assert.True(t, changed)
	assertVec(t, pga.Vector3{X: 1}, c.Position)
}

func TestCameraMoveRespectsOrientation(t *testing.T) {
	c := DefaultCamera()
	c.Position = pga.Zero
	c.Rotation = pga.RotationXZ(math32.Pi / 2) // now looking along +Z

	c.Update(InputState{Forward: true}, 0.5)
	assertVec(t, pga.Vector3{Z: 1}, c.Position)
}

func TestCameraShiftDoublesSpeed(t *testing.T) {
	c := DefaultCamera()
	c.Position = pga.Zero

	c.Update(InputState{Forward: true, Shift: true}, 0.5)
	assertVec(t, pga.Vector3{X: 2}, c.Position)
}

func TestCameraDiagonalIsNormalised(t *testing.T) {
	c := DefaultCamera()
	c.Position = pga.Zero

	c.Update(InputState{Forward: true, Right: true}, 0.5)
	assert.InDelta(t, 1, c.Position.Magnitude(), eps)
}

func TestCameraIdleUnchanged(t *testing.T) {
	c := DefaultCamera()
	before := c

	assert.False(t, c.Update(InputState{}, 0.5))
	assert.Equal(t, before, c)
}

func TestCameraTurnRight(t *testing.T) {
	c := DefaultCamera()

	// A quarter second at rotation speed 0.25 is an eighth of a turn.
	assert.True(t, c.Update(InputState{TurnRight: true}, 0.25))
	want := pga.RotationXZ(0.25 * tau * 0.25)
	assert.InDelta(t, want.S, c.Rotation.S, eps)
	assert.InDelta(t, want.E13, c.Rotation.E13, eps)
}

func TestCameraRollWithShift(t *testing.T) {
	c := DefaultCamera()

	c.Update(InputState{TurnRight: true, Shift: true}, 0.25)
	assert.NotZero(t, c.Rotation.E23)
	assert.Zero(t, c.Rotation.E13)
}

func TestCameraRenormalisesDriftedRotor(t *testing.T) {
	c := DefaultCamera()
	c.Rotation = pga.Rotor{S: 1.1}

	changed := c.Update(InputState{}, 0.1)
	assert.True(t, changed)
	assert.InDelta(t, 1, c.Rotation.Magnitude(), eps)
}

func TestCameraTransformPlacesOrigin(t *testing.T) {
	c := DefaultCamera()
	c.Position = pga.Vector3{X: 1, Y: 2, Z: 3}
	c.Rotation = pga.RotationXZ(0.7)

	assertVec(t, c.Position, c.Transform().TransformPoint(pga.Zero))
}

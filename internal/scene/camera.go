package scene

import (
	"encoding/json"

	"github.com/chewxy/math32"

	"portalview/internal/pga"
)

// InputState is the snapshot of movement-relevant keys for one frame. The
// graphics layer fills it from the keyboard; tests fill it directly.
type InputState struct {
	Forward, Backward bool
	Up, Down          bool
	Left, Right       bool

	PitchUp, PitchDown bool
	TurnLeft, TurnRight bool

	Shift bool
}

func (in InputState) any() bool {
	return in.Forward || in.Backward || in.Up || in.Down || in.Left || in.Right ||
		in.PitchUp || in.PitchDown || in.TurnLeft || in.TurnRight
}

func key(down bool) float32 {
	if down {
		return 1
	}
	return 0
}

// Camera is a first-person camera: a position and an orientation rotor.
type Camera struct {
	Position      pga.Vector3 `json:"position"`
	Rotation      pga.Rotor   `json:"rotation"`
	Speed         float32     `json:"speed"`
	RotationSpeed float32     `json:"rotation_speed"`
}

// DefaultCamera returns the camera of the default scene: 1.1 units above the
// origin, looking along forward (+X).
func DefaultCamera() Camera {
	return Camera{
		Position:      pga.Up.Mul(1.1),
		Rotation:      pga.IdentityRotor,
		Speed:         2,
		RotationSpeed: 0.25,
	}
}

// UnmarshalJSON fills missing fields from DefaultCamera.
func (c *Camera) UnmarshalJSON(data []byte) error {
	type plain Camera
	tmp := plain(DefaultCamera())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = Camera(tmp)
	return nil
}

// Transform returns the camera's world transform: translate to Position,
// then rotate by Rotation.
func (c *Camera) Transform() pga.Transform {
	return pga.Translation(c.Position).Then(pga.FromRotor(c.Rotation))
}

const tau = 2 * math32.Pi

// Update advances the camera by one frame of input over ts seconds and
// reports whether anything observable changed (which resets accumulation).
// Movement is in the camera's local frame (W/S along forward, E/Q along up,
// A/D along right); shift doubles speed. Arrows pitch and yaw, or roll with
// shift held. The rotor is renormalised when composition drift exceeds 1e-3.
func (c *Camera) Update(in InputState, ts float32) bool {
	changed := false

	{
		movement := pga.Vector3{
			X: key(in.Forward) - key(in.Backward),
			Y: key(in.Up) - key(in.Down),
			Z: key(in.Right) - key(in.Left),
		}
		changed = changed || in.Forward || in.Backward || in.Up || in.Down || in.Left || in.Right

		boost := key(in.Shift) + 1
		c.Position = c.Position.Add(
			c.Rotation.Rotate(movement.Normalised()).Mul(c.Speed * boost * ts))
	}

	{
		changed = changed || in.PitchUp || in.PitchDown || in.TurnLeft || in.TurnRight

		vertical := key(in.PitchUp) - key(in.PitchDown)
		c.Rotation = c.Rotation.Then(pga.RotationXY(vertical * c.RotationSpeed * tau * ts))

		horizontal := key(in.TurnRight) - key(in.TurnLeft)
		if in.Shift {
			c.Rotation = c.Rotation.Then(pga.RotationYZ(horizontal * c.RotationSpeed * tau * ts))
		} else {
			c.Rotation = c.Rotation.Then(pga.RotationXZ(horizontal * c.RotationSpeed * tau * ts))
		}
	}

	if math32.Abs(c.Rotation.Magnitude()-1) > 1e-3 {
		c.Rotation = c.Rotation.Normalised()
		changed = true
	}

	return changed
}

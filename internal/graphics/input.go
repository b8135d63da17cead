package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portalview/internal/scene"
)

// ReadInput snapshots the movement keys for this frame: W/S forward/back,
// E/Q up/down, A/D left/right, arrows for pitch and yaw (roll with shift).
func ReadInput() scene.InputState {
	return scene.InputState{
		Forward:   rl.IsKeyDown(rl.KeyW),
		Backward:  rl.IsKeyDown(rl.KeyS),
		Up:        rl.IsKeyDown(rl.KeyE),
		Down:      rl.IsKeyDown(rl.KeyQ),
		Left:      rl.IsKeyDown(rl.KeyA),
		Right:     rl.IsKeyDown(rl.KeyD),
		PitchUp:   rl.IsKeyDown(rl.KeyUp),
		PitchDown: rl.IsKeyDown(rl.KeyDown),
		TurnLeft:  rl.IsKeyDown(rl.KeyLeft),
		TurnRight: rl.IsKeyDown(rl.KeyRight),
		Shift:     rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
	}
}

package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portalview/internal/pga"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// The text refreshes every N frames, not every frame.
	updateInterval = 15
)

// Overlay draws render statistics in the top-right corner: FPS, frame time,
// accumulated frames and camera position. Toggled with F3; off by default.
type Overlay struct {
	Show       bool
	frameCount uint32
	lines      [4]string
}

// New returns a hidden overlay.
func New() *Overlay {
	return &Overlay{}
}

// Update handles the F3 toggle. Call once per frame.
func (o *Overlay) Update() {
	if rl.IsKeyPressed(rl.KeyF3) {
		o.Show = !o.Show
	}
}

// Draw renders the overlay when visible. Call last in the draw phase so the
// text sits on top of the image and console.
func (o *Overlay) Draw(accumulatedFrames uint32, cameraPosition pga.Vector3) {
	if !o.Show {
		return
	}
	if o.frameCount%updateInterval == 0 {
		ft := rl.GetFrameTime()
		o.lines[0] = fmt.Sprintf("FPS: %d", rl.GetFPS())
		o.lines[1] = fmt.Sprintf("Frame: %.2fms", ft*1000)
		o.lines[2] = fmt.Sprintf("Accumulated: %d", accumulatedFrames)
		o.lines[3] = fmt.Sprintf("Camera: %.2f %.2f %.2f",
			cameraPosition.X, cameraPosition.Y, cameraPosition.Z)
	}
	o.frameCount++

	screenW := int32(rl.GetScreenWidth())
	for i, line := range o.lines {
		w := rl.MeasureText(line, fontSize)
		rl.DrawText(line, screenW-w-padding, int32(padding+i*lineHeight), fontSize, rl.Green)
	}
}

// Package graphics owns the window and the frame loop, and presents the
// tracer's accumulation buffer as a full-screen texture. It is the only
// package besides the console and debug overlay that talks to raylib.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run starts the window and main loop. Each frame it calls update (input,
// camera, portal traversal, kernel dispatch), then clears the screen and
// calls draw (rendered image, console, overlays).
// ESC toggles the console, so it is not the exit key; close via window button.
func Run(update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "portalview")
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}

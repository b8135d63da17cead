// Package console is the viewer's command bar: a bottom input line plus a
// scrollback of log lines, toggled with ESC. While the console is open it
// captures the keyboard, which suspends camera movement (the "wants
// keyboard" predicate of the frame loop).
package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portalview/internal/commands"
	"portalview/internal/logger"
)

const (
	barHeight        = 40
	prompt           = "> "
	fontSize         = 20
	padding          = 8
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
)

// Reused every frame when drawing to avoid per-frame color allocations.
var (
	barColor        = rl.NewColor(40, 40, 40, 255)
	lineColor       = rl.NewColor(80, 80, 80, 255)
	scrollbackColor = rl.NewColor(24, 24, 24, 240)
)

// Console is the command input bar at the bottom of the screen. Submitted
// lines go through the command registry; results and errors land in the log,
// which the scrollback displays.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed Console that logs lines and runs them through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing input.
// Camera movement is suspended while this is true.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles ESC (toggle open/closed) and, when open, typing, backspace
// and enter. Call once per frame before the camera update.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.open = !c.open
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.log.Log(prompt + line)

		if args, ok := commands.Parse(line); ok {
			if err := c.reg.Execute(args); err != nil {
				c.log.Log(err.Error())
			}
		}
	}
}

// Draw draws the input bar at the bottom when open, and the recent log lines
// above it. Call after the rendered image, inside the drawing phase.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := rl.GetScreenWidth()
	screenH := rl.GetScreenHeight()
	barY := screenH - barHeight

	scrollHeight := maxLinesOnScreen * lineHeight
	scrollY := barY - scrollHeight
	if scrollY < 0 {
		scrollHeight = barY
		scrollY = 0
	}
	if scrollHeight > 0 {
		rl.DrawRectangle(0, int32(scrollY), int32(screenW), int32(scrollHeight), scrollbackColor)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := scrollY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, padding, int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), barHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	rl.DrawText(prompt+c.inputBuf+"|", padding, int32(barY+padding), fontSize, rl.White)
}

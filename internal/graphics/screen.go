package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portalview/internal/tracer"
)

// Screen uploads the accumulation buffer to a texture and draws it scaled to
// the window. The texture and scratch pixels are recreated only when the
// render target size changes.
type Screen struct {
	texture rl.Texture2D
	pixels  []color.RGBA
	width   int
	height  int
	valid   bool
}

// NewScreen returns a Screen with no texture yet; the first Present creates it.
func NewScreen() *Screen {
	return &Screen{}
}

// TargetSize returns the kernel target size for the current window: the
// window size divided by scale, at least 1x1.
func TargetSize(scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	w := rl.GetScreenWidth() / scale
	h := rl.GetScreenHeight() / scale
	return max(w, 1), max(h, 1)
}

func (s *Screen) resize(width, height int) {
	if s.valid {
		rl.UnloadTexture(s.texture)
	}
	img := rl.GenImageColor(width, height, rl.Black)
	s.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(s.texture, rl.FilterBilinear)
	s.pixels = make([]color.RGBA, width*height)
	s.width = width
	s.height = height
	s.valid = true
}

// Present tonemaps the accumulator into the screen texture and draws it
// stretched over the whole window. Call inside the drawing phase.
func (s *Screen) Present(acc *tracer.Accumulator) {
	if !s.valid || s.width != acc.Width() || s.height != acc.Height() {
		s.resize(acc.Width(), acc.Height())
	}
	acc.Tonemap(s.pixels)
	rl.UpdateTexture(s.texture, s.pixels)

	src := rl.NewRectangle(0, 0, float32(s.width), float32(s.height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(s.texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

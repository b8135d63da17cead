package tracer

import (
	"image/color"

	"github.com/chewxy/math32"

	"portalview/internal/pga"
)

// Accumulator is the HDR storage image samples converge into: a running
// mean of per-frame samples, reset whenever anything observable changes.
type Accumulator struct {
	width  int
	height int
	frames uint32
	buf    []float32 // RGB, row-major
}

// NewAccumulator returns an empty accumulator of the given size.
func NewAccumulator(width, height int) *Accumulator {
	a := &Accumulator{}
	a.Resize(width, height)
	return a
}

// Resize reallocates for a new target size and resets. No-op when the size
// is unchanged.
func (a *Accumulator) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == a.width && height == a.height {
		return
	}
	a.width = width
	a.height = height
	a.buf = make([]float32, width*height*3)
	a.frames = 0
}

// Reset drops all accumulated samples.
func (a *Accumulator) Reset() {
	a.frames = 0
	clear(a.buf)
}

// Frames returns how many frames have been blended in.
func (a *Accumulator) Frames() uint32 { return a.frames }

// Width returns the target width in pixels.
func (a *Accumulator) Width() int { return a.width }

// Height returns the target height in pixels.
func (a *Accumulator) Height() int { return a.height }

// blend folds one sample into the running mean: new = (old*n + sample)/(n+1).
func (a *Accumulator) blend(x, y int, sample pga.Color, n uint32) {
	i := (y*a.width + x) * 3
	inv := 1 / float32(n+1)
	fn := float32(n)
	a.buf[i+0] = (a.buf[i+0]*fn + sample.R) * inv
	a.buf[i+1] = (a.buf[i+1]*fn + sample.G) * inv
	a.buf[i+2] = (a.buf[i+2]*fn + sample.B) * inv
}

// At returns the accumulated HDR value at (x, y).
func (a *Accumulator) At(x, y int) pga.Color {
	i := (y*a.width + x) * 3
	return pga.Color{R: a.buf[i], G: a.buf[i+1], B: a.buf[i+2]}
}

// Tonemap writes the display image into dst (len >= width*height): clamp,
// gamma 1/2.2. NaNs from degenerate shading sanitise to black here.
func (a *Accumulator) Tonemap(dst []color.RGBA) {
	for i := 0; i < a.width*a.height; i++ {
		dst[i] = color.RGBA{
			R: tonemapChannel(a.buf[i*3+0]),
			G: tonemapChannel(a.buf[i*3+1]),
			B: tonemapChannel(a.buf[i*3+2]),
			A: 255,
		}
	}
}

func tonemapChannel(v float32) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math32.Pow(v, 1/2.2)*255 + 0.5)
}

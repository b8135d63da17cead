package pga

// Color is a linear RGB triple. Values are HDR radiance, not display values;
// the graphics layer tonemaps before presenting.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

func (a Color) Add(b Color) Color { return Color{a.R + b.R, a.G + b.G, a.B + b.B} }
func (c Color) Mul(s float32) Color { return Color{c.R * s, c.G * s, c.B * s} }

// MulColor modulates componentwise (throughput times albedo).
func (a Color) MulColor(b Color) Color { return Color{a.R * b.R, a.G * b.G, a.B * b.B} }

// Lerp blends from a to b by t in [0, 1].
func (a Color) Lerp(b Color, t float32) Color {
	return a.Mul(1 - t).Add(b.Mul(t))
}

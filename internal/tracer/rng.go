package tracer

import (
	"github.com/chewxy/math32"

	"portalview/internal/pga"
)

// pcg is a PCG-XSH-RR generator seeded per pixel per frame, so a sample is a
// pure function of (pixel, frame, seed) exactly as a compute shader's would be.
type pcg struct {
	state uint64
}

const pcgMult = 6364136223846793005

func seedHash(x, y, v uint32) uint64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xbf58476d1ce4e5b9 ^ uint64(v)*0x94d049bb133111eb
	h ^= h >> 31
	return h
}

func newPixelRNG(x, y, frame, seed uint32) pcg {
	r := pcg{state: seedHash(x, y, frame^seed)}
	r.next()
	return r
}

func (r *pcg) next() uint32 {
	old := r.state
	r.state = old*pcgMult + 1442695040888963407
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// float returns a uniform sample in [0, 1).
func (r *pcg) float() float32 {
	return float32(r.next()>>8) * (1.0 / (1 << 24))
}

// jitter returns two independent uniform samples for the pixel offset.
func (r *pcg) jitter() (float32, float32) {
	return r.float(), r.float()
}

// cosineHemisphere returns a cosine-weighted direction about the unit normal n.
func (r *pcg) cosineHemisphere(n pga.Vector3) pga.Vector3 {
	u := r.float()
	v := r.float()
	phi := 2 * math32.Pi * u
	sinTheta := math32.Sqrt(v)
	cosTheta := math32.Sqrt(1 - v)

	tangent, bitangent := orthonormalBasis(n)
	return tangent.Mul(math32.Cos(phi) * sinTheta).
		Add(bitangent.Mul(math32.Sin(phi) * sinTheta)).
		Add(n.Mul(cosTheta))
}

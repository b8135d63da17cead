// Package tracer is the device side of the renderer: the packed record
// layouts the compute kernel reads, the per-pixel recursive ray march with
// portal hops, and the progressive accumulation buffer. The kernel is
// dispatched over 16x16 tiles by a worker pool; it never touches the host
// scene types, only the records packed from them.
package tracer

import (
	"encoding/binary"
	"math"

	"portalview/internal/pga"
)

// Render modes.
const (
	RenderTypeUnlit uint32 = 0
	RenderTypeLit   uint32 = 1
)

// NoConnection is the sentinel index for "no portal on this side".
const NoConnection = ^uint32(0)

// GpuPortalConnection is the device form of a portal link. Flip is carried
// in the record but the kernel does not consume it.
type GpuPortalConnection struct {
	OtherIndex uint32
	Flip       uint32
}

// GpuPlane is the device record for one plane. Field order is the packed
// layout order; EmissiveColor is premultiplied by the emission intensity.
type GpuPlane struct {
	Transform               pga.Transform
	Width                   float32
	Height                  float32
	CheckerCountX           uint32
	CheckerCountZ           uint32
	Color                   pga.Color
	CheckerDarkness         float32
	EmissiveColor           pga.Color
	EmissiveCheckerDarkness float32
	FrontPortal             GpuPortalConnection
	BackPortal              GpuPortalConnection
}

// GpuCamera carries the camera transform and the lighting environment. Sky
// and sun colors are premultiplied by their intensities.
type GpuCamera struct {
	Transform            pga.Transform
	UpSkyColor           pga.Color
	DownSkyColor         pga.Color
	SunColor             pga.Color
	SunDirection         pga.Vector3
	SunSize              float32
	RecursivePortalCount uint32
	MaxBounces           uint32
}

// GpuSceneInfo is the per-frame uniform block.
type GpuSceneInfo struct {
	Camera            GpuCamera
	Aspect            float32
	AccumulatedFrames uint32
	RandomSeed        uint32
	RenderType        uint32
	Antialiasing      uint32
	PlaneCount        uint32
}

func appendF32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}

func appendTransform(buf []byte, t pga.Transform) []byte {
	buf = appendF32(buf, t.S)
	buf = appendF32(buf, t.E12)
	buf = appendF32(buf, t.E13)
	buf = appendF32(buf, t.E23)
	buf = appendF32(buf, t.E01)
	buf = appendF32(buf, t.E02)
	buf = appendF32(buf, t.E03)
	return appendF32(buf, t.E0123)
}

func appendVector3(buf []byte, v pga.Vector3) []byte {
	buf = appendF32(buf, v.X)
	buf = appendF32(buf, v.Y)
	return appendF32(buf, v.Z)
}

func appendColor(buf []byte, c pga.Color) []byte {
	buf = appendF32(buf, c.R)
	buf = appendF32(buf, c.G)
	return appendF32(buf, c.B)
}

// PackedPlaneSize is the byte size of one packed GpuPlane.
const PackedPlaneSize = 8*4 + 2*4 + 2*4 + 3*4 + 4 + 3*4 + 4 + 2*2*4

// Pack appends the record in the device layout: little-endian f32/u32 words,
// transform first, portals last.
func (p GpuPlane) Pack(buf []byte) []byte {
	buf = appendTransform(buf, p.Transform)
	buf = appendF32(buf, p.Width)
	buf = appendF32(buf, p.Height)
	buf = binary.LittleEndian.AppendUint32(buf, p.CheckerCountX)
	buf = binary.LittleEndian.AppendUint32(buf, p.CheckerCountZ)
	buf = appendColor(buf, p.Color)
	buf = appendF32(buf, p.CheckerDarkness)
	buf = appendColor(buf, p.EmissiveColor)
	buf = appendF32(buf, p.EmissiveCheckerDarkness)
	buf = binary.LittleEndian.AppendUint32(buf, p.FrontPortal.OtherIndex)
	buf = binary.LittleEndian.AppendUint32(buf, p.FrontPortal.Flip)
	buf = binary.LittleEndian.AppendUint32(buf, p.BackPortal.OtherIndex)
	return binary.LittleEndian.AppendUint32(buf, p.BackPortal.Flip)
}

// Pack appends the uniform block in the device layout.
func (i GpuSceneInfo) Pack(buf []byte) []byte {
	buf = appendTransform(buf, i.Camera.Transform)
	buf = appendColor(buf, i.Camera.UpSkyColor)
	buf = appendColor(buf, i.Camera.DownSkyColor)
	buf = appendColor(buf, i.Camera.SunColor)
	buf = appendVector3(buf, i.Camera.SunDirection)
	buf = appendF32(buf, i.Camera.SunSize)
	buf = binary.LittleEndian.AppendUint32(buf, i.Camera.RecursivePortalCount)
	buf = binary.LittleEndian.AppendUint32(buf, i.Camera.MaxBounces)
	buf = appendF32(buf, i.Aspect)
	buf = binary.LittleEndian.AppendUint32(buf, i.AccumulatedFrames)
	buf = binary.LittleEndian.AppendUint32(buf, i.RandomSeed)
	buf = binary.LittleEndian.AppendUint32(buf, i.RenderType)
	buf = binary.LittleEndian.AppendUint32(buf, i.Antialiasing)
	return binary.LittleEndian.AppendUint32(buf, i.PlaneCount)
}

// PlaneBuffer is the grow-only storage buffer holding packed plane records.
// Capacity only grows, so mid-frame reallocation never happens once the
// scene stops adding planes.
type PlaneBuffer struct {
	data []byte
}

// Set repacks the buffer from the given records, reusing capacity.
func (b *PlaneBuffer) Set(planes []GpuPlane) {
	b.data = b.data[:0]
	for _, p := range planes {
		b.data = p.Pack(b.data)
	}
}

// Bytes returns the packed contents.
func (b *PlaneBuffer) Bytes() []byte { return b.data }

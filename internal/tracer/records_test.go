package tracer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalview/internal/pga"
)

func samplePlaneRecord() GpuPlane {
	return GpuPlane{
		Transform:               pga.Translation(pga.Vector3{X: 1, Y: 2, Z: 3}),
		Width:                   4,
		Height:                  2,
		CheckerCountX:           3,
		CheckerCountZ:           5,
		Color:                   pga.Color{R: 1, G: 0.5, B: 0.25},
		CheckerDarkness:         0.5,
		EmissiveColor:           pga.Color{G: 2},
		EmissiveCheckerDarkness: 0.75,
		FrontPortal:             GpuPortalConnection{OtherIndex: 7, Flip: 1},
		BackPortal:              GpuPortalConnection{OtherIndex: NoConnection},
	}
}

func f32At(t *testing.T, buf []byte, word int) float32 {
	t.Helper()
	require.GreaterOrEqual(t, len(buf), (word+1)*4)
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[word*4:]))
}

func u32At(t *testing.T, buf []byte, word int) uint32 {
	t.Helper()
	require.GreaterOrEqual(t, len(buf), (word+1)*4)
	return binary.LittleEndian.Uint32(buf[word*4:])
}

func TestPlanePackSize(t *testing.T) {
	buf := samplePlaneRecord().Pack(nil)
	assert.Len(t, buf, PackedPlaneSize)
}

func TestPlanePackLayout(t *testing.T) {
	p := samplePlaneRecord()
	buf := p.Pack(nil)

	// Transform words: s, e12, e13, e23, e01, e02, e03, e0123.
	assert.Equal(t, float32(1), f32At(t, buf, 0))
	assert.Equal(t, float32(0.5), f32At(t, buf, 4))
	assert.Equal(t, float32(1), f32At(t, buf, 5))
	assert.Equal(t, float32(1.5), f32At(t, buf, 6))

	assert.Equal(t, float32(4), f32At(t, buf, 8))  // width
	assert.Equal(t, float32(2), f32At(t, buf, 9))  // height
	assert.Equal(t, uint32(3), u32At(t, buf, 10))  // checker count x
	assert.Equal(t, uint32(5), u32At(t, buf, 11))  // checker count z
	assert.Equal(t, float32(1), f32At(t, buf, 12)) // color r
	assert.Equal(t, float32(0.5), f32At(t, buf, 15))
	assert.Equal(t, float32(2), f32At(t, buf, 17)) // emissive g
	assert.Equal(t, float32(0.75), f32At(t, buf, 19))
	assert.Equal(t, uint32(7), u32At(t, buf, 20))
	assert.Equal(t, uint32(1), u32At(t, buf, 21))
	assert.Equal(t, NoConnection, u32At(t, buf, 22))
	assert.Equal(t, uint32(0), u32At(t, buf, 23))
}

func TestSceneInfoPackTrailer(t *testing.T) {
	info := GpuSceneInfo{
		Aspect:            1.5,
		AccumulatedFrames: 9,
		RandomSeed:        123,
		RenderType:        RenderTypeLit,
		Antialiasing:      1,
		PlaneCount:        4,
	}
	buf := info.Pack(nil)
	words := len(buf) / 4

	assert.Equal(t, uint32(4), u32At(t, buf, words-1))
	assert.Equal(t, uint32(1), u32At(t, buf, words-2))
	assert.Equal(t, RenderTypeLit, u32At(t, buf, words-3))
	assert.Equal(t, uint32(123), u32At(t, buf, words-4))
	assert.Equal(t, uint32(9), u32At(t, buf, words-5))
	assert.Equal(t, float32(1.5), f32At(t, buf, words-6))
}

func TestPlaneBufferReuse(t *testing.T) {
	var b PlaneBuffer
	b.Set([]GpuPlane{samplePlaneRecord(), samplePlaneRecord()})
	assert.Len(t, b.Bytes(), 2*PackedPlaneSize)

	b.Set([]GpuPlane{samplePlaneRecord()})
	assert.Len(t, b.Bytes(), PackedPlaneSize)
}

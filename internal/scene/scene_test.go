package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalview/internal/pga"
)

func threePlaneScene() *Scene {
	s := &Scene{Camera: DefaultCamera()}
	for _, name := range []string{"A", "B", "C"} {
		p := DefaultPlane()
		p.Name = name
		s.AddPlane(p)
	}
	return s
}

func TestRemovePlaneSeversAndShifts(t *testing.T) {
	s := threePlaneScene()
	s.Planes[2].FrontPortal.Connect(1) // C -> B, severed by the removal
	s.Planes[0].FrontPortal.Connect(2) // A -> C, shifts down to 1
	s.Planes[0].BackPortal.Connect(0)  // self link below the removal, untouched

	require.NoError(t, s.RemovePlane(1))
	require.Len(t, s.Planes, 2)
	assert.Equal(t, "A", s.Planes[0].Name)
	assert.Equal(t, "C", s.Planes[1].Name)

	assert.Nil(t, s.Planes[1].FrontPortal.OtherIndex)
	require.NotNil(t, s.Planes[0].FrontPortal.OtherIndex)
	assert.Equal(t, 1, *s.Planes[0].FrontPortal.OtherIndex)
	require.NotNil(t, s.Planes[0].BackPortal.OtherIndex)
	assert.Equal(t, 0, *s.Planes[0].BackPortal.OtherIndex)
}

func TestRemovePlaneSeversBackSide(t *testing.T) {
	s := threePlaneScene()
	s.Planes[0].BackPortal.Connect(1)

	require.NoError(t, s.RemovePlane(1))
	assert.Nil(t, s.Planes[0].BackPortal.OtherIndex)
	assert.Nil(t, s.Planes[0].FrontPortal.OtherIndex)
}

func TestRemovePlaneOutOfRange(t *testing.T) {
	s := threePlaneScene()
	assert.Error(t, s.RemovePlane(-1))
	assert.Error(t, s.RemovePlane(3))
	assert.Len(t, s.Planes, 3)
}

func TestDuplicatePlane(t *testing.T) {
	s := threePlaneScene()
	s.Planes[1].Color = pga.Color{G: 1}
	s.Planes[1].FrontPortal.Connect(0)

	index, err := s.DuplicatePlane(1)
	require.NoError(t, err)
	assert.Equal(t, 3, index)
	require.Len(t, s.Planes, 4)

	dup := &s.Planes[3]
	assert.Equal(t, pga.Color{G: 1}, dup.Color)
	require.NotNil(t, dup.FrontPortal.OtherIndex)
	assert.Equal(t, 0, *dup.FrontPortal.OtherIndex)

	// The copy is deep: rewiring the duplicate leaves the source alone.
	dup.FrontPortal.Connect(2)
	assert.Equal(t, 0, *s.Planes[1].FrontPortal.OtherIndex)
}

func TestDuplicatePlaneOutOfRange(t *testing.T) {
	s := threePlaneScene()
	_, err := s.DuplicatePlane(5)
	assert.Error(t, err)
}

func TestPlaneIndex(t *testing.T) {
	s := threePlaneScene()
	i, ok := s.PlaneIndex("B")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = s.PlaneIndex("missing")
	assert.False(t, ok)
}

func TestClosestHitPicksNearest(t *testing.T) {
	s := &Scene{}
	far := DefaultPlane()
	far.Position = pga.Vector3{Y: -3}
	far.Width, far.Height = 10, 10
	near := DefaultPlane()
	near.Position = pga.Vector3{Y: -1}
	near.Width, near.Height = 10, 10
	s.Planes = []Plane{far, near}

	index, hit, ok := s.ClosestHit(Ray{Origin: pga.Zero, Direction: pga.Vector3{Y: -1}})
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.InDelta(t, 1, hit.Distance, eps)
}

func TestClosestHitMiss(t *testing.T) {
	s := threePlaneScene()
	_, _, ok := s.ClosestHit(Ray{Origin: pga.Vector3{Y: 1}, Direction: pga.Up})
	assert.False(t, ok)
}

func TestClampSunSize(t *testing.T) {
	s := Default()
	s.SunSize = -1
	s.ClampSunSize()
	assert.Zero(t, s.SunSize)

	s.SunSize = 10
	s.ClampSunSize()
	assert.InDelta(t, 3.14159, s.SunSize, 1e-4)
}

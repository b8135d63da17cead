package scene

import (
	"encoding/json"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/jinzhu/copier"

	"portalview/internal/pga"
)

// Scene is the whole world: an ordered list of planes (the slice index is
// the portal-connection key), the camera, and sky/sun lighting.
type Scene struct {
	Camera           Camera      `json:"camera"`
	UpSkyColor       pga.Color   `json:"up_sky_color"`
	UpSkyIntensity   float32     `json:"up_sky_intensity"`
	DownSkyColor     pga.Color   `json:"down_sky_color"`
	DownSkyIntensity float32     `json:"down_sky_intensity"`
	SunColor         pga.Color   `json:"sun_color"`
	SunIntensity     float32     `json:"sun_intensity"`
	SunDirection     pga.Vector3 `json:"sun_direction"`
	SunSize          float32     `json:"sun_size"`
	Planes           []Plane     `json:"planes"`
}

// Default returns the startup scene: blue-grey sky, a bright white sun, and
// a red 10x10 checkered ground plane.
func Default() Scene {
	ground := DefaultPlane()
	ground.Name = "Ground"
	ground.Width = 10
	ground.Height = 10
	ground.CheckerCountX = 10
	ground.CheckerCountZ = 10
	ground.Color = pga.Color{R: 1}

	return Scene{
		Camera:           DefaultCamera(),
		UpSkyColor:       pga.Color{R: 0.4, G: 0.5, B: 0.8},
		UpSkyIntensity:   1,
		DownSkyColor:     pga.Color{R: 0.4, G: 0.4, B: 0.4},
		DownSkyIntensity: 1,
		SunColor:         pga.White,
		SunIntensity:     100,
		SunDirection:     pga.Vector3{X: 0.4, Y: 1, Z: 0.2},
		SunSize:          6 * math32.Pi / 180,
		Planes:           []Plane{ground},
	}
}

// UnmarshalJSON fills missing fields from Default, so partial scene files load.
func (s *Scene) UnmarshalJSON(data []byte) error {
	type plain Scene
	tmp := plain(Default())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = Scene(tmp)
	return nil
}

// ClampSunSize keeps the sun's angular radius in [0, pi].
func (s *Scene) ClampSunSize() {
	if s.SunSize < 0 {
		s.SunSize = 0
	}
	if s.SunSize > math32.Pi {
		s.SunSize = math32.Pi
	}
}

// AddPlane appends a plane and returns its index.
func (s *Scene) AddPlane(p Plane) int {
	s.Planes = append(s.Planes, p)
	return len(s.Planes) - 1
}

// DuplicatePlane appends a deep copy of the plane at index and returns the
// new index. Portal connections are copied as-is, including connections to
// the source plane itself.
func (s *Scene) DuplicatePlane(index int) (int, error) {
	if index < 0 || index >= len(s.Planes) {
		return 0, fmt.Errorf("no plane at index %d", index)
	}
	var dup Plane
	if err := copier.CopyWithOption(&dup, &s.Planes[index], copier.Option{DeepCopy: true}); err != nil {
		return 0, err
	}
	return s.AddPlane(dup), nil
}

// RemovePlane deletes the plane at index and repairs every remaining portal
// connection: connections to the removed plane are severed on the side that
// held them, and indices above the removed one shift down by one.
func (s *Scene) RemovePlane(index int) error {
	if index < 0 || index >= len(s.Planes) {
		return fmt.Errorf("no plane at index %d", index)
	}
	for i := range s.Planes {
		fixConnection(&s.Planes[i].FrontPortal, index)
		fixConnection(&s.Planes[i].BackPortal, index)
	}
	s.Planes = append(s.Planes[:index], s.Planes[index+1:]...)
	return nil
}

func fixConnection(c *PortalConnection, removed int) {
	if c.OtherIndex == nil {
		return
	}
	switch {
	case *c.OtherIndex == removed:
		c.OtherIndex = nil
	case *c.OtherIndex > removed:
		*c.OtherIndex--
	}
}

// PlaneIndex returns the index of the first plane with the given name.
func (s *Scene) PlaneIndex(name string) (int, bool) {
	for i := range s.Planes {
		if s.Planes[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// ClosestHit intersects the ray against every plane and returns the index
// and hit with the smallest distance.
func (s *Scene) ClosestHit(ray Ray) (int, Hit, bool) {
	closestIndex := -1
	var closest Hit
	for i := range s.Planes {
		hit, ok := s.Planes[i].Intersect(ray)
		if !ok {
			continue
		}
		if closestIndex < 0 || hit.Distance < closest.Distance {
			closestIndex = i
			closest = hit
		}
	}
	if closestIndex < 0 {
		return 0, Hit{}, false
	}
	return closestIndex, closest, true
}

package scene

import (
	"encoding/json"

	"github.com/chewxy/math32"

	"portalview/internal/pga"
)

// PortalConnection links one side of a plane to another plane by index.
// A nil OtherIndex means no connection. Flip is persisted for compatibility
// but not consumed anywhere yet.
type PortalConnection struct {
	OtherIndex *int `json:"other_index"`
	Flip       bool `json:"flip"`
}

// Connect points this side at the plane at index.
func (c *PortalConnection) Connect(index int) {
	c.OtherIndex = &index
}

// Plane is a finite rectangle in the local XZ plane, placed by a position
// and three axis-plane rotation angles. Width runs along local X, height
// along local Z. Each side can carry a portal connection.
type Plane struct {
	Name                    string           `json:"name"`
	Position                pga.Vector3      `json:"position"`
	XYRotation              float32          `json:"xy_rotation"`
	YZRotation              float32          `json:"yz_rotation"`
	XZRotation              float32          `json:"xz_rotation"`
	Color                   pga.Color        `json:"color"`
	Width                   float32          `json:"width"`
	Height                  float32          `json:"height"`
	CheckerCountX           uint32           `json:"checker_count_x"`
	CheckerCountZ           uint32           `json:"checker_count_z"`
	CheckerDarkness         float32          `json:"checker_darkness"`
	EmissiveColor           pga.Color        `json:"emissive_color"`
	EmissionIntensity       float32          `json:"emission_intensity"`
	EmissiveCheckerDarkness float32          `json:"emissive_checker_darkness"`
	FrontPortal             PortalConnection `json:"front_portal"`
	BackPortal              PortalConnection `json:"back_portal"`
}

// DefaultPlane returns a white unit plane at the origin with a single
// checker cell and no portals.
func DefaultPlane() Plane {
	return Plane{
		Name:                    "Default Plane",
		Color:                   pga.White,
		Width:                   1,
		Height:                  1,
		CheckerCountX:           1,
		CheckerCountZ:           1,
		CheckerDarkness:         0.5,
		EmissiveCheckerDarkness: 0.5,
	}
}

// UnmarshalJSON fills missing fields from DefaultPlane, so older or partial
// scene files keep loading.
func (p *Plane) UnmarshalJSON(data []byte) error {
	type plain Plane
	tmp := plain(DefaultPlane())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = Plane(tmp)
	return nil
}

// Transform returns the plane's pose: translate to Position, then rotate by
// the XY, YZ, XZ half-plane rotations applied in that order.
func (p *Plane) Transform() pga.Transform {
	rotor := pga.RotationXY(p.XYRotation).
		Then(pga.RotationYZ(p.YZRotation)).
		Then(pga.RotationXZ(p.XZRotation))
	return pga.Translation(p.Position).Then(pga.FromRotor(rotor))
}

// Intersect tests a world-space ray against the plane in the plane's local
// frame. Rays pointing away from the plane or grazing it (|local dy| below
// 1e-3) miss, as do impacts outside the rectangle.
func (p *Plane) Intersect(ray Ray) (Hit, bool) {
	transform := p.Transform()
	inverse := transform.Reverse()
	origin := inverse.TransformPoint(ray.Origin)
	direction := inverse.RotorPart().Rotate(ray.Direction)

	if math32.Signbit(origin.Y) == math32.Signbit(direction.Y) || math32.Abs(direction.Y) < 1e-3 {
		return Hit{}, false
	}

	distance := math32.Abs(origin.Y / direction.Y)

	local := origin.Add(direction.Mul(distance))
	if local.X < p.Width*-0.5 || local.X > p.Width*0.5 ||
		local.Z < p.Height*-0.5 || local.Z > p.Height*0.5 {
		return Hit{}, false
	}

	// The local normal points back along the incoming ray; pushing it through
	// the full transform and renormalising matches what the device kernel does.
	normal := transform.TransformPoint(pga.Vector3{Y: -direction.Y}).Normalised()

	return Hit{
		Distance: distance,
		Position: ray.Origin.Add(ray.Direction.Mul(distance)),
		Normal:   normal,
		Front:    direction.Y < 0,
	}, true
}

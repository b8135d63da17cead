package scene

import (
	"portalview/internal/tracer"
)

func deviceConnection(c PortalConnection, planeCount int) tracer.GpuPortalConnection {
	out := tracer.GpuPortalConnection{OtherIndex: tracer.NoConnection}
	if c.OtherIndex != nil && *c.OtherIndex >= 0 && *c.OtherIndex < planeCount {
		out.OtherIndex = uint32(*c.OtherIndex)
	}
	if c.Flip {
		out.Flip = 1
	}
	return out
}

// Device packs the plane into its device record. Emissive color is
// premultiplied by the emission intensity; dangling portal indices pack as
// "no connection".
func (p *Plane) Device(planeCount int) tracer.GpuPlane {
	return tracer.GpuPlane{
		Transform:               p.Transform(),
		Width:                   p.Width,
		Height:                  p.Height,
		CheckerCountX:           max(p.CheckerCountX, 1),
		CheckerCountZ:           max(p.CheckerCountZ, 1),
		Color:                   p.Color,
		CheckerDarkness:         p.CheckerDarkness,
		EmissiveColor:           p.EmissiveColor.Mul(p.EmissionIntensity),
		EmissiveCheckerDarkness: p.EmissiveCheckerDarkness,
		FrontPortal:             deviceConnection(p.FrontPortal, planeCount),
		BackPortal:              deviceConnection(p.BackPortal, planeCount),
	}
}

// DeviceCamera assembles the per-frame camera/lighting block: intensities
// premultiplied into the colors, sun direction normalised, render budgets
// attached.
func (s *Scene) DeviceCamera(portalRecursion, maxBounces uint32) tracer.GpuCamera {
	return tracer.GpuCamera{
		Transform:            s.Camera.Transform(),
		UpSkyColor:           s.UpSkyColor.Mul(s.UpSkyIntensity),
		DownSkyColor:         s.DownSkyColor.Mul(s.DownSkyIntensity),
		SunColor:             s.SunColor.Mul(s.SunIntensity),
		SunDirection:         s.SunDirection.Normalised(),
		SunSize:              s.SunSize,
		RecursivePortalCount: portalRecursion,
		MaxBounces:           maxBounces,
	}
}

// DevicePlanes packs every plane in index order (the index is the portal key).
func (s *Scene) DevicePlanes() []tracer.GpuPlane {
	out := make([]tracer.GpuPlane, len(s.Planes))
	for i := range s.Planes {
		out[i] = s.Planes[i].Device(len(s.Planes))
	}
	return out
}

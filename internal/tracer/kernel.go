package tracer

import (
	"github.com/chewxy/math32"

	"portalview/internal/pga"
)

// ray is the kernel's working ray. It is transformed in place as it hops
// through portals.
type ray struct {
	origin    pga.Vector3
	direction pga.Vector3
}

// planeHit is the kernel-side intersection result. Local coordinates are
// kept because the checker pattern is evaluated in the plane's frame.
type planeHit struct {
	distance float32
	position pga.Vector3
	normal   pga.Vector3
	localX   float32
	localZ   float32
	front    bool
}

// intersectRecord is the device counterpart of the host's Plane.Intersect;
// both must embed the identical closed forms or host teleports and rendered
// portals disagree about where a crossing happens.
func intersectRecord(p *GpuPlane, r ray) (planeHit, bool) {
	inverse := p.Transform.Reverse()
	origin := inverse.TransformPoint(r.origin)
	direction := inverse.RotorPart().Rotate(r.direction)

	if math32.Signbit(origin.Y) == math32.Signbit(direction.Y) || math32.Abs(direction.Y) < 1e-3 {
		return planeHit{}, false
	}

	distance := math32.Abs(origin.Y / direction.Y)
	local := origin.Add(direction.Mul(distance))
	if local.X < p.Width*-0.5 || local.X > p.Width*0.5 ||
		local.Z < p.Height*-0.5 || local.Z > p.Height*0.5 {
		return planeHit{}, false
	}

	normal := p.Transform.TransformPoint(pga.Vector3{Y: -direction.Y}).Normalised()

	return planeHit{
		distance: distance,
		position: r.origin.Add(r.direction.Mul(distance)),
		normal:   normal,
		localX:   local.X,
		localZ:   local.Z,
		front:    direction.Y < 0,
	}, true
}

func nearestHit(planes []GpuPlane, r ray) (int, planeHit, bool) {
	closestIndex := -1
	var closest planeHit
	for i := range planes {
		hit, ok := intersectRecord(&planes[i], r)
		if !ok {
			continue
		}
		if closestIndex < 0 || hit.distance < closest.distance {
			closestIndex = i
			closest = hit
		}
	}
	if closestIndex < 0 {
		return 0, planeHit{}, false
	}
	return closestIndex, closest, true
}

// checkerCell reports whether the hit lands on a darker checker cell.
func checkerCell(p *GpuPlane, hit planeHit) bool {
	cx := uint32((hit.localX/p.Width + 0.5) * float32(p.CheckerCountX))
	if cx >= p.CheckerCountX {
		cx = p.CheckerCountX - 1
	}
	cz := uint32((hit.localZ/p.Height + 0.5) * float32(p.CheckerCountZ))
	if cz >= p.CheckerCountZ {
		cz = p.CheckerCountZ - 1
	}
	return (cx+cz)%2 == 1
}

func checkerMix(color pga.Color, darkness float32, dark bool) pga.Color {
	if dark {
		return color.Mul(1 - darkness)
	}
	return color
}

// sky returns the environment radiance for a direction: a hemispherical
// blend of the down and up sky colors, plus the sun disk when the direction
// is within the sun's angular radius (suppressed for indirect rays, which
// sample the sun with shadow rays instead).
func sky(cam *GpuCamera, direction pga.Vector3, includeSun bool) pga.Color {
	t := direction.Y*0.5 + 0.5
	c := cam.DownSkyColor.Lerp(cam.UpSkyColor, t)
	if includeSun && cam.SunSize > 0 {
		cos := direction.Dot(cam.SunDirection)
		if cos > 1 {
			cos = 1
		}
		if math32.Acos(cos) < cam.SunSize {
			c = c.Add(cam.SunColor)
		}
	}
	return c
}

func orthonormalBasis(n pga.Vector3) (pga.Vector3, pga.Vector3) {
	a := pga.Up
	if math32.Abs(n.Y) > 0.9 {
		a = pga.Forward
	}
	tangent := cross(a, n).Normalised()
	return tangent, cross(n, tangent)
}

func cross(a, b pga.Vector3) pga.Vector3 {
	return pga.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// surfaceBias keeps bounce and shadow rays from re-hitting their own surface.
const surfaceBias = 1e-3

// sunVisible runs the shadow test: true when nothing stands between the
// point and the sun direction. Shadow rays do not hop through portals.
func sunVisible(planes []GpuPlane, from pga.Vector3, sunDirection pga.Vector3) bool {
	_, _, blocked := nearestHit(planes, ray{origin: from, direction: sunDirection})
	return !blocked
}

// trace marches one ray through the scene: portal hops first (bounded by the
// portal budget), then shading. Unlit returns the checker-mixed base color
// of the first solid hit; lit path-traces with emission, a sun shadow ray
// and cosine-weighted diffuse bounces bounded by the bounce budget.
func trace(rng *pcg, info *GpuSceneInfo, planes []GpuPlane, r ray) pga.Color {
	cam := &info.Camera
	portalBudget := cam.RecursivePortalCount
	bounceBudget := cam.MaxBounces

	radiance := pga.Black
	throughput := pga.White
	includeSun := true

	for {
		index, hit, ok := nearestHit(planes, r)
		if !ok {
			return radiance.Add(throughput.MulColor(sky(cam, r.direction, includeSun)))
		}

		plane := &planes[index]
		connection := plane.BackPortal
		if hit.front {
			connection = plane.FrontPortal
		}
		if connection.OtherIndex != NoConnection &&
			connection.OtherIndex < uint32(len(planes)) && portalBudget > 0 {
			hop := planes[connection.OtherIndex].Transform.Then(plane.Transform.Reverse())
			r.origin = hop.TransformPoint(hit.position)
			r.direction = hop.RotorPart().Rotate(r.direction)
			// Step off the target surface so the continued ray does not
			// re-hit it at distance zero.
			r.origin = r.origin.Add(r.direction.Mul(surfaceBias))
			portalBudget--
			continue
		}

		dark := checkerCell(plane, hit)
		albedo := checkerMix(plane.Color, plane.CheckerDarkness, dark)

		if info.RenderType == RenderTypeUnlit {
			return albedo
		}

		radiance = radiance.Add(
			throughput.MulColor(checkerMix(plane.EmissiveColor, plane.EmissiveCheckerDarkness, dark)))

		throughput = throughput.MulColor(albedo)
		above := hit.position.Add(hit.normal.Mul(surfaceBias))

		if cam.SunSize > 0 {
			cosSun := hit.normal.Dot(cam.SunDirection)
			if cosSun > 0 && sunVisible(planes, above, cam.SunDirection) {
				// Lambert next-event estimate over the sun's solid angle.
				solidAngle := 2 * math32.Pi * (1 - math32.Cos(cam.SunSize))
				radiance = radiance.Add(
					throughput.MulColor(cam.SunColor.Mul(cosSun * solidAngle / math32.Pi)))
			}
		}

		if bounceBudget == 0 {
			return radiance
		}
		bounceBudget--
		includeSun = false

		r.origin = above
		r.direction = rng.cosineHemisphere(hit.normal)
	}
}

// renderPixel builds the primary ray for pixel (x, y) of a w x h target and
// traces it. The camera is a 90 degree vertical pinhole; with antialiasing
// the sample point jitters uniformly inside the pixel, otherwise it sits at
// the pixel center.
func renderPixel(info *GpuSceneInfo, planes []GpuPlane, x, y, w, h int) pga.Color {
	rng := newPixelRNG(uint32(x), uint32(y), info.AccumulatedFrames, info.RandomSeed)

	jx, jy := float32(0.5), float32(0.5)
	if info.Antialiasing != 0 {
		jx, jy = rng.jitter()
	}

	u := (2*(float32(x)+jx)/float32(w) - 1) * info.Aspect
	v := 1 - 2*(float32(y)+jy)/float32(h)

	rotor := info.Camera.Transform.RotorPart()
	r := ray{
		origin: info.Camera.Transform.TransformPoint(pga.Zero),
		direction: rotor.Rotate(
			pga.Forward.Add(pga.Up.Mul(v)).Add(pga.Right.Mul(u)).Normalised()),
	}

	return trace(&rng, info, planes, r)
}

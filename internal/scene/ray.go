// Package scene holds the host-side world: planes with optional portal
// connections, the first-person camera, sky and sun lighting, and the
// per-frame portal traversal that teleports the camera when its movement ray
// crosses a connected plane. The scene has a single owner (the frame loop)
// and is only mutated between frames.
package scene

import "portalview/internal/pga"

// Ray is a world-space half-line.
type Ray struct {
	Origin    pga.Vector3
	Direction pga.Vector3
}

// Hit describes a ray-plane intersection.
type Hit struct {
	Distance float32
	Position pga.Vector3
	Normal   pga.Vector3
	// Front is true when the ray struck the side facing local +Y.
	Front bool
}

package scene

import "portalview/internal/pga"

// HopTransform returns the rigid motion that carries a point on the source
// plane's portal side to the matching point on the target plane: undo the
// source pose, then apply the target pose.
func HopTransform(target, source *Plane) pga.Transform {
	return target.Transform().Then(source.Transform().Reverse())
}

// TraversePortals checks whether the camera's movement this frame crossed a
// plane with a connected portal on the struck side, and if so teleports the
// camera through the hop transform. oldPosition is where the camera was
// before Camera.Update ran. Returns true when a hop happened.
//
// At most one hop per frame: the path after the teleport is not re-scanned,
// so stepping through two portals within a single frame's movement lands
// after the first.
func (s *Scene) TraversePortals(oldPosition pga.Vector3) bool {
	newPosition := s.Camera.Position
	travel := newPosition.Sub(oldPosition)

	index, hit, ok := s.ClosestHit(Ray{
		Origin:    oldPosition,
		Direction: travel.Normalised(),
	})
	if !ok || hit.Distance >= travel.Magnitude() {
		return false
	}

	plane := &s.Planes[index]
	connection := plane.BackPortal
	if hit.Front {
		connection = plane.FrontPortal
	}
	if connection.OtherIndex == nil || *connection.OtherIndex < 0 || *connection.OtherIndex >= len(s.Planes) {
		// Dangling index: treat as no connection.
		return false
	}

	hop := HopTransform(&s.Planes[*connection.OtherIndex], plane)
	s.Camera.Position = hop.TransformPoint(s.Camera.Position)
	s.Camera.Rotation = hop.RotorPart().Then(s.Camera.Rotation)
	return true
}

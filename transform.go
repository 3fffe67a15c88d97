package canvas

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// viewMatrix maps logical scene coordinates to presentation coordinates for
// a viewport of size vp with the scene container panned by pan.
//
//	Translate(vp.Width/2 + pan.X, vp.Height/2 + pan.Y) * Scale(1, -1)
func viewMatrix(vp Size, pan Vec2) [6]float64 {
	return [6]float64{1, 0, 0, -1, vp.Width/2 + pan.X, vp.Height/2 + pan.Y}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// PanOffset returns the presentation-space shift of the scene container for a
// camera at cam. The scene pans opposite to the camera: moving the camera
// right shifts everything left, moving it up shifts everything down.
func PanOffset(cam Vec2) Vec2 {
	return Vec2{-cam.X, cam.Y}
}

// LogicalToView maps a logical point (origin at viewport center, +Y up) to
// presentation coordinates (origin top-left, +Y down) inside a viewport of
// size vp. The camera pan is not applied; nodes are placed relative to the
// unshifted origin.
func LogicalToView(p Vec2, vp Size) Vec2 {
	return transformPoint(viewMatrix(vp, Vec2{}), p)
}

// Project maps a logical point to where it appears on screen once the scene
// container has been panned for a camera at cam.
func Project(p Vec2, vp Size, cam Vec2) Vec2 {
	return transformPoint(viewMatrix(vp, PanOffset(cam)), p)
}

// ViewToLogical maps a viewport-relative presentation point back into logical
// scene coordinates, accounting for the camera at cam.
func ViewToLogical(v Vec2, vp Size, cam Vec2) Vec2 {
	return transformPoint(invertAffine(viewMatrix(vp, PanOffset(cam))), v)
}

// Direction returns the unit vector for an angle in degrees using the scene's
// angular convention: 0 is up, 90 is right, positive is clockwise.
func Direction(angleDegrees float64) Vec2 {
	sin, cos := math.Sincos(angleDegrees * math.Pi / 180)
	return Vec2{sin, cos}
}

/*
NAME
  points.go

DESCRIPTION
  points.go defines the tracked feature point type and its sanity check.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "math"

// Point is a tracked feature location in image coordinates.
type Point struct {
	X, Y float64
}

// isValidPoint reports whether p is finite and strictly inside a w x h
// frame.
func isValidPoint(p Point, w, h int) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return false
	}
	return p.X >= 0 && p.X < float64(w) && p.Y >= 0 && p.Y < float64(h)
}

// boundingBoxDiagonal returns the diagonal length of the axis-aligned
// bounding box enclosing pts, or 0 for fewer than two points.
func boundingBoxDiagonal(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return math.Hypot(maxX-minX, maxY-minY)
}

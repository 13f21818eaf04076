/*
NAME
  edge.go

DESCRIPTION
  edge.go implements the Edge Handler: Padding, Crop and Scale modes for
  compensating the black border a translation/scale warp can expose. All
  three modes return a frame of the same dimensions as their input, and
  the Crop/Scale ROI math is defensively clamped to [0, w-1] x [0, h-1]
  since rounding in the ROI computation can otherwise walk it just past
  the frame edge.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "math"

// roi is an axis-aligned region of interest in pixel coordinates.
type roi struct {
	X, Y, W, H int
}

// clampROI defensively clamps r so that it is fully contained in a
// w x h image, per the I9 invariant: 0 <= x, 0 <= y, x+w <= frame_w,
// y+h <= frame_h.
func clampROI(r roi, w, h int) roi {
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	if r.W > w {
		r.W = w
	}
	if r.H > h {
		r.H = h
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.W > w {
		r.X = w - r.W
	}
	if r.Y+r.H > h {
		r.Y = h - r.H
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// inscribedROI computes the largest axis-aligned rectangle, centered in a
// w x h image, that remains fully contained in the frame after the
// residual's translation and scale have been applied. Rotation is
// ignored for this estimate, which is conservative for the small
// residual rotations this system expects after smoothing.
func inscribedROI(residual Transform, w, h int) roi {
	p := decompose(residual)
	marginX := math.Abs(p.tx) + float64(w)*math.Max(0, 1-p.scale)/2
	marginY := math.Abs(p.ty) + float64(h)*math.Max(0, 1-p.scale)/2

	x0 := int(math.Ceil(marginX))
	y0 := int(math.Ceil(marginY))
	rw := w - 2*x0
	rh := h - 2*y0

	return clampROI(roi{X: x0, Y: y0, W: rw, H: rh}, w, h)
}

// edgeResult is the outcome of running the Edge Handler: the frame to
// emit, and the effective transform (residual composed with whatever
// additional crop/scale compensation was applied) that the Frame Adapter
// must apply to color planes so luma and chroma stay consistent.
type edgeResult struct {
	Gray      *grayBuffer
	Effective Transform
}

// applyEdgeHandler runs mode over a frame already warped by residual.
func applyEdgeHandler(gray *grayBuffer, residual Transform, mode EdgeMode, backend featureBackend) edgeResult {
	w, h := gray.Width, gray.Height
	switch mode {
	case EdgeCrop:
		r := inscribedROI(residual, w, h)
		cropped := cropBuffer(gray, r)
		resized := backend.Resize(cropped, w, h)
		scaleX := float64(w) / float64(r.W)
		scaleY := float64(h) / float64(r.H)
		edgeT := Transform{
			A00: scaleX, A01: 0, TX: -float64(r.X) * scaleX,
			A10: 0, A11: scaleY, TY: -float64(r.Y) * scaleY,
		}
		return edgeResult{Gray: resized, Effective: Compose(edgeT, residual)}

	case EdgeScale:
		p := decompose(residual)
		compScale := 1.0
		if p.scale > 1e-6 {
			compScale = 1.0 / p.scale
		}
		compScale = clampAbs(compScale-1, 1) + 1 // keep within [0, 2] of unity, defensively
		cx, cy := float64(w)/2, float64(h)/2
		edgeT := Transform{
			A00: compScale, A01: 0, TX: cx * (1 - compScale),
			A10: 0, A11: compScale, TY: cy * (1 - compScale),
		}
		out := backend.WarpAffine(gray, edgeT)
		return edgeResult{Gray: out, Effective: Compose(edgeT, residual)}

	default: // EdgePadding
		return edgeResult{Gray: gray, Effective: residual}
	}
}

// cropBuffer extracts the r sub-rectangle of gray into a new buffer.
func cropBuffer(gray *grayBuffer, r roi) *grayBuffer {
	out := newGrayBuffer(r.W, r.H)
	for y := 0; y < r.H; y++ {
		srcRow := (r.Y + y) * gray.Width
		dstRow := y * r.W
		copy(out.Pix[dstRow:dstRow+r.W], gray.Pix[srcRow+r.X:srcRow+r.X+r.W])
	}
	return out
}

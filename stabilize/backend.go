/*
NAME
  backend.go

DESCRIPTION
  backend.go defines the pixel-level primitives the Core needs (feature
  detection, optical-flow tracking, affine warp and resize) as a small
  interface, and the grayscale buffer type they operate on. Two
  implementations exist: backend_cv.go (build tag withcv) wraps gocv for
  production use, and backend_pure.go (the default build) is a pure-Go
  reference implementation requiring no cgo/OpenCV toolchain, extending
  the CI-safe-stub convention filter/filters_circleci.go uses for the
  withcv-gated motion filters -- except, because stabilization is this
  module's core behaviour rather than an optional filter, the default
  build here stays functionally equivalent instead of degrading to a
  no-op. See DESIGN.md.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

// grayBuffer is an 8-bit single-channel image buffer with a contiguous
// stride, the working representation the Core and Edge Handler operate
// on internally.
type grayBuffer struct {
	Width, Height int
	Pix           []byte // len == Height*Width, row-major, contiguous.
}

func newGrayBuffer(w, h int) *grayBuffer {
	return &grayBuffer{Width: w, Height: h, Pix: make([]byte, w*h)}
}

func (g *grayBuffer) at(x, y int) byte {
	if x < 0 {
		x = 0
	} else if x >= g.Width {
		x = g.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.Height {
		y = g.Height - 1
	}
	return g.Pix[y*g.Width+x]
}

// bilinear samples g at fractional coordinates (x, y), returning the
// border value (0, constant-black) outside the buffer.
func (g *grayBuffer) bilinear(x, y float64) byte {
	if x < -1 || y < -1 || x > float64(g.Width) || y > float64(g.Height) {
		return 0
	}
	x0 := int(floorf(x))
	y0 := int(floorf(y))
	x1, y1 := x0+1, y0+1
	fx, fy := x-float64(x0), y-float64(y0)

	get := func(xi, yi int) float64 {
		if xi < 0 || yi < 0 || xi >= g.Width || yi >= g.Height {
			return 0
		}
		return float64(g.Pix[yi*g.Width+xi])
	}

	v00, v10 := get(x0, y0), get(x1, y0)
	v01, v11 := get(x0, y1), get(x1, y1)
	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	v := top + (bot-top)*fy
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v + 0.5)
}

func floorf(v float64) float64 {
	i := float64(int64(v))
	if v < 0 && i != v {
		i -= 1
	}
	return i
}

// featureBackend is the pixel-processing primitive set the Core's state
// machine drives. Implementations must be safe to call repeatedly from a
// single goroutine; no implementation is required to be concurrency-safe
// (the package-wide single-threaded contract, see doc.go).
type featureBackend interface {
	// DetectFeatures runs Shi-Tomasi (or Harris, if p.UseHarris) corner
	// detection over gray and returns up to p.FeatureCount points.
	DetectFeatures(gray *grayBuffer, p Params) []Point

	// TrackFeatures runs Lucas-Kanade optical flow from prevPts in
	// prevGray to currGray: pyramidal in backend_cv.go, single-scale with
	// no pyramid in backend_pure.go. Returns the tracked destination points,
	// a parallel success-status slice, and a parallel per-point error
	// slice.
	TrackFeatures(prevGray, currGray *grayBuffer, prevPts []Point) (currPts []Point, status []bool, trackErr []float64)

	// WarpAffine resamples gray through t with bilinear interpolation and
	// a constant-black border, producing a buffer of the same dimensions.
	WarpAffine(gray *grayBuffer, t Transform) *grayBuffer

	// Resize resamples gray to w x h with bilinear interpolation.
	Resize(gray *grayBuffer, w, h int) *grayBuffer
}

// defaultBackend is the featureBackend implementation selected at build
// time by the withcv build tag (backend_cv.go / backend_pure.go).
var defaultBackend = newBackend()

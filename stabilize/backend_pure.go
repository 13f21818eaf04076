//go:build !withcv
// +build !withcv

/*
NAME
  backend_pure.go

DESCRIPTION
  backend_pure.go is the default, cgo-free featureBackend implementation:
  Shi-Tomasi/Harris corner detection via a Sobel structure tensor,
  single-scale iterative Lucas-Kanade tracking (no image pyramid), and
  bilinear warp/resize. It stands in for backend_cv.go,
  following the CI-safe-stub convention of filter/filters_circleci.go, but
  stays functionally complete rather than a no-op (see backend.go).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import (
	"math"
	"sort"
)

type pureBackend struct{}

func newBackend() featureBackend { return pureBackend{} }

// corner is an intermediate detection candidate before non-max
// suppression and ranking.
type corner struct {
	x, y     int
	response float64
}

// DetectFeatures implements Shi-Tomasi (min eigenvalue) or Harris corner
// detection over a block_size structure tensor window, followed by
// greedy non-max suppression respecting min_distance.
func (pureBackend) DetectFeatures(gray *grayBuffer, p Params) []Point {
	w, h := gray.Width, gray.Height
	if w < 3 || h < 3 {
		return nil
	}
	gx, gy := sobelGradients(gray)

	half := p.BlockSize / 2
	var candidates []corner
	for y := half; y < h-half; y++ {
		for x := half; x < w-half; x++ {
			sxx, syy, sxy := structureTensor(gx, gy, w, h, x, y, half)
			var resp float64
			if p.UseHarris {
				det := sxx*syy - sxy*sxy
				trace := sxx + syy
				resp = det - p.HarrisK*trace*trace
			} else {
				// Shi-Tomasi: smaller eigenvalue of the 2x2 structure
				// tensor [[sxx sxy][sxy syy]].
				tr := sxx + syy
				disc := math.Sqrt(math.Max(0, (sxx-syy)*(sxx-syy)+4*sxy*sxy))
				resp = (tr - disc) / 2
			}
			if resp > 0 {
				candidates = append(candidates, corner{x: x, y: y, response: resp})
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].response > candidates[j].response })

	threshold := candidates[0].response * p.QualityLevel
	minDist2 := p.MinDistance * p.MinDistance

	var selected []Point
	for _, c := range candidates {
		if len(selected) >= p.FeatureCount {
			break
		}
		if c.response < threshold {
			break
		}
		ok := true
		for _, s := range selected {
			dx, dy := float64(c.x)-s.X, float64(c.y)-s.Y
			if dx*dx+dy*dy < minDist2 {
				ok = false
				break
			}
		}
		if ok {
			selected = append(selected, Point{X: float64(c.x), Y: float64(c.y)})
		}
	}
	return selected
}

func sobelGradients(gray *grayBuffer) (gx, gy []float64) {
	w, h := gray.Width, gray.Height
	gx = make([]float64, w*h)
	gy = make([]float64, w*h)
	get := func(x, y int) float64 { return float64(gray.at(x, y)) }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx[y*w+x] = (get(x+1, y-1) + 2*get(x+1, y) + get(x+1, y+1)) -
				(get(x-1, y-1) + 2*get(x-1, y) + get(x-1, y+1))
			gy[y*w+x] = (get(x-1, y+1) + 2*get(x, y+1) + get(x+1, y+1)) -
				(get(x-1, y-1) + 2*get(x, y-1) + get(x+1, y-1))
		}
	}
	return gx, gy
}

func structureTensor(gx, gy []float64, w, h, cx, cy, half int) (sxx, syy, sxy float64) {
	for y := cy - half; y <= cy+half; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := cx - half; x <= cx+half; x++ {
			if x < 0 || x >= w {
				continue
			}
			ix, iy := gx[y*w+x], gy[y*w+x]
			sxx += ix * ix
			syy += iy * iy
			sxy += ix * iy
		}
	}
	return sxx, syy, sxy
}

// lkWindow is the half-width of the Lucas-Kanade matching window.
const lkWindow = 7

// TrackFeatures performs single-scale (no image pyramid is needed at the
// resolutions this system targets) Lucas-Kanade optical flow: each point
// is refined by iteratively solving the local 2x2 normal equations over a
// (2*lkWindow+1)^2 patch.
func (pureBackend) TrackFeatures(prevGray, currGray *grayBuffer, prevPts []Point) ([]Point, []bool, []float64) {
	n := len(prevPts)
	curr := make([]Point, n)
	status := make([]bool, n)
	errs := make([]float64, n)

	gx, gy := sobelGradients(prevGray)
	w, h := prevGray.Width, prevGray.Height

	for i, p := range prevPts {
		x, y := p.X, p.Y
		dx, dy := 0.0, 0.0
		ok := true
		for iter := 0; iter < 8; iter++ {
			var sxx, sxy, syy, sxt, syt float64
			cx, cy := int(x), int(y)
			if cx-lkWindow < 0 || cy-lkWindow < 0 || cx+lkWindow >= w || cy+lkWindow >= h {
				ok = false
				break
			}
			for wy := -lkWindow; wy <= lkWindow; wy++ {
				for wx := -lkWindow; wx <= lkWindow; wx++ {
					px, py := cx+wx, cy+wy
					ix := gx[py*w+px]
					iy := gy[py*w+px]
					it := float64(currGray.bilinear(x+float64(wx)+dx, y+float64(wy)+dy)) - float64(prevGray.at(px, py))
					sxx += ix * ix
					syy += iy * iy
					sxy += ix * iy
					sxt += ix * it
					syt += iy * it
				}
			}
			det := sxx*syy - sxy*sxy
			if math.Abs(det) < 1e-6 {
				ok = false
				break
			}
			ddx := (syy*(-sxt) - sxy*(-syt)) / det
			ddy := (sxx*(-syt) - sxy*(-sxt)) / det
			dx += ddx
			dy += ddy
			if math.Hypot(ddx, ddy) < 1e-2 {
				break
			}
		}
		curr[i] = Point{X: x + dx, Y: y + dy}
		if !ok || !isValidPoint(curr[i], w, h) {
			status[i] = false
			errs[i] = math.MaxFloat64
			continue
		}
		// Residual patch photometric error is the tracking error measure.
		var sad float64
		cx, cy := int(curr[i].X), int(curr[i].Y)
		count := 0
		for wy := -lkWindow; wy <= lkWindow; wy++ {
			for wx := -lkWindow; wx <= lkWindow; wx++ {
				px, py := int(x)+wx, int(y)+wy
				if px < 0 || py < 0 || px >= w || py >= h {
					continue
				}
				sad += math.Abs(float64(currGray.bilinear(curr[i].X+float64(wx), curr[i].Y+float64(wy))) - float64(prevGray.at(px, py)))
				count++
			}
		}
		if count > 0 {
			errs[i] = sad / float64(count)
		}
		status[i] = true
	}
	return curr, status, errs
}

func (pureBackend) WarpAffine(gray *grayBuffer, t Transform) *grayBuffer {
	out := newGrayBuffer(gray.Width, gray.Height)
	inv, ok := Invert(t)
	if !ok {
		inv = Identity()
	}
	for y := 0; y < gray.Height; y++ {
		for x := 0; x < gray.Width; x++ {
			sx, sy := inv.Apply(float64(x), float64(y))
			out.Pix[y*gray.Width+x] = gray.bilinear(sx, sy)
		}
	}
	return out
}

func (pureBackend) Resize(gray *grayBuffer, w, h int) *grayBuffer {
	if w == gray.Width && h == gray.Height {
		out := newGrayBuffer(w, h)
		copy(out.Pix, gray.Pix)
		return out
	}
	out := newGrayBuffer(w, h)
	sx := float64(gray.Width) / float64(w)
	sy := float64(gray.Height) / float64(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*w+x] = gray.bilinear((float64(x)+0.5)*sx-0.5, (float64(y)+0.5)*sy-0.5)
		}
	}
	return out
}

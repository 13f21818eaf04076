/*
NAME
  estimate.go

DESCRIPTION
  estimate.go fits a partial 2D affine (rotation, uniform scale,
  translation) from point correspondences via RANSAC. This is pure
  arithmetic shared by both the gocv-backed and pure-Go feature backends,
  grounded on the minimal-sample-then-refit RANSAC shape
  other_examples/cb5d27d2_nmichlo-norfair-go__camera_motion.go.go uses
  around gocv.FindHomography, adapted here to a closed-form similarity fit
  instead of a general homography.

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
	"math/rand"
)

const (
	ransacMinSample = 2
	ransacIters     = 200
)

// ransacThreshold interpolates the inlier threshold between
// p.RansacThresholdMin and p.RansacThresholdMax, proportional to the
// frame diagonal relative to the largest diagonal this system supports.
func ransacThreshold(p Params, frameW, frameH int) float64 {
	diag := math.Hypot(float64(frameW), float64(frameH))
	maxDiag := math.Hypot(maxFrameWidth, maxFrameHeight)
	frac := diag / maxDiag
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return p.RansacThresholdMin + (p.RansacThresholdMax-p.RansacThresholdMin)*frac
}

// fitSimilarity computes the least-squares similarity transform (rotation
// + uniform scale + translation) mapping prev points onto curr points,
// using the closed-form Umeyama-style solution restricted to 2D
// rotation+scale. Returns ok=false if fewer than 2 points are given or the
// previous points are degenerate (zero spread).
func fitSimilarity(prev, curr []Point) (Transform, bool) {
	n := len(prev)
	if n < 2 || len(curr) != n {
		return Transform{}, false
	}
	var meanPX, meanPY, meanQX, meanQY float64
	for i := 0; i < n; i++ {
		meanPX += prev[i].X
		meanPY += prev[i].Y
		meanQX += curr[i].X
		meanQY += curr[i].Y
	}
	meanPX /= float64(n)
	meanPY /= float64(n)
	meanQX /= float64(n)
	meanQY /= float64(n)

	var sxx, sxy, syx, syy, varP float64
	for i := 0; i < n; i++ {
		px, py := prev[i].X-meanPX, prev[i].Y-meanPY
		qx, qy := curr[i].X-meanQX, curr[i].Y-meanQY
		sxx += px * qx
		sxy += px * qy
		syx += py * qx
		syy += py * qy
		varP += px*px + py*py
	}
	if varP < 1e-9 {
		return Transform{}, false
	}

	a := sxx + syy
	b := sxy - syx
	theta := math.Atan2(b, a)
	scale := math.Hypot(a, b) / varP

	c, s := math.Cos(theta), math.Sin(theta)
	a00, a01 := scale*c, -scale*s
	a10, a11 := scale*s, scale*c
	tx := meanQX - (a00*meanPX + a01*meanPY)
	ty := meanQY - (a10*meanPX + a11*meanPY)

	t := Transform{A00: a00, A01: a01, TX: tx, A10: a10, A11: a11, TY: ty}
	if math.IsNaN(t.A00) || math.IsInf(t.A00, 0) {
		return Transform{}, false
	}
	return t, true
}

// estimateAffineRANSAC fits a similarity transform from prev->curr using
// RANSAC with the given inlier threshold, then refits over all inliers.
// Returns the transform, the inlier points (in prev-space, for point
// spread checks) and whether a usable model was found.
func estimateAffineRANSAC(prev, curr []Point, threshold float64, rng *rand.Rand) (Transform, []Point, bool) {
	n := len(prev)
	if n < ransacMinSample {
		return Transform{}, nil, false
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	bestInliers := -1
	var bestIdx []int

	iters := ransacIters
	if n == ransacMinSample {
		iters = 1
	}
	for iter := 0; iter < iters; iter++ {
		i0, i1 := sampleTwoDistinct(rng, n)
		t, ok := fitSimilarity([]Point{prev[i0], prev[i1]}, []Point{curr[i0], curr[i1]})
		if !ok {
			continue
		}
		count := 0
		var idx []int
		for i := 0; i < n; i++ {
			px, py := t.Apply(prev[i].X, prev[i].Y)
			d := math.Hypot(px-curr[i].X, py-curr[i].Y)
			if d <= threshold {
				count++
				idx = append(idx, i)
			}
		}
		if count > bestInliers {
			bestInliers = count
			bestIdx = idx
		}
	}

	if bestInliers < ransacMinSample {
		return Transform{}, nil, false
	}

	inlierPrev := make([]Point, len(bestIdx))
	inlierCurr := make([]Point, len(bestIdx))
	for i, idx := range bestIdx {
		inlierPrev[i] = prev[idx]
		inlierCurr[i] = curr[idx]
	}

	t, ok := fitSimilarity(inlierPrev, inlierCurr)
	if !ok {
		return Transform{}, nil, false
	}
	return t, inlierPrev, true
}

func sampleTwoDistinct(rng *rand.Rand, n int) (int, int) {
	i0 := rng.Intn(n)
	i1 := rng.Intn(n)
	for i1 == i0 && n > 1 {
		i1 = rng.Intn(n)
	}
	return i0, i1
}

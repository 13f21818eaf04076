/*
NAME
  transform.go

DESCRIPTION
  transform.go implements the affine transform algebra needed by the Core:
  identity, compose, invert, parameter-space decomposition, weighted mean
  (Gaussian-weighted smoothing) and subtraction (residual computation).
  Matrix work is done with gonum/mat, in the same style
  other_examples/cb5d27d2_nmichlo-norfair-go__camera_motion.go.go uses
  *mat.Dense for its HomographyTransformation algebra.

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

	"gonum.org/v1/gonum/mat"
)

// Transform is a 2x3 affine matrix:
//
//	[ A00 A01 TX ]
//	[ A10 A11 TY ]
//
// acting on column vectors [x y 1]^T. The implicit third row is [0 0 1].
type Transform struct {
	A00, A01, TX float64
	A10, A11, TY float64
}

// Identity returns the identity affine transform.
func Identity() Transform {
	return Transform{A00: 1, A01: 0, TX: 0, A10: 0, A11: 1, TY: 0}
}

// IsIdentity reports whether t is within tol of the identity transform in
// every entry.
func (t Transform) IsIdentity(tol float64) bool {
	i := Identity()
	return math.Abs(t.A00-i.A00) <= tol && math.Abs(t.A01-i.A01) <= tol &&
		math.Abs(t.TX-i.TX) <= tol && math.Abs(t.A10-i.A10) <= tol &&
		math.Abs(t.A11-i.A11) <= tol && math.Abs(t.TY-i.TY) <= tol
}

// toDense embeds t into a 3x3 homogeneous gonum matrix.
func (t Transform) toDense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t.A00, t.A01, t.TX,
		t.A10, t.A11, t.TY,
		0, 0, 1,
	})
}

func fromDense(m *mat.Dense) Transform {
	return Transform{
		A00: m.At(0, 0), A01: m.At(0, 1), TX: m.At(0, 2),
		A10: m.At(1, 0), A11: m.At(1, 1), TY: m.At(1, 2),
	}
}

// Compose returns the affine equivalent to applying b then a (a ∘ b),
// i.e. the standard matrix product a*b under homogeneous embedding.
func Compose(a, b Transform) Transform {
	var out mat.Dense
	out.Mul(a.toDense(), b.toDense())
	return fromDense(&out)
}

// Invert returns the analytic inverse of t. It fails (ok=false) if the
// determinant magnitude is below detInversionEpsilon.
func Invert(t Transform) (Transform, bool) {
	det := t.A00*t.A11 - t.A01*t.A10
	if math.Abs(det) < detInversionEpsilon {
		return Transform{}, false
	}
	invDet := 1.0 / det
	a00 := t.A11 * invDet
	a01 := -t.A01 * invDet
	a10 := -t.A10 * invDet
	a11 := t.A00 * invDet
	tx := -(a00*t.TX + a01*t.TY)
	ty := -(a10*t.TX + a11*t.TY)
	return Transform{A00: a00, A01: a01, TX: tx, A10: a10, A11: a11, TY: ty}, true
}

// Apply maps a point through t.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A00*x + t.A01*y + t.TX, t.A10*x + t.A11*y + t.TY
}

// affineParams is the (translation, rotation, scale) decomposition of an
// affine transform used for parameter-space averaging and subtraction.
type affineParams struct {
	tx, ty float64
	theta  float64 // radians
	scale  float64
}

// decompose extracts (tx, ty, theta, scale) from t. theta = atan2(a10,
// a00); scale = sqrt(a00^2 + a10^2), the norm of the first column, which
// is exact for the similarity transforms (rotation+uniform scale+
// translation) this system estimates and applies.
func decompose(t Transform) affineParams {
	return affineParams{
		tx:    t.TX,
		ty:    t.TY,
		theta: math.Atan2(t.A10, t.A00),
		scale: math.Hypot(t.A00, t.A10),
	}
}

// recompose rebuilds a Transform from a parameter-space decomposition.
func recompose(p affineParams) Transform {
	c, s := math.Cos(p.theta), math.Sin(p.theta)
	return Transform{
		A00: p.scale * c, A01: -p.scale * s, TX: p.tx,
		A10: p.scale * s, A11: p.scale * c, TY: p.ty,
	}
}

// weightedMean computes the Gaussian-weighted, parameter-space average of
// a list of transforms. Weights are normalized internally; angles are
// averaged via unit-vector (circular) mean to avoid wraparound bias.
func weightedMean(transforms []Transform, weights []float64) Transform {
	if len(transforms) == 0 {
		return Identity()
	}
	var wsum, tx, ty, scale, sinSum, cosSum float64
	for i, t := range transforms {
		w := weights[i]
		p := decompose(t)
		wsum += w
		tx += w * p.tx
		ty += w * p.ty
		scale += w * p.scale
		sinSum += w * math.Sin(p.theta)
		cosSum += w * math.Cos(p.theta)
	}
	if wsum == 0 {
		return Identity()
	}
	return recompose(affineParams{
		tx:    tx / wsum,
		ty:    ty / wsum,
		scale: scale / wsum,
		theta: math.Atan2(sinSum, cosSum),
	})
}

// gaussianWeights returns normalized Gaussian weights for n samples, where
// index n-1 (the most recent entry) carries the center (peak) weight and
// earlier entries are attenuated by their distance from it.
func gaussianWeights(n int, sigma float64) []float64 {
	w := make([]float64, n)
	if sigma <= 0 {
		sigma = 1
	}
	center := float64(n - 1)
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(i) - center
		w[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += w[i]
	}
	if sum == 0 {
		for i := range w {
			w[i] = 1.0 / float64(n)
		}
		return w
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// subtract computes the residual transform "current ⊖ smoothed": the
// parameter-space difference applied to the frame to cancel the smoothed
// (unwanted, low-frequency) component while preserving the rest of the
// motion.
func subtract(current, smoothed Transform) Transform {
	c := decompose(current)
	s := decompose(smoothed)
	return recompose(affineParams{
		tx:    c.tx - s.tx,
		ty:    c.ty - s.ty,
		theta: normalizeAngle(c.theta - s.theta),
		scale: safeRatio(c.scale, s.scale),
	})
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func safeRatio(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}

// validateTransform rejects non-finite entries, scale outside
// [minScale, maxScale] and translation magnitude exceeding maxDisplacement.
func validateTransform(t Transform, maxDisplacement float64) bool {
	vals := [6]float64{t.A00, t.A01, t.TX, t.A10, t.A11, t.TY}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	p := decompose(t)
	if p.scale < minScale || p.scale > maxScale {
		return false
	}
	if math.Hypot(t.TX, t.TY) > maxDisplacement {
		return false
	}
	return true
}

// clampTranslation clamps t's translation components to ±maxTX, ±maxTY.
func clampTranslation(t Transform, maxTX, maxTY float64) Transform {
	out := t
	out.TX = clampAbs(out.TX, maxTX)
	out.TY = clampAbs(out.TY, maxTY)
	return out
}

func clampAbs(v, bound float64) float64 {
	if bound < 0 {
		bound = -bound
	}
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}

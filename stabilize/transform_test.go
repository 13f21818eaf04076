/*
NAME
  transform_test.go

DESCRIPTION
  transform_test.go tests the affine transform algebra: compose/invert
  round-trips, parameter-space decomposition, weighted mean smoothing and
  residual subtraction.

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
	"testing"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func transformsAlmostEqual(a, b Transform, tol float64) bool {
	return almostEqual(a.A00, b.A00, tol) && almostEqual(a.A01, b.A01, tol) &&
		almostEqual(a.TX, b.TX, tol) && almostEqual(a.A10, b.A10, tol) &&
		almostEqual(a.A11, b.A11, tol) && almostEqual(a.TY, b.TY, tol)
}

func TestIdentityIsIdentity(t *testing.T) {
	if !Identity().IsIdentity(1e-9) {
		t.Fatal("Identity() is not identity")
	}
}

func TestComposeWithIdentity(t *testing.T) {
	tr := Transform{A00: 0.9, A01: -0.1, TX: 5, A10: 0.1, A11: 0.9, TY: -3}
	if got := Compose(tr, Identity()); !transformsAlmostEqual(got, tr, 1e-9) {
		t.Errorf("Compose(t, Identity) = %+v, want %+v", got, tr)
	}
	if got := Compose(Identity(), tr); !transformsAlmostEqual(got, tr, 1e-9) {
		t.Errorf("Compose(Identity, t) = %+v, want %+v", got, tr)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tr := Transform{A00: 0.95, A01: -0.2, TX: 12, A10: 0.2, A11: 0.95, TY: -8}
	inv, ok := Invert(tr)
	if !ok {
		t.Fatal("Invert reported not-invertible for a well-conditioned transform")
	}
	round := Compose(tr, inv)
	if !transformsAlmostEqual(round, Identity(), 1e-6) {
		t.Errorf("Compose(t, Invert(t)) = %+v, want identity", round)
	}
}

func TestInvertDegenerate(t *testing.T) {
	tr := Transform{A00: 0, A01: 0, TX: 1, A10: 0, A11: 0, TY: 2}
	if _, ok := Invert(tr); ok {
		t.Error("Invert should fail on a singular matrix")
	}
}

func TestDecomposeRecomposeRoundTrip(t *testing.T) {
	tr := Transform{A00: 0.8 * math.Cos(0.3), A01: -0.8 * math.Sin(0.3), TX: 4,
		A10: 0.8 * math.Sin(0.3), A11: 0.8 * math.Cos(0.3), TY: -6}
	p := decompose(tr)
	if !almostEqual(p.theta, 0.3, 1e-9) {
		t.Errorf("decompose theta = %v, want ~0.3", p.theta)
	}
	if !almostEqual(p.scale, 0.8, 1e-9) {
		t.Errorf("decompose scale = %v, want ~0.8", p.scale)
	}
	round := recompose(p)
	if !transformsAlmostEqual(round, tr, 1e-9) {
		t.Errorf("recompose(decompose(t)) = %+v, want %+v", round, tr)
	}
}

func TestWeightedMeanOfIdenticalTransformsIsUnchanged(t *testing.T) {
	tr := Transform{A00: 0.9, A01: -0.05, TX: 3, A10: 0.05, A11: 0.9, TY: 2}
	transforms := []Transform{tr, tr, tr}
	weights := gaussianWeights(3, 1.0)
	got := weightedMean(transforms, weights)
	if !transformsAlmostEqual(got, tr, 1e-6) {
		t.Errorf("weightedMean of identical transforms = %+v, want %+v", got, tr)
	}
}

func TestWeightedMeanEmptyIsIdentity(t *testing.T) {
	if got := weightedMean(nil, nil); !got.IsIdentity(1e-9) {
		t.Errorf("weightedMean(nil) = %+v, want identity", got)
	}
}

func TestGaussianWeightsPeakAtMostRecent(t *testing.T) {
	w := gaussianWeights(5, 2.0)
	for i := 0; i < len(w)-1; i++ {
		if w[i] > w[len(w)-1] {
			t.Errorf("weight[%d]=%v exceeds the most recent weight[%d]=%v", i, w[i], len(w)-1, w[len(w)-1])
		}
	}
	var sum float64
	for _, v := range w {
		sum += v
	}
	if !almostEqual(sum, 1, 1e-9) {
		t.Errorf("weights should sum to 1, got %v", sum)
	}
}

func TestSubtractOfIdenticalTransformsIsIdentity(t *testing.T) {
	tr := Transform{A00: 0.9, A01: -0.1, TX: 5, A10: 0.1, A11: 0.9, TY: -3}
	residual := subtract(tr, tr)
	if !residual.IsIdentity(1e-9) {
		t.Errorf("subtract(t, t) = %+v, want identity", residual)
	}
}

func TestValidateTransformRejectsNonFinite(t *testing.T) {
	tr := Transform{A00: math.NaN(), A01: 0, TX: 0, A10: 0, A11: 1, TY: 0}
	if validateTransform(tr, 1000) {
		t.Error("validateTransform should reject a NaN entry")
	}
}

func TestValidateTransformRejectsExcessiveScale(t *testing.T) {
	tr := Identity()
	tr.A00, tr.A11 = 3, 3
	if validateTransform(tr, 1000) {
		t.Error("validateTransform should reject scale outside [minScale, maxScale]")
	}
}

func TestValidateTransformRejectsExcessiveDisplacement(t *testing.T) {
	tr := Identity()
	tr.TX = 5000
	if validateTransform(tr, 1000) {
		t.Error("validateTransform should reject translation beyond maxDisplacement")
	}
}

func TestClampTranslation(t *testing.T) {
	tr := Transform{A00: 1, A11: 1, TX: 500, TY: -500}
	got := clampTranslation(tr, 100, 50)
	if got.TX != 100 || got.TY != -50 {
		t.Errorf("clampTranslation = (%v, %v), want (100, -50)", got.TX, got.TY)
	}
}

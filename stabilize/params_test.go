/*
NAME
  params_test.go

DESCRIPTION
  params_test.go tests Params.Validate and DefaultParams.

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

	"github.com/google/go-cmp/cmp"
)

func TestDefaultParamsValidates(t *testing.T) {
	want := DefaultParams()
	got, reports := Validate(want)
	if len(reports) != 0 {
		t.Errorf("expected no clamps on the documented defaults, got %v", reports)
	}
	if !cmp.Equal(got, want) {
		t.Errorf("Validate altered the default params\nwant: %+v\ngot: %+v", want, got)
	}
}

func TestValidateClampsOutOfRange(t *testing.T) {
	p := DefaultParams()
	p.SmoothingRadius = -5
	p.MaxCorrection = 500
	p.FeatureCount = 5
	p.QualityLevel = 10
	p.MinDistance = -1
	p.BlockSize = 4 // even, must round to nearest odd
	p.RansacThresholdMin = 20
	p.RansacThresholdMax = 1 // inverted, must be swapped

	got, reports := Validate(p)
	if len(reports) == 0 {
		t.Fatalf("expected clamp reports for out-of-range params")
	}
	if got.SmoothingRadius < minSmoothingRadius {
		t.Errorf("SmoothingRadius not clamped: %d", got.SmoothingRadius)
	}
	if got.MaxCorrection > maxMaxCorrection {
		t.Errorf("MaxCorrection not clamped: %v", got.MaxCorrection)
	}
	if got.FeatureCount < minFeatureCount {
		t.Errorf("FeatureCount not clamped: %d", got.FeatureCount)
	}
	if got.BlockSize%2 == 0 {
		t.Errorf("BlockSize not rounded to odd: %d", got.BlockSize)
	}
	if got.RansacThresholdMin > got.RansacThresholdMax {
		t.Errorf("RansacThresholdMin/Max not swapped: %v > %v", got.RansacThresholdMin, got.RansacThresholdMax)
	}
}

func TestValidateReplacesNaNAndInf(t *testing.T) {
	p := DefaultParams()
	p.QualityLevel = math.NaN()
	p.MinDistance = math.Inf(1)

	got, reports := Validate(p)
	if len(reports) != 2 {
		t.Fatalf("expected 2 clamp reports, got %d: %v", len(reports), reports)
	}
	if math.IsNaN(got.QualityLevel) {
		t.Errorf("QualityLevel still NaN after Validate")
	}
	if math.IsInf(got.MinDistance, 0) {
		t.Errorf("MinDistance still Inf after Validate")
	}
}

func TestValidateRejectsInvalidEdgeMode(t *testing.T) {
	p := DefaultParams()
	p.EdgeMode = EdgeMode(99)

	got, reports := Validate(p)
	if got.EdgeMode != EdgePadding {
		t.Errorf("invalid EdgeMode should default to Padding, got %v", got.EdgeMode)
	}
	if len(reports) == 0 {
		t.Errorf("expected a clamp report for the invalid EdgeMode")
	}
}

func TestNearestOdd(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{4, 3, 31, 5},
		{30, 3, 31, 31},
		{3, 3, 31, 3},
		{2, 3, 31, 3},
	}
	for _, c := range cases {
		if got := nearestOdd(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("nearestOdd(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestDetectionParamsEqual(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	if !detectionParamsEqual(a, b) {
		t.Errorf("identical params should compare equal")
	}
	b.FeatureCount = a.FeatureCount + 1
	if detectionParamsEqual(a, b) {
		t.Errorf("differing FeatureCount should compare unequal")
	}
}

func TestEdgeModeString(t *testing.T) {
	cases := map[EdgeMode]string{
		EdgePadding:     "Padding",
		EdgeCrop:        "Crop",
		EdgeScale:       "Scale",
		EdgeMode(42):    "Unknown(42)",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("EdgeMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

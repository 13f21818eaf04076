/*
NAME
  params.go

DESCRIPTION
  params.go defines the Params struct governing stabilization behaviour,
  and its validator. Validate never fails: it returns a clamped, internally
  consistent copy, following the same clamp-and-log shape as
  revid/config.Config's per-field Validate funcs.

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
	"strconv"
)

// EdgeMode selects how the Edge Handler compensates for the black border
// a translation/scale warp can expose at the frame's edges.
type EdgeMode int

const (
	// EdgePadding leaves the warped frame as-is; black borders may show.
	EdgePadding EdgeMode = iota
	// EdgeCrop crops to the largest inscribed rectangle and resizes back
	// to the original dimensions.
	EdgeCrop
	// EdgeScale compensates by pre-scaling the frame so the warp exactly
	// fills the original dimensions.
	EdgeScale
)

func (m EdgeMode) String() string {
	switch m {
	case EdgePadding:
		return "Padding"
	case EdgeCrop:
		return "Crop"
	case EdgeScale:
		return "Scale"
	default:
		return "Unknown(" + strconv.Itoa(int(m)) + ")"
	}
}

// Params holds the full set of stabilization parameters. The zero value is
// not valid; use DefaultParams and then mutate fields, or run a populated
// value through Validate before use. Every field is clamped and repaired
// by Validate on every assignment path (Wrapper.UpdateParameters,
// preset.Load).
type Params struct {
	Enabled bool

	// SmoothingRadius is the number of recent transforms averaged when
	// computing the temporally smoothed camera path.
	SmoothingRadius int

	// MaxCorrection is the maximum translation correction allowed,
	// expressed as a percentage of frame width/height.
	MaxCorrection float64

	// FeatureCount is the target number of tracked points per frame.
	FeatureCount int

	// QualityLevel is the minimum accepted corner-detector response,
	// relative to the best corner found.
	QualityLevel float64

	// MinDistance is the minimum allowed pixel distance between detected
	// feature points.
	MinDistance float64

	// BlockSize is the averaging block size used by the corner detector.
	// Always odd; values are rounded to the nearest odd number in range.
	BlockSize int

	UseHarris bool
	HarrisK   float64

	// TrackingErrorThreshold rejects an optical-flow correspondence whose
	// reported tracking error exceeds this value.
	TrackingErrorThreshold float64

	// RansacThresholdMin/Max bound the RANSAC inlier threshold used for
	// transform estimation; the effective threshold is interpolated
	// between them proportional to the frame's diagonal.
	RansacThresholdMin float64
	RansacThresholdMax float64

	// MinPointSpread rejects an estimated transform when the inlier point
	// bounding-box diagonal falls below this many pixels.
	MinPointSpread float64

	// MaxDisplacement rejects an estimated transform whose translation
	// exceeds this many pixels.
	MaxDisplacement float64

	EdgeMode EdgeMode

	// FrameMotionThreshold is the dead-zone translation magnitude (pixels)
	// below which the applied residual is replaced with identity.
	FrameMotionThreshold float64
}

// DefaultParams returns the documented default parameter set.
func DefaultParams() Params {
	return Params{
		Enabled:                defaultEnabled,
		SmoothingRadius:        defaultSmoothingRadius,
		MaxCorrection:          defaultMaxCorrection,
		FeatureCount:           defaultFeatureCount,
		QualityLevel:           defaultQualityLevel,
		MinDistance:            defaultMinDistance,
		BlockSize:              defaultBlockSize,
		UseHarris:              defaultUseHarris,
		HarrisK:                defaultHarrisK,
		TrackingErrorThreshold: defaultTrackingErrorThreshold,
		RansacThresholdMin:     defaultRansacThresholdMin,
		RansacThresholdMax:     defaultRansacThresholdMax,
		MinPointSpread:         defaultMinPointSpread,
		MaxDisplacement:        defaultMaxDisplacement,
		EdgeMode:               EdgePadding,
		FrameMotionThreshold:   defaultFrameMotionThreshold,
	}
}

// clampReport records one field that Validate repaired, for callers (such
// as Wrapper.UpdateParameters) that want to surface partial-failure
// information back to the host.
type clampReport struct {
	Field  string
	Reason string
}

// Validate returns a clamped, internally consistent copy of p. It never
// fails: out-of-range fields are clamped to their bounds, NaN or infinite
// fields (and negative values of fields with no upper bound) are replaced
// with their default, and each repair is recorded in the returned report
// slice.
func Validate(p Params) (Params, []clampReport) {
	var reports []clampReport
	note := func(field, reason string) { reports = append(reports, clampReport{Field: field, Reason: reason}) }

	out := p

	out.SmoothingRadius, _ = clampInt(p.SmoothingRadius, minSmoothingRadius, maxSmoothingRadius, defaultSmoothingRadius, "SmoothingRadius", note)
	out.MaxCorrection = clampFloat(p.MaxCorrection, minMaxCorrection, maxMaxCorrection, defaultMaxCorrection, "MaxCorrection", note)
	out.FeatureCount, _ = clampInt(p.FeatureCount, minFeatureCount, maxFeatureCount, defaultFeatureCount, "FeatureCount", note)
	out.QualityLevel = clampFloat(p.QualityLevel, minQualityLevel, maxQualityLevel, defaultQualityLevel, "QualityLevel", note)
	out.MinDistance = clampFloat(p.MinDistance, minMinDistance, maxMinDistance, defaultMinDistance, "MinDistance", note)

	bs, _ := clampInt(p.BlockSize, minBlockSize, maxBlockSize, defaultBlockSize, "BlockSize", note)
	out.BlockSize = nearestOdd(bs, minBlockSize, maxBlockSize)

	out.HarrisK = clampFloat(p.HarrisK, minHarrisK, maxHarrisK, defaultHarrisK, "HarrisK", note)

	out.TrackingErrorThreshold = clampNonNegative(p.TrackingErrorThreshold, defaultTrackingErrorThreshold, "TrackingErrorThreshold", note)

	rmin := clampNonNegative(p.RansacThresholdMin, defaultRansacThresholdMin, "RansacThresholdMin", note)
	rmax := clampNonNegative(p.RansacThresholdMax, defaultRansacThresholdMax, "RansacThresholdMax", note)
	if rmin > rmax {
		rmin, rmax = rmax, rmin
		note("RansacThresholdMin/Max", "min exceeded max; swapped")
	}
	out.RansacThresholdMin, out.RansacThresholdMax = rmin, rmax

	out.MinPointSpread = clampNonNegative(p.MinPointSpread, defaultMinPointSpread, "MinPointSpread", note)
	out.MaxDisplacement = clampNonNegative(p.MaxDisplacement, defaultMaxDisplacement, "MaxDisplacement", note)
	out.FrameMotionThreshold = clampNonNegative(p.FrameMotionThreshold, defaultFrameMotionThreshold, "FrameMotionThreshold", note)

	if p.EdgeMode < EdgePadding || p.EdgeMode > EdgeScale {
		note("EdgeMode", "out of range; defaulting to Padding")
		out.EdgeMode = EdgePadding
	}

	return out, reports
}

// clampInt clamps v into [lo, hi]. def is not used: ints cannot be
// NaN/Inf, so this is a pure range clamp.
func clampInt(v, lo, hi, def int, field string, note func(field, reason string)) (int, bool) {
	if v < lo {
		note(field, "below minimum; clamped")
		return lo, true
	}
	if v > hi {
		note(field, "above maximum; clamped")
		return hi, true
	}
	_ = def
	return v, false
}

// clampFloat clamps v into [lo, hi], substituting def for NaN/Inf.
func clampFloat(v, lo, hi, def float64, field string, note func(field, reason string)) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		note(field, "NaN or infinite; defaulted")
		return def
	}
	if v < lo {
		note(field, "below minimum; clamped")
		return lo
	}
	if v > hi {
		note(field, "above maximum; clamped")
		return hi
	}
	return v
}

// clampNonNegative substitutes def for NaN/Inf/negative values that have
// no fixed upper bound in the parameter contract.
func clampNonNegative(v, def float64, field string, note func(field, reason string)) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		note(field, "invalid or negative; defaulted")
		return def
	}
	return v
}

// nearestOdd returns the odd integer in [lo, hi] nearest to v.
func nearestOdd(v, lo, hi int) int {
	if v%2 == 0 {
		if v+1 <= hi {
			v++
		} else if v-1 >= lo {
			v--
		}
	}
	return v
}

// detectionParamsEqual reports whether the detector-affecting fields of a
// and b match. Core.UpdateParameters uses this to decide whether stored
// feature points must be invalidated and a re-detect forced.
func detectionParamsEqual(a, b Params) bool {
	return a.QualityLevel == b.QualityLevel &&
		a.MinDistance == b.MinDistance &&
		a.BlockSize == b.BlockSize &&
		a.UseHarris == b.UseHarris &&
		a.HarrisK == b.HarrisK &&
		a.FeatureCount == b.FeatureCount
}

/*
NAME
  constants.go

DESCRIPTION
  constants.go holds the named numeric bounds and preset values governing
  stabilization parameters, frame dimensions and the Core's internal
  recovery thresholds.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "time"

// Parameter ranges and defaults, per the parameter contract.
const (
	minSmoothingRadius = 1
	maxSmoothingRadius = 200
	defaultSmoothingRadius = 30

	minMaxCorrection = 0.0
	maxMaxCorrection = 100.0
	defaultMaxCorrection = 30.0

	minFeatureCount = 50
	maxFeatureCount = 2000
	defaultFeatureCount = 500

	minQualityLevel = 0.001
	maxQualityLevel = 0.1
	defaultQualityLevel = 0.01

	minMinDistance = 1.0
	maxMinDistance = 200.0
	defaultMinDistance = 30.0

	minBlockSize = 3
	maxBlockSize = 31
	defaultBlockSize = 3

	defaultUseHarris = false
	minHarrisK       = 0.01
	maxHarrisK       = 0.1
	defaultHarrisK   = 0.04

	defaultTrackingErrorThreshold = 50.0

	defaultRansacThresholdMin = 1.0
	defaultRansacThresholdMax = 10.0

	defaultMinPointSpread = 10.0
	defaultMaxDisplacement = 1000.0

	defaultFrameMotionThreshold = 0.25

	defaultEnabled = true
)

// Frame dimension bounds, enforced on both Initialize and ProcessFrame.
const (
	minFrameWidth  = 32
	minFrameHeight = 32
	maxFrameWidth  = 7680
	maxFrameHeight = 4320
)

// Transform sanity bounds.
const (
	minScale = 0.5
	maxScale = 1.5
)

// Core state-machine thresholds, fixed by the specification rather than
// exposed as tunable parameters.
const (
	// minTrackedPoints is the minimum number of successfully tracked points
	// required to attempt a transform estimate; below this the frame is a
	// tracking failure.
	minTrackedPoints = 8

	// maxConsecutiveFailures is the number of consecutive tracking failures
	// that forces a full re-detect and resets the failure counter.
	maxConsecutiveFailures = 5

	// minFeatureRetainFraction sets the floor (relative to feature_count)
	// below which surviving points trigger a feature refresh, subject to
	// the absolute floor below.
	minFeatureRetainFraction = 3.0
	minFeatureRetainFloor    = 50

	// redetectIntervalDivisor controls the maximum number of frames between
	// forced full re-detects, expressed as feature_count/redetectIntervalDivisor.
	redetectIntervalDivisor = 10

	// gaussianSigmaDivisor fixes sigma = smoothing_radius/3 for the temporal
	// smoothing kernel, giving the Gaussian weight effectively zero by the
	// window edge while still favoring recent frames.
	gaussianSigmaDivisor = 3.0

	// deadZoneRotation and deadZoneScale bound the residual's rotation
	// (radians) and |scale-1| below which the dead zone substitutes
	// identity for the residual, alongside the frame_motion_threshold
	// translation bound.
	deadZoneRotation = 0.001
	deadZoneScale    = 0.001

	// detInversionEpsilon is the minimum |determinant| below which an
	// affine is considered non-invertible.
	detInversionEpsilon = 1e-6

	// slowFrameThreshold is the per-frame processing budget; frames taking
	// longer than this are logged as slow and counted in Metrics.
	slowFrameThreshold = 10 * time.Millisecond

	// metricsEMAAlpha is the exponential-moving-average weight applied to
	// each new processing-time sample.
	metricsEMAAlpha = 0.05
)

// chromaSubsampleShift is the right-shift applied to a luma-plane
// translation to derive the translation applied to a subsampled chroma
// plane (NV12, I420 are both 4:2:0 -> divide by 2 in each axis).
const chromaSubsampleShift = 1

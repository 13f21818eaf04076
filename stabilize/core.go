/*
NAME
  core.go

DESCRIPTION
  core.go implements the Stabilizer Core: the per-frame state machine
  (detect -> track -> estimate -> smooth -> warp -> edge-handle). Core
  owns exactly one width/height/params/prevGray/prevPoints/
  transformHistory/metrics set; see doc.go for the single-threaded
  contract.

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
	"time"

	"github.com/ausocean/utils/logging"
)

// coreState is the Core's lifecycle position.
type coreState int

const (
	stateUninitialized coreState = iota
	stateCold
	stateWarm
)

// Core is the stabilization state machine. The zero value is
// Uninitialized; call Initialize before ProcessFrame. Core is not safe
// for concurrent use: the host must invoke ProcessFrame serially from a
// single goroutine, per the single-threaded contract in doc.go.
type Core struct {
	state coreState

	width, height int
	params        Params

	prevGray *grayBuffer
	prevPts  []Point

	history               *transformHistory
	consecutiveFailures   int
	frameIndex            uint64
	lastFullRedetectFrame uint64
	lastSurviving         []Point

	backend featureBackend
	logger  logging.Logger
	metrics metrics
	rng     *rand.Rand
}

// NewCore returns an uninitialized Core logging through logger.
func NewCore(logger logging.Logger) *Core {
	return &Core{
		state:   stateUninitialized,
		backend: defaultBackend,
		logger:  logger,
		rng:     rand.New(rand.NewSource(1)),
	}
}

// Initialize brings Core from any state to Cold with the given frame
// dimensions and parameters. Re-initialization resets all state,
// including Metrics.
func (c *Core) Initialize(width, height int, params Params) error {
	if width < minFrameWidth || height < minFrameHeight {
		return newInitError("dimensions %dx%d below minimum %dx%d", width, height, minFrameWidth, minFrameHeight)
	}
	if width > maxFrameWidth || height > maxFrameHeight {
		return newInitError("dimensions %dx%d above maximum %dx%d", width, height, maxFrameWidth, maxFrameHeight)
	}

	validated, _ := Validate(params)

	c.width, c.height = width, height
	c.params = validated
	c.prevGray = nil
	c.prevPts = nil
	c.history = newTransformHistory(validated.SmoothingRadius)
	c.consecutiveFailures = 0
	c.frameIndex = 0
	c.lastFullRedetectFrame = 0
	c.metrics = metrics{}
	c.state = stateCold
	return nil
}

// Reset clears prevGray, prevPts, transform history and the failure
// counter, returning an initialized Core to Cold. Params and Metrics are
// left unchanged. Reset on an Uninitialized Core is a no-op.
func (c *Core) Reset() {
	if c.state == stateUninitialized {
		return
	}
	c.prevGray = nil
	c.prevPts = nil
	c.history.clear()
	c.consecutiveFailures = 0
	c.state = stateCold
}

// UpdateParameters validates new and applies it. If any detector-
// affecting field changed, stored feature points are invalidated and a
// re-detect is forced on the next frame. If SmoothingRadius shrank, the
// transform history is truncated immediately. Returns the clamps applied
// during validation.
func (c *Core) UpdateParameters(p Params) []clampReport {
	validated, reports := Validate(p)

	if !detectionParamsEqual(c.params, validated) {
		c.prevPts = nil
	}
	if c.history != nil {
		c.history.setCapacity(validated.SmoothingRadius)
	}
	c.params = validated
	return reports
}

// UpdateParameter looks up name in Variables, applies value to a copy of
// the current Params, and runs it through UpdateParameters -- the same
// string-keyed live-update path revid.Config exposes for a single field,
// without requiring the caller to round-trip a whole Params struct.
func (c *Core) UpdateParameter(name, value string) ([]clampReport, error) {
	v, ok := FindVariable(name)
	if !ok {
		return nil, newValidationError("unknown parameter %q", name)
	}
	p := c.params
	v.Update(&p, value)
	if v.Validate != nil {
		v.Validate(&p)
	}
	return c.UpdateParameters(p), nil
}

// Metrics returns a read-only snapshot of Core's rolling counters.
func (c *Core) Metrics() MetricsSnapshot { return c.metrics.snapshot() }

// Params returns the Core's current, validated parameter set.
func (c *Core) Params() Params { return c.params }

// ProcessFrame runs one frame through the state machine. On a
// ValidationError the frame and Core state are unchanged. All other
// failure modes (tracking loss, degenerate RANSAC fits, non-invertible
// transforms) are recovered internally: the input frame is returned
// unmodified, and the Core re-detects features once
// maxConsecutiveFailures consecutive failures have accumulated (or at
// once when no stored points remain). f's planes are mutated in place when a warp
// is applied; Core never retains a reference to f past this call.
func (c *Core) ProcessFrame(f Frame) (Frame, error) {
	if c.state == stateUninitialized {
		return f, newValidationError("core not initialized")
	}
	if err := validateFrame(f); err != nil {
		return f, err
	}
	if f.Width != c.width || f.Height != c.height {
		return f, newValidationError("frame %dx%d does not match initialized dimensions %dx%d", f.Width, f.Height, c.width, c.height)
	}

	start := time.Now()
	defer func() {
		d := time.Since(start)
		c.metrics.recordFrame(d)
		if d > slowFrameThreshold {
			c.logger.Warning("frame processing exceeded budget", "duration", d, "frame", c.frameIndex)
		}
	}()

	gray := toGray(f)
	c.frameIndex++

	if c.state == stateCold {
		c.prevPts = c.backend.DetectFeatures(gray, c.params)
		c.prevGray = gray
		c.history.push(Identity())
		c.lastFullRedetectFrame = c.frameIndex
		c.state = stateWarm
		return f, nil
	}

	if len(c.prevPts) == 0 {
		c.redetect(gray)
		return f, nil
	}

	residual, err := c.estimateResidual(gray)
	if err != nil {
		c.onTrackingFailure(gray, err)
		return f, nil
	}

	c.consecutiveFailures = 0

	warped := c.backend.WarpAffine(gray, residual)
	edge := applyEdgeHandler(warped, residual, c.params.EdgeMode, c.backend)

	applyBack(f, edge.Gray, edge.Effective)

	c.refreshFeatures(gray)

	return f, nil
}

// estimateResidual runs track -> estimate -> invert -> smooth -> dead
// zone and returns the affine to apply to the current frame, or a
// trackingFailure describing why this frame could not be estimated.
func (c *Core) estimateResidual(gray *grayBuffer) (Transform, error) {
	currPts, status, trackErr := c.backend.TrackFeatures(c.prevGray, gray, c.prevPts)

	var survivingPrev, survivingCurr []Point
	for i, p := range currPts {
		if !status[i] {
			continue
		}
		if trackErr[i] > c.params.TrackingErrorThreshold {
			continue
		}
		if !isValidPoint(p, c.width, c.height) {
			continue
		}
		survivingPrev = append(survivingPrev, c.prevPts[i])
		survivingCurr = append(survivingCurr, p)
	}
	c.lastSurviving = survivingCurr

	if len(survivingCurr) < minTrackedPoints {
		return Transform{}, newTrackingFailure("only %d of %d minimum points survived tracking", len(survivingCurr), minTrackedPoints)
	}

	threshold := ransacThreshold(c.params, c.width, c.height)
	motion, inliers, ok := estimateAffineRANSAC(survivingPrev, survivingCurr, threshold, c.rng)
	if !ok {
		return Transform{}, newTrackingFailure("RANSAC could not fit a transform from %d points", len(survivingCurr))
	}
	if !validateTransform(motion, c.params.MaxDisplacement) {
		return Transform{}, newTrackingFailure("estimated transform failed validation (displacement > %v)", c.params.MaxDisplacement)
	}
	if boundingBoxDiagonal(inliers) < c.params.MinPointSpread {
		return Transform{}, newTrackingFailure("inlier spread below MinPointSpread (%v)", c.params.MinPointSpread)
	}

	maxTX := c.params.MaxCorrection / 100 * float64(c.width)
	maxTY := c.params.MaxCorrection / 100 * float64(c.height)
	if clampAbs(motion.TX, maxTX) != motion.TX || clampAbs(motion.TY, maxTY) != motion.TY {
		return Transform{}, newTrackingFailure("estimated translation exceeds MaxCorrection (%vpx, %vpx)", maxTX, maxTY)
	}

	frameT, ok := Invert(motion)
	if !ok {
		return Transform{}, newTrackingFailure("estimated transform is not invertible")
	}
	frameT = clampTranslation(frameT, maxTX, maxTY)

	c.history.push(frameT)
	weights := gaussianWeights(c.history.len(), float64(c.params.SmoothingRadius)/gaussianSigmaDivisor)
	smoothed := weightedMean(c.history.all(), weights)
	smoothed = clampTranslation(smoothed, maxTX, maxTY)

	current, _ := c.history.latest()
	residual := subtract(current, smoothed)
	residual = clampTranslation(residual, maxTX, maxTY)

	rp := decompose(residual)
	if math.Hypot(rp.tx, rp.ty) < c.params.FrameMotionThreshold &&
		math.Abs(rp.theta) < deadZoneRotation &&
		math.Abs(rp.scale-1) < deadZoneScale {
		residual = Identity()
	}

	return residual, nil
}

// onTrackingFailure increments the failure counter, and once it reaches
// maxConsecutiveFailures, forces a full re-detect and resets the
// counter. Below that threshold, prevGray/prevPts are left untouched so
// later frames keep trying to track against the same last-good
// reference. reason is the trackingFailure estimateResidual returned.
func (c *Core) onTrackingFailure(gray *grayBuffer, reason error) {
	c.metrics.recordTrackingFailure()
	c.consecutiveFailures++
	c.logger.Debug("tracking failure", "reason", reason.Error(), "consecutive", c.consecutiveFailures, "frame", c.frameIndex)
	if c.consecutiveFailures >= maxConsecutiveFailures {
		c.redetect(gray)
		c.consecutiveFailures = 0
	}
}

// redetect runs a full feature re-detect, updates prevGray to gray
// *before* prevPts is replaced (avoiding a pyramid mismatch where points
// were detected on a different image than the one treated as
// "previous"), appends identity to the transform history, and records
// the forced-redetect metric.
func (c *Core) redetect(gray *grayBuffer) {
	pts := c.backend.DetectFeatures(gray, c.params)
	c.prevGray = gray
	c.prevPts = pts
	c.history.push(Identity())
	c.lastFullRedetectFrame = c.frameIndex
	c.metrics.recordForcedRedetect()
}

// refreshFeatures re-detects if surviving points fell below the
// retention floor, or too many frames have passed since the last full
// re-detect; otherwise carries the tracked points forward.
func (c *Core) refreshFeatures(gray *grayBuffer) {
	floor := c.params.FeatureCount
	floorF := float64(floor) / minFeatureRetainFraction
	if int(floorF) < minFeatureRetainFloor {
		floor = minFeatureRetainFloor
	} else {
		floor = int(floorF)
	}

	interval := c.params.FeatureCount / redetectIntervalDivisor
	if interval < 1 {
		interval = 1
	}
	framesSinceRedetect := c.frameIndex - c.lastFullRedetectFrame

	if len(c.lastSurviving) < floor || framesSinceRedetect > uint64(interval) {
		c.redetect(gray)
		return
	}
	c.prevGray = gray
	c.prevPts = c.lastSurviving
}

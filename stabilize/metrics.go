/*
NAME
  metrics.go

DESCRIPTION
  metrics.go implements the rolling per-instance counters: frame count,
  last/mean processing time (EMA, alpha=0.05), slow-frame count, tracking
  failures and forced re-detects. Updated only by Core and Wrapper, and
  exposed read-only via a snapshot, the way revid exposes its bitrate
  calculator read-only through Revid.Bitrate().

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "time"

// MetricsSnapshot is a read-only copy of a Metrics record at a point in
// time.
type MetricsSnapshot struct {
	FrameCount          uint64
	LastProcessingTime  time.Duration
	MeanProcessingTime  time.Duration
	SlowFrameCount      uint64
	TrackingFailures    uint64
	ForcedRedetects     uint64
	FirstFrameTime      time.Duration
}

// metrics is the mutable, Core/Wrapper-owned counter set.
type metrics struct {
	frameCount         uint64
	lastProcessingTime time.Duration
	meanProcessingTime time.Duration
	slowFrameCount     uint64
	trackingFailures   uint64
	forcedRedetects    uint64
	firstFrameTime     time.Duration
	sawFirstFrame      bool
}

// recordFrame folds a new per-frame processing duration into the rolling
// counters, updating the EMA mean and the slow-frame count.
func (m *metrics) recordFrame(d time.Duration) {
	m.frameCount++
	m.lastProcessingTime = d
	if !m.sawFirstFrame {
		m.firstFrameTime = d
		m.sawFirstFrame = true
	}
	if m.frameCount == 1 {
		m.meanProcessingTime = d
	} else {
		m.meanProcessingTime = time.Duration(metricsEMAAlpha*float64(d) + (1-metricsEMAAlpha)*float64(m.meanProcessingTime))
	}
	if d > slowFrameThreshold {
		m.slowFrameCount++
	}
}

func (m *metrics) recordTrackingFailure() { m.trackingFailures++ }
func (m *metrics) recordForcedRedetect()  { m.forcedRedetects++ }

func (m *metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		FrameCount:         m.frameCount,
		LastProcessingTime: m.lastProcessingTime,
		MeanProcessingTime: m.meanProcessingTime,
		SlowFrameCount:     m.slowFrameCount,
		TrackingFailures:   m.trackingFailures,
		ForcedRedetects:    m.forcedRedetects,
		FirstFrameTime:     m.firstFrameTime,
	}
}

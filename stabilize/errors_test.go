/*
NAME
  errors_test.go

DESCRIPTION
  errors_test.go tests the boundary-facing error taxonomy and the
  internal trackingFailure type.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import (
	"errors"
	"testing"
)

func TestNewValidationErrorFormatsReason(t *testing.T) {
	err := newValidationError("bad width %d", 0)
	if err.Reason != "bad width 0" {
		t.Errorf("Reason = %q, want %q", err.Reason, "bad width 0")
	}
}

func TestNewInitErrorFormatsReason(t *testing.T) {
	err := newInitError("dimensions %dx%d too small", 1, 1)
	if err.Reason != "dimensions 1x1 too small" {
		t.Errorf("Reason = %q, want %q", err.Reason, "dimensions 1x1 too small")
	}
}

func TestWrapLibraryFailureUnwraps(t *testing.T) {
	cause := errors.New("boom")
	lf := wrapLibraryFailure(cause, "stabilize.Core.ProcessFrame")
	if !errors.Is(lf, cause) {
		t.Errorf("wrapped LibraryFailure does not unwrap to its cause")
	}
}

func TestIsTrackingFailureMatchesTrackingFailure(t *testing.T) {
	err := newTrackingFailure("only %d points survived", 2)
	if !isTrackingFailure(err) {
		t.Error("isTrackingFailure(trackingFailure) = false, want true")
	}
}

func TestIsTrackingFailureRejectsOtherErrors(t *testing.T) {
	if isTrackingFailure(errors.New("unrelated")) {
		t.Error("isTrackingFailure(non-trackingFailure) = true, want false")
	}
}

func TestEstimateResidualFailureIsTrackingFailure(t *testing.T) {
	c := NewCore(testLogger())
	if err := c.Initialize(320, 240, DefaultParams()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	gray := toGray(uniformFrame(320, 240, 128))
	c.prevGray = gray
	c.prevPts = []Point{{X: 10, Y: 10}, {X: 20, Y: 20}}
	c.state = stateWarm

	_, err := c.estimateResidual(gray)
	if err == nil {
		t.Fatal("expected estimateResidual to fail with too few surviving points")
	}
	if !isTrackingFailure(err) {
		t.Errorf("estimateResidual error %v is not a trackingFailure", err)
	}
}

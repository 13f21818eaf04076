/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the boundary-facing error taxonomy. ValidationError and
  InitError are caller-visible and leave state unchanged; LibraryFailure is
  recorded on the Wrapper via last_error but never returned to the caller.
  TrackingFailure is internal to the Core and never crosses the Wrapper
  boundary at all.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError indicates a caller-supplied parameter or frame was
// invalid. The Core and Wrapper's state is left unchanged when this is
// returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "stabilize: validation failed: " + e.Reason }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InitError indicates initialize could not bring the Core to the Cold
// state; the Core remains Uninitialized.
type InitError struct {
	Reason string
}

func (e *InitError) Error() string { return "stabilize: initialization failed: " + e.Reason }

func newInitError(format string, args ...interface{}) *InitError {
	return &InitError{Reason: fmt.Sprintf(format, args...)}
}

// LibraryFailure wraps an error raised by an underlying tracking or warp
// primitive. It is captured in Wrapper.last_error and never returned from
// a public Wrapper call; the input frame is passed through unchanged.
type LibraryFailure struct {
	cause error
}

func (e *LibraryFailure) Error() string {
	return "stabilize: library failure: " + e.cause.Error()
}

func (e *LibraryFailure) Unwrap() error { return e.cause }

func wrapLibraryFailure(cause error, context string) *LibraryFailure {
	return &LibraryFailure{cause: errors.Wrapf(cause, context)}
}

// trackingFailure is raised internally by the per-frame pipeline to drive
// the Core's recovery path (re-detect + identity warp). It never leaves
// the Core; processFrame converts it into a pass-through result.
type trackingFailure struct {
	reason string
}

func (e *trackingFailure) Error() string { return "tracking failure: " + e.reason }

func newTrackingFailure(format string, args ...interface{}) *trackingFailure {
	return &trackingFailure{reason: fmt.Sprintf(format, args...)}
}

// isTrackingFailure reports whether err is (or wraps) a trackingFailure.
func isTrackingFailure(err error) bool {
	var tf *trackingFailure
	return errors.As(err, &tf)
}

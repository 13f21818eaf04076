/*
NAME
  wrapper.go

DESCRIPTION
  wrapper.go implements Wrapper, the sole type external callers use. It
  owns exactly one Core, validates every entry point per the boundary
  contract, and converts any library-originated panic or error into a
  recorded LibraryFailure plus an unchanged pass-through frame rather than
  letting it propagate -- the same "never let an optional stage take down
  the pipeline" shape filter/filters.go's Apply wraps each registered
  filter in.

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
	"sync"

	"github.com/ausocean/utils/logging"
)

// Wrapper is the library's public entry point: one Wrapper owns one Core
// and is driven by a single host goroutine per frame, matching the
// single-threaded contract documented in doc.go. A mutex guards against
// accidental concurrent misuse; it is not intended to make Wrapper safe
// for genuinely concurrent ProcessFrame calls, which would corrupt the
// Core's tracking state regardless.
type Wrapper struct {
	mu        sync.Mutex
	core      *Core
	logger    logging.Logger
	lastError error
}

// NewWrapper returns an uninitialized Wrapper logging through logger. If
// logger is nil, a logging.Logger that discards everything is used.
func NewWrapper(logger logging.Logger) *Wrapper {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Wrapper{core: NewCore(logger), logger: logger}
}

// Initialize validates width/height and params and brings the underlying
// Core to Cold. A ValidationError or InitError is returned directly; the
// Wrapper's last_error and Core state are untouched on failure.
func (w *Wrapper) Initialize(width, height int, params Params) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if width <= 0 || height <= 0 {
		err := newValidationError("width and height must be positive, got %dx%d", width, height)
		return err
	}
	if err := w.core.Initialize(width, height, params); err != nil {
		return err
	}
	return nil
}

// ProcessFrame validates f and runs it through the Core. ValidationErrors
// are returned directly and leave the frame and Core state unchanged. Any
// other failure -- a panic raised by the feature backend, or an error the
// Core could not recover from internally -- is captured as a
// LibraryFailure in LastError; the frame passed in is returned unmodified
// and processing continues on subsequent calls.
func (w *Wrapper) ProcessFrame(f Frame) (out Frame, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			lf := wrapLibraryFailure(fmt.Errorf("panic: %v", r), "stabilize.Core.ProcessFrame")
			w.lastError = lf
			w.logger.Error("recovered from panic in ProcessFrame", "error", lf.Error())
			out = f
			err = nil
		}
	}()

	result, perr := w.core.ProcessFrame(f)
	if perr != nil {
		if _, ok := perr.(*ValidationError); ok {
			return f, perr
		}
		lf := wrapLibraryFailure(perr, "stabilize.Core.ProcessFrame")
		w.lastError = lf
		w.logger.Error("stabilization failed for frame; passing through unchanged", "error", lf.Error())
		return f, nil
	}
	return result, nil
}

// UpdateParameters validates and applies new parameters, forwarding any
// clamps Validate performed to the logger at Warning level, matching
// Config.LogInvalidField's call shape.
func (w *Wrapper) UpdateParameters(p Params) {
	w.mu.Lock()
	defer w.mu.Unlock()

	reports := w.core.UpdateParameters(p)
	for _, r := range reports {
		w.logger.Warning("parameter clamped", "field", r.Field, "reason", r.Reason)
	}
}

// UpdateParameter applies a single named, string-encoded parameter
// update (e.g. from a host's property UI) and revalidates, forwarding
// any clamps to the logger exactly as UpdateParameters does.
func (w *Wrapper) UpdateParameter(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	reports, err := w.core.UpdateParameter(name, value)
	if err != nil {
		return err
	}
	for _, r := range reports {
		w.logger.Warning("parameter clamped", "field", r.Field, "reason", r.Reason)
	}
	return nil
}

// Params returns the Wrapper's current, validated parameter set.
func (w *Wrapper) Params() Params {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.core.Params()
}

// Reset returns the underlying Core to Cold, discarding tracked points and
// transform history. See Core.Reset.
func (w *Wrapper) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.core.Reset()
	w.lastError = nil
}

// LastError returns the most recently recorded LibraryFailure, or nil if
// none has occurred since the Wrapper was created or last Reset.
func (w *Wrapper) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// Metrics returns a snapshot of the underlying Core's rolling counters.
func (w *Wrapper) Metrics() MetricsSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.core.Metrics()
}

// noopLogger discards everything; used when NewWrapper is given a nil
// logger so Core/Wrapper logging calls never need a nil check.
type noopLogger struct{}

func (noopLogger) SetLevel(l int8)                            {}
func (noopLogger) Log(l int8, msg string, args ...interface{}) {}
func (noopLogger) Debug(msg string, args ...interface{})      {}
func (noopLogger) Info(msg string, args ...interface{})       {}
func (noopLogger) Warning(msg string, args ...interface{})    {}
func (noopLogger) Error(msg string, args ...interface{})      {}
func (noopLogger) Fatal(msg string, args ...interface{})      {}

/*
NAME
  doc.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stabilize implements a real-time video stabilization engine.
//
// Given a sequence of frames from a host capture pipeline, Core estimates
// inter-frame camera motion from tracked image features, smooths that
// motion over a sliding temporal window, and warps each frame by the
// residual (unsmoothed minus smoothed) transform so unintentional shake is
// suppressed while intentional motion (pans, zooms) is preserved.
//
// Wrapper is the only type external callers should use directly; it owns a
// single Core, validates every call, and converts library failures into
// recorded errors rather than surfacing them. The host is expected to
// invoke Wrapper.ProcessFrame serially, once per captured frame, from a
// single goroutine; see the package-level concurrency note on Wrapper.
package stabilize

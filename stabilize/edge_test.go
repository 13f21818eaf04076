/*
NAME
  edge_test.go

DESCRIPTION
  edge_test.go tests the Edge Handler's three modes, including the
  defensive ROI clamp invariant (the ROI is always fully contained in the
  frame).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "testing"

func TestClampROIKeepsROIInBounds(t *testing.T) {
	cases := []roi{
		{X: -10, Y: -10, W: 50, H: 50},
		{X: 90, Y: 90, W: 50, H: 50},
		{X: 0, Y: 0, W: 1000, H: 1000},
	}
	for _, r := range cases {
		got := clampROI(r, 100, 100)
		if got.X < 0 || got.Y < 0 || got.X+got.W > 100 || got.Y+got.H > 100 {
			t.Errorf("clampROI(%+v, 100, 100) = %+v, escapes frame bounds", r, got)
		}
	}
}

func TestApplyEdgeHandlerPaddingPassesThrough(t *testing.T) {
	gray := newGrayBuffer(64, 64)
	residual := Transform{A00: 1, A11: 1, TX: 5, TY: 5}
	res := applyEdgeHandler(gray, residual, EdgePadding, defaultBackend)
	if res.Gray != gray {
		t.Error("EdgePadding should return the same buffer unmodified")
	}
	if !transformsAlmostEqual(res.Effective, residual, 1e-9) {
		t.Errorf("EdgePadding effective transform = %+v, want %+v", res.Effective, residual)
	}
}

func TestApplyEdgeHandlerCropReturnsSameDimensions(t *testing.T) {
	gray := newGrayBuffer(64, 64)
	residual := Transform{A00: 1, A11: 1, TX: 10, TY: -10}
	res := applyEdgeHandler(gray, residual, EdgeCrop, defaultBackend)
	if res.Gray.Width != 64 || res.Gray.Height != 64 {
		t.Errorf("EdgeCrop changed dimensions: %dx%d, want 64x64", res.Gray.Width, res.Gray.Height)
	}
}

func TestApplyEdgeHandlerScaleReturnsSameDimensions(t *testing.T) {
	gray := newGrayBuffer(64, 64)
	residual := Transform{A00: 0.9, A11: 0.9, TX: 0, TY: 0}
	res := applyEdgeHandler(gray, residual, EdgeScale, defaultBackend)
	if res.Gray.Width != 64 || res.Gray.Height != 64 {
		t.Errorf("EdgeScale changed dimensions: %dx%d, want 64x64", res.Gray.Width, res.Gray.Height)
	}
}

func TestInscribedROIShrinksWithLargerTranslation(t *testing.T) {
	small := inscribedROI(Transform{A00: 1, A11: 1, TX: 2, TY: 2}, 100, 100)
	large := inscribedROI(Transform{A00: 1, A11: 1, TX: 20, TY: 20}, 100, 100)
	if large.W >= small.W || large.H >= small.H {
		t.Errorf("larger translation should yield a smaller inscribed ROI: small=%+v large=%+v", small, large)
	}
}

func TestCropBufferExtractsExpectedRegion(t *testing.T) {
	gray := newGrayBuffer(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			gray.Pix[y*8+x] = byte(y*8 + x)
		}
	}
	r := roi{X: 2, Y: 2, W: 4, H: 4}
	cropped := cropBuffer(gray, r)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := byte((y+2)*8 + (x + 2))
			if got := cropped.Pix[y*4+x]; got != want {
				t.Errorf("cropBuffer pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

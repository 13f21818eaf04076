//go:build withcv
// +build withcv

/*
NAME
  backend_cv.go

DESCRIPTION
  backend_cv.go is the production featureBackend, backed by gocv. Corner
  detection and optical flow are grounded directly on
  other_examples/cb5d27d2_nmichlo-norfair-go__camera_motion.go.go's
  getSparseFlow (gocv.GoodFeaturesToTrack, gocv.CalcOpticalFlowPyrLK); warp
  and resize use gocv's standard imgproc bindings, in the same "withcv"
  build-tagged style filter/mog.go and filter/diff.go use for their own
  gocv calls.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

type cvBackend struct{}

func newBackend() featureBackend { return cvBackend{} }

func toMat(g *grayBuffer) gocv.Mat {
	m, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8UC1, g.Pix)
	if err != nil {
		return gocv.NewMatWithSize(g.Height, g.Width, gocv.MatTypeCV8UC1)
	}
	return m
}

func fromMat(m gocv.Mat) *grayBuffer {
	g := newGrayBuffer(m.Cols(), m.Rows())
	copy(g.Pix, m.ToBytes())
	return g
}

func (cvBackend) DetectFeatures(gray *grayBuffer, p Params) []Point {
	img := toMat(gray)
	defer img.Close()

	corners := gocv.NewMat()
	defer corners.Close()

	gocv.GoodFeaturesToTrack(img, &corners, p.FeatureCount, p.QualityLevel, p.MinDistance)

	pts := make([]Point, 0, corners.Rows())
	for i := 0; i < corners.Rows(); i++ {
		v := corners.GetVecfAt(i, 0)
		pts = append(pts, Point{X: float64(v[0]), Y: float64(v[1])})
	}
	return pts
}

func pointsToMat(pts []Point) gocv.Mat {
	data := make([]float32, len(pts)*2)
	for i, p := range pts {
		data[i*2] = float32(p.X)
		data[i*2+1] = float32(p.Y)
	}
	m, err := gocv.NewMatFromBytes(len(pts), 1, gocv.MatTypeCV32FC2, float32SliceToBytes(data))
	if err != nil {
		return gocv.NewMat()
	}
	return m
}

func float32SliceToBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		bits := math.Float32bits(v)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

func (cvBackend) TrackFeatures(prevGray, currGray *grayBuffer, prevPts []Point) ([]Point, []bool, []float64) {
	prevMat := toMat(prevGray)
	defer prevMat.Close()
	currMat := toMat(currGray)
	defer currMat.Close()

	prevPtsMat := pointsToMat(prevPts)
	defer prevPtsMat.Close()

	currPtsMat := gocv.NewMat()
	defer currPtsMat.Close()
	status := gocv.NewMat()
	defer status.Close()
	errMat := gocv.NewMat()
	defer errMat.Close()

	gocv.CalcOpticalFlowPyrLK(prevMat, currMat, prevPtsMat, currPtsMat, &status, &errMat)

	n := len(prevPts)
	curr := make([]Point, n)
	ok := make([]bool, n)
	errs := make([]float64, n)
	for i := 0; i < n && i < currPtsMat.Rows(); i++ {
		v := currPtsMat.GetVecfAt(i, 0)
		curr[i] = Point{X: float64(v[0]), Y: float64(v[1])}
		ok[i] = status.GetUCharAt(i, 0) != 0
		errs[i] = float64(errMat.GetFloatAt(i, 0))
	}
	return curr, ok, errs
}

func (cvBackend) WarpAffine(gray *grayBuffer, t Transform) *grayBuffer {
	src := toMat(gray)
	defer src.Close()

	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer m.Close()
	m.SetDoubleAt(0, 0, t.A00)
	m.SetDoubleAt(0, 1, t.A01)
	m.SetDoubleAt(0, 2, t.TX)
	m.SetDoubleAt(1, 0, t.A10)
	m.SetDoubleAt(1, 1, t.A11)
	m.SetDoubleAt(1, 2, t.TY)

	dst := gocv.NewMatWithSize(gray.Height, gray.Width, gocv.MatTypeCV8UC1)
	defer dst.Close()

	gocv.WarpAffine(src, &dst, m, image.Pt(gray.Width, gray.Height))
	return fromMat(dst)
}

func (cvBackend) Resize(gray *grayBuffer, w, h int) *grayBuffer {
	src := toMat(gray)
	defer src.Close()

	dst := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	defer dst.Close()

	gocv.Resize(src, &dst, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)
	return fromMat(dst)
}

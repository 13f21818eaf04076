/*
NAME
  stabilize-demo

DESCRIPTION
  stabilize-demo is a bare-bones program that drives a stabilize.Wrapper
  over a sequence of synthetic frames (a static background plus a
  deliberately jittered foreground), logs per-frame metrics, and reports
  the final summary. It exercises the library end-to-end without any host
  plugin surface (no property UI, no capture hooks) -- that integration
  belongs to whatever editor or encoder embeds this package, not to this
  repository.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stabilize-demo is a bare-bones harness for exercising the
// stabilize library over synthetic frames.
package main

import (
	"flag"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/stabilize/stabilize"
	"github.com/ausocean/stabilize/stabilize/preset"
)

// Logging configuration, in the shape cmd/looper and cmd/speaker use.
const (
	logPath      = "stabilize-demo.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 7 // days
	logVerbosity = logging.Debug
	logSuppress  = false
)

func main() {
	widthPtr := flag.Int("width", 1280, "frame width")
	heightPtr := flag.Int("height", 720, "frame height")
	framesPtr := flag.Int("frames", 300, "number of synthetic frames to process")
	jitterPtr := flag.Float64("jitter", 4.0, "max simulated per-frame camera jitter, pixels")
	presetDirPtr := flag.String("preset-dir", "presets", "directory holding named parameter presets")
	presetNamePtr := flag.String("preset", "", "name of a preset to load instead of the documented defaults")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stdout), logSuppress)

	params := stabilize.DefaultParams()
	if *presetNamePtr != "" {
		store, err := preset.Open(*presetDirPtr)
		if err != nil {
			log.Fatal("could not open preset store", "error", err)
		}
		loaded, description, err := store.Load(*presetNamePtr)
		if err != nil {
			log.Error("could not load preset; using defaults", "preset", *presetNamePtr, "error", err)
		} else {
			params = loaded
			log.Info("loaded preset", "preset", *presetNamePtr, "description", description)
		}
	}

	w := stabilize.NewWrapper(log)
	if err := w.Initialize(*widthPtr, *heightPtr, params); err != nil {
		log.Fatal("initialize failed", "error", err)
	}

	gen := newJitterSource(*widthPtr, *heightPtr, *jitterPtr)

	for i := 0; i < *framesPtr; i++ {
		f := gen.next()
		_, err := w.ProcessFrame(f)
		if err != nil {
			log.Error("process frame failed", "frame", i, "error", err)
			continue
		}
		if lf := w.LastError(); lf != nil {
			log.Warning("library failure recorded", "frame", i, "error", lf.Error())
		}
	}

	m := w.Metrics()
	log.Info("done",
		"frames", m.FrameCount,
		"meanProcessingTime", m.MeanProcessingTime,
		"slowFrames", m.SlowFrameCount,
		"trackingFailures", m.TrackingFailures,
		"forcedRedetects", m.ForcedRedetects,
	)
}

// jitterSource synthesizes BGRA frames containing a static checkerboard
// background and a small square that jitters frame-to-frame, giving the
// feature tracker real (if simple) corners to lock onto and real
// (if synthetic) camera motion to cancel.
type jitterSource struct {
	width, height int
	jitter        float64
	rng           *rand.Rand
	squareX       float64
	squareY       float64
}

func newJitterSource(width, height int, jitter float64) *jitterSource {
	return &jitterSource{
		width:   width,
		height:  height,
		jitter:  jitter,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		squareX: float64(width) / 2,
		squareY: float64(height) / 2,
	}
}

func (g *jitterSource) next() stabilize.Frame {
	g.squareX += (g.rng.Float64()*2 - 1) * g.jitter
	g.squareY += (g.rng.Float64()*2 - 1) * g.jitter

	stride := g.width * 4
	plane := make([]byte, stride*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			v := byte(32)
			if (x/32+y/32)%2 == 0 {
				v = byte(64)
			}
			off := y*stride + x*4
			plane[off+0], plane[off+1], plane[off+2], plane[off+3] = v, v, v, 255
		}
	}

	sx, sy := int(g.squareX), int(g.squareY)
	for dy := -40; dy < 40; dy++ {
		for dx := -40; dx < 40; dx++ {
			x, y := sx+dx, sy+dy
			if x < 0 || y < 0 || x >= g.width || y >= g.height {
				continue
			}
			off := y*stride + x*4
			plane[off+0], plane[off+1], plane[off+2], plane[off+3] = 220, 220, 220, 255
		}
	}

	return stabilize.Frame{
		Width:   g.width,
		Height:  g.height,
		Format:  stabilize.FormatBGRA,
		Planes:  [][]byte{plane},
		Strides: []int{stride},
	}
}

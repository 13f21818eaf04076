/*
NAME
  bench_test.go

DESCRIPTION
  bench_test.go benchmarks Core.ProcessFrame at common capture
  resolutions, in the same BenchmarkXxx shape filter/filter_test.go uses
  for its per-filter benchmarks.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "testing"

func benchmarkProcessFrame(b *testing.B, w, h int) {
	c := NewCore(testLogger())
	if err := c.Initialize(w, h, DefaultParams()); err != nil {
		b.Fatalf("Initialize failed: %v", err)
	}

	frames := make([]Frame, 4)
	for i := range frames {
		frames[i] = checkerFrame(w, h, i%3, (i*2)%3)
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := c.ProcessFrame(frames[n%len(frames)]); err != nil {
			b.Fatalf("ProcessFrame failed: %v", err)
		}
	}
}

func BenchmarkProcessFrame640x480(b *testing.B)   { benchmarkProcessFrame(b, 640, 480) }
func BenchmarkProcessFrame1280x720(b *testing.B)  { benchmarkProcessFrame(b, 1280, 720) }
func BenchmarkProcessFrame1920x1080(b *testing.B) { benchmarkProcessFrame(b, 1920, 1080) }

/*
NAME
  stub.go

DESCRIPTION
  stub.go implements a pure-Go stand-in extractor for builds without libfprint.

LICENSE
  This file is part of a derivative work descended from the libfprint
  Goodix 5xx (SIGFM) fingerprint driver and its offline replay tools.

  SPDX-License-Identifier: LGPL-2.1-or-later

  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU Lesser General Public License as
  published by the Free Software Foundation, either version 2.1 of the
  License, or (at your option) any later version. This program is
  distributed in the hope that it will be useful, but WITHOUT ANY
  WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE.
*/

//go:build !sigfm_cgo

package sigfm

// cellSize is the side length, in pixels, of the grid cells the stub
// extractor uses to build its signature. 8 divides the conventional
// processed-image dimensions (64x80) evenly.
const cellSize = 8

// varianceThreshold is the minimum intensity range within a cell, widened
// by one pixel on every side (clipped to the image) so that an edge lying
// on a cell boundary is seen, for that cell to be counted as a keypoint.
// Flat, low-contrast regions (finger not present, poor capture) contribute
// no keypoints.
const varianceThreshold = 20

// stubDescriptor is the pure-Go stand-in for a SIGFM keypoint set. It
// summarizes the image as a per-cell mean-intensity signature, which is
// enough to drive every gate, template and study code path deterministically
// without the native FAST-9/BRIEF-256 library.
type stubDescriptor struct {
	signature []int
	keypoints int
}

// StubExtractor is the default, pure-Go Extractor. It is not a biometric
// matcher: it exists so the rest of this module (gates, template curation,
// study engine, the benchmark driver) can be built, exercised and tested
// without a native SIGFM library present. Replace it with the cgo-backed
// extractor (build tag sigfm_cgo) for real accuracy numbers.
type StubExtractor struct{}

// NewStub returns the default pure-Go Extractor.
func NewStub() *StubExtractor { return &StubExtractor{} }

func (StubExtractor) Extract(pixels []byte, w, h int) Descriptor {
	if w <= 0 || h <= 0 || len(pixels) < w*h {
		return nil
	}

	cols := (w + cellSize - 1) / cellSize
	rows := (h + cellSize - 1) / cellSize
	sig := make([]int, 0, cols*rows)
	keypoints := 0

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x0, y0 := cx*cellSize, cy*cellSize
			x1, y1 := min(x0+cellSize, w), min(y0+cellSize, h)

			sum, n := 0, 0
			for y := y0; y < y1; y++ {
				row := y * w
				for x := x0; x < x1; x++ {
					sum += int(pixels[row+x])
					n++
				}
			}
			lo, hi := 255, 0
			for y := max(y0-1, 0); y < min(y1+1, h); y++ {
				for x := max(x0-1, 0); x < min(x1+1, w); x++ {
					v := int(pixels[y*w+x])
					lo, hi = min(lo, v), max(hi, v)
				}
			}
			if n == 0 {
				continue
			}
			mean := sum / n
			sig = append(sig, mean)
			if hi-lo >= varianceThreshold {
				keypoints++
			}
		}
	}

	return &stubDescriptor{signature: sig, keypoints: keypoints}
}

func (StubExtractor) KeypointsCount(d Descriptor) int {
	sd, ok := d.(*stubDescriptor)
	if !ok || sd == nil {
		return 0
	}
	return sd.keypoints
}

func (StubExtractor) MatchScore(a, b Descriptor) int {
	sa, ok1 := a.(*stubDescriptor)
	sb, ok2 := b.(*stubDescriptor)
	if !ok1 || !ok2 || sa == nil || sb == nil || len(sa.signature) != len(sb.signature) {
		return -1
	}
	if len(sa.signature) == 0 {
		return 0
	}

	total := 0
	for i := range sa.signature {
		diff := sa.signature[i] - sb.signature[i]
		if diff < 0 {
			diff = -diff
		}
		total += diff
	}
	avgDiff := total / len(sa.signature)
	score := 255 - avgDiff
	if score < 0 {
		score = 0
	}
	return score
}

func (StubExtractor) Copy(d Descriptor) Descriptor {
	sd, ok := d.(*stubDescriptor)
	if !ok || sd == nil {
		return nil
	}
	sig := make([]int, len(sd.signature))
	copy(sig, sd.signature)
	return &stubDescriptor{signature: sig, keypoints: sd.keypoints}
}

func (StubExtractor) Release(d Descriptor) {}

/*
NAME
  stub_test.go

DESCRIPTION
  stub_test.go tests the pure-Go stand-in extractor.

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

import "testing"

func flatImage(w, h int, v byte) []byte {
	buf := make([]byte, w*h)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func checkerImage(w, h int) []byte {
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cellSize)+(y/cellSize))%2 == 0 {
				buf[y*w+x] = 10
			} else {
				buf[y*w+x] = 240
			}
		}
	}
	return buf
}

func TestStubExtractIdenticalScoresMax(t *testing.T) {
	ex := NewStub()
	pix := checkerImage(64, 80)

	a := ex.Extract(pix, 64, 80)
	b := ex.Extract(pix, 64, 80)
	if a == nil || b == nil {
		t.Fatal("extraction failed on well-formed input")
	}

	score := ex.MatchScore(a, b)
	if score != 255 {
		t.Errorf("identical images: score = %d, want 255", score)
	}
}

func TestStubExtractFlatImageHasNoKeypoints(t *testing.T) {
	ex := NewStub()
	pix := flatImage(64, 80, 128)
	d := ex.Extract(pix, 64, 80)
	if d == nil {
		t.Fatal("extraction failed")
	}
	if kp := ex.KeypointsCount(d); kp != 0 {
		t.Errorf("flat image: keypoints = %d, want 0", kp)
	}
}

func TestStubExtractCheckerHasKeypoints(t *testing.T) {
	ex := NewStub()
	pix := checkerImage(64, 80)
	d := ex.Extract(pix, 64, 80)
	if d == nil {
		t.Fatal("extraction failed")
	}
	if kp := ex.KeypointsCount(d); kp == 0 {
		t.Errorf("checker image: keypoints = 0, want > 0")
	}
}

func TestStubCopyIsIndependent(t *testing.T) {
	ex := NewStub()
	pix := checkerImage(64, 80)
	d := ex.Extract(pix, 64, 80)
	cp := ex.Copy(d)

	if score := ex.MatchScore(d, cp); score != 255 {
		t.Errorf("copy should match original exactly: score = %d", score)
	}

	ex.Release(d)
	// cp must remain usable after releasing the original.
	if score := ex.MatchScore(cp, cp); score != 255 {
		t.Errorf("copy self-match after release of source: score = %d", score)
	}
}

func TestStubExtractDissimilarImagesScoreLower(t *testing.T) {
	ex := NewStub()
	a := ex.Extract(flatImage(64, 80, 0), 64, 80)
	b := ex.Extract(flatImage(64, 80, 255), 64, 80)

	score := ex.MatchScore(a, b)
	if score >= 255 {
		t.Errorf("opposite flat images should not score the max: score = %d", score)
	}
}

func TestStubExtractEmptyReturnsNil(t *testing.T) {
	ex := NewStub()
	if d := ex.Extract(nil, 64, 80); d != nil {
		t.Error("extracting from empty pixels should return nil")
	}
}

func TestStubMatchScoreMismatchedDescriptorsErrors(t *testing.T) {
	ex := NewStub()
	a := ex.Extract(checkerImage(64, 80), 64, 80)
	b := ex.Extract(checkerImage(32, 80), 32, 80)

	if score := ex.MatchScore(a, b); score >= 0 {
		t.Errorf("mismatched signature lengths should error: score = %d", score)
	}
}

/*
NAME
  template_test.go

DESCRIPTION
  template_test.go tests the template store's admission and matching policies.

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

package template

import (
	"testing"

	"github.com/buxel/fpbench/sigfm"
)

// fakeDescriptor and fakeExtractor give template tests full control over
// scores and keypoint counts, independent of sigfm's pixel-driven stub.
type fakeDescriptor struct {
	id       int
	kp       int
	released bool
}

type fakeExtractor struct {
	released []int
	// scores[a][b] gives the match score between descriptor id a and b.
	scores map[[2]int]int
	nextID int
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{scores: make(map[[2]int]int)}
}

func (f *fakeExtractor) new(kp int) *fakeDescriptor {
	f.nextID++
	return &fakeDescriptor{id: f.nextID, kp: kp}
}

func (f *fakeExtractor) setScore(a, b *fakeDescriptor, score int) {
	f.scores[[2]int{a.id, b.id}] = score
	f.scores[[2]int{b.id, a.id}] = score
}

func (f *fakeExtractor) Extract(pixels []byte, w, h int) sigfm.Descriptor { return nil }

func (f *fakeExtractor) KeypointsCount(d sigfm.Descriptor) int {
	return d.(*fakeDescriptor).kp
}

func (f *fakeExtractor) MatchScore(a, b sigfm.Descriptor) int {
	da, db := a.(*fakeDescriptor), b.(*fakeDescriptor)
	if da.id == db.id {
		return 1000
	}
	if sc, ok := f.scores[[2]int{da.id, db.id}]; ok {
		return sc
	}
	return 0
}

func (f *fakeExtractor) Copy(d sigfm.Descriptor) sigfm.Descriptor {
	orig := d.(*fakeDescriptor)
	f.nextID++
	return &fakeDescriptor{id: f.nextID, kp: orig.kp}
}

func (f *fakeExtractor) Release(d sigfm.Descriptor) {
	fd, ok := d.(*fakeDescriptor)
	if !ok || fd == nil {
		return
	}
	fd.released = true
	f.released = append(f.released, fd.id)
}

func TestAddRespectsCapacity(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 2)

	if !s.Add(ex.new(10), 10) {
		t.Fatal("first add should succeed")
	}
	if !s.Add(ex.new(10), 10) {
		t.Fatal("second add should succeed")
	}
	if s.Add(ex.new(10), 10) {
		t.Fatal("third add should fail: store is at capacity")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestQualityRankedAddDegeneratesToPlainAddBelowMinFill(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 4)

	for i := 0; i < 4; i++ {
		d := ex.new(1) // uniformly weak keypoint counts
		if !s.QualityRankedAdd(d, 1, 4) {
			t.Fatalf("add %d should succeed: min_fill == capacity, every add occurs below min_fill", i)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
}

func TestQualityRankedAddRejectsWeakerThanWeakest(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 2)
	s.Add(ex.new(50), 50)
	s.Add(ex.new(50), 50)

	weak := ex.new(10)
	if s.QualityRankedAdd(weak, 10, 1) {
		t.Fatal("weaker candidate should be refused once min_fill is reached")
	}
	if !weak.released {
		t.Fatal("refused candidate must be released")
	}
}

func TestQualityRankedAddReplacesWeakestWhenFull(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 2)
	weakD := ex.new(10)
	s.Add(weakD, 10)
	s.Add(ex.new(50), 50)

	strong := ex.new(99)
	if !s.QualityRankedAdd(strong, 99, 0) {
		t.Fatal("stronger candidate should replace the weakest slot")
	}
	if !weakD.released {
		t.Fatal("evicted descriptor must be released")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (replace, not grow)", s.Len())
	}
}

func TestWeakestTiesBreakToLowestIndex(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	s.Add(ex.new(20), 20)
	s.Add(ex.new(10), 10)
	s.Add(ex.new(10), 10)

	if w := s.Weakest(); w != 1 {
		t.Fatalf("Weakest() = %d, want 1 (first occurrence of tied minimum)", w)
	}
}

func TestRemoveShiftsSlotsDown(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	a, b, c := ex.new(1), ex.new(2), ex.new(3)
	s.Add(a, 1)
	s.Add(b, 2)
	s.Add(c, 3)

	s.Remove(0)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Slot(0).Descriptor != sigfm.Descriptor(b) {
		t.Fatal("slot 1 should have shifted down to slot 0")
	}
	if !a.released {
		t.Fatal("removed descriptor must be released")
	}
}

func TestMatchReturnsMaxScoreAndIndex(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	a, b, c := ex.new(1), ex.new(1), ex.new(1)
	s.Add(a, 1)
	s.Add(b, 1)
	s.Add(c, 1)

	probe := ex.new(1)
	ex.setScore(a, probe, 5)
	ex.setScore(b, probe, 42)
	ex.setScore(c, probe, 7)

	result := s.Match(probe)
	if result.Score != 42 || result.Index != 1 {
		t.Fatalf("Match() = %+v, want {Score:42 Index:1}", result)
	}
}

func TestCrossScoresAverageAgainstOthers(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	a, b, c := ex.new(1), ex.new(1), ex.new(1)
	s.Add(a, 1)
	s.Add(b, 1)
	s.Add(c, 1)

	ex.setScore(a, b, 10)
	ex.setScore(a, c, 20)
	ex.setScore(b, c, 30)

	scores := s.CrossScores()
	// a: (10+20)/2 = 15
	if scores[0] != 15 {
		t.Errorf("scores[0] = %d, want 15", scores[0])
	}
	// b: (10+30)/2 = 20
	if scores[1] != 20 {
		t.Errorf("scores[1] = %d, want 20", scores[1])
	}
	// c: (20+30)/2 = 25
	if scores[2] != 25 {
		t.Errorf("scores[2] = %d, want 25", scores[2])
	}
}

func TestReplacePreservesIndexAndReleasesOld(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	a, b := ex.new(1), ex.new(1)
	s.Add(a, 1)
	s.Add(b, 1)

	replacement := ex.new(99)
	s.Replace(0, replacement, 99)

	if !a.released {
		t.Fatal("old descriptor at slot 0 must be released")
	}
	if s.Slot(0).Descriptor != sigfm.Descriptor(replacement) || s.Slot(0).KeypointsAtInsert != 99 {
		t.Fatalf("slot 0 = %+v, want replacement installed", s.Slot(0))
	}
	if s.Slot(1).Descriptor != sigfm.Descriptor(b) {
		t.Fatal("slot 1 must be untouched by Replace(0, ...)")
	}
}

func TestProbeAverageTreatsNegativeScoreAsZero(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	a, b := ex.new(1), ex.new(1)
	s.Add(a, 1)
	s.Add(b, 1)

	probe := ex.new(1)
	ex.setScore(a, probe, -1)
	ex.setScore(b, probe, 20)

	if avg := s.ProbeAverage(probe); avg != 10 {
		t.Fatalf("ProbeAverage() = %d, want 10 ((0+20)/2)", avg)
	}
}

func TestCloseReleasesEverySlotOnce(t *testing.T) {
	ex := newFakeExtractor()
	s := New(ex, 3)
	a, b := ex.new(1), ex.new(1)
	s.Add(a, 1)
	s.Add(b, 1)

	s.Close()

	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after Close", s.Len())
	}
	if len(ex.released) != 2 {
		t.Fatalf("released %d descriptors, want 2", len(ex.released))
	}
}

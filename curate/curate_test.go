/*
NAME
  curate_test.go

DESCRIPTION
  curate_test.go tests the curation policies against a fake extractor.

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

package curate

import (
	"testing"

	"github.com/buxel/fpbench/sigfm"
	"github.com/buxel/fpbench/template"
)

type fakeDescriptor struct {
	id int
	kp int
}

type fakeExtractor struct {
	nextID int
	scores map[[2]int]int
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
func (f *fakeExtractor) KeypointsCount(d sigfm.Descriptor) int            { return d.(*fakeDescriptor).kp }

func (f *fakeExtractor) MatchScore(a, b sigfm.Descriptor) int {
	da, db := a.(*fakeDescriptor), b.(*fakeDescriptor)
	if sc, ok := f.scores[[2]int{da.id, db.id}]; ok {
		return sc
	}
	return 0
}

func (f *fakeExtractor) Copy(d sigfm.Descriptor) sigfm.Descriptor {
	f.nextID++
	return &fakeDescriptor{id: f.nextID, kp: d.(*fakeDescriptor).kp}
}

func (f *fakeExtractor) Release(d sigfm.Descriptor) {}

func TestSortTruncateNoOpWhenAtTarget(t *testing.T) {
	ex := newFakeExtractor()
	s := template.New(ex, 4)
	s.Add(ex.new(1), 1)
	s.Add(ex.new(1), 1)

	SortTruncate(s, 2)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no-op)", s.Len())
	}
}

func TestSortTruncateKeepsHighestCrossScores(t *testing.T) {
	ex := newFakeExtractor()
	s := template.New(ex, 4)
	a := ex.new(1)
	b := ex.new(1)
	c := ex.new(1)
	s.Add(a, 1)
	s.Add(b, 1)
	s.Add(c, 1)

	// a is similar to everyone (strong cross-score); b and c barely match.
	ex.setScore(a, b, 90)
	ex.setScore(a, c, 90)
	ex.setScore(b, c, 0)

	SortTruncate(s, 1)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Slot(0).Descriptor != sigfm.Descriptor(a) {
		t.Fatal("survivor should be the slot with the highest cross-score")
	}
}

func TestDiversityPruneIsNoOpAtTarget(t *testing.T) {
	ex := newFakeExtractor()
	s := template.New(ex, 4)
	s.Add(ex.new(1), 1)
	s.Add(ex.new(1), 1)

	DiversityPrune(s, 2)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no-op)", s.Len())
	}
}

func TestDiversityPruneTerminatesAtTargetAndIsMonotone(t *testing.T) {
	ex := newFakeExtractor()
	s := template.New(ex, 6)
	ds := make([]*fakeDescriptor, 5)
	for i := range ds {
		ds[i] = ex.new(10 + i)
		s.Add(ds[i], ds[i].kp)
	}

	DiversityPrune(s, 2)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestDiversityPruneDropsLowerQualityOfMostSimilarPair(t *testing.T) {
	ex := newFakeExtractor()
	s := template.New(ex, 4)
	weak := ex.new(10)
	strong := ex.new(90)
	unrelated := ex.new(50)
	s.Add(weak, 10)
	s.Add(strong, 90)
	s.Add(unrelated, 50)

	// weak and strong are near-duplicates; unrelated is dissimilar to both.
	ex.setScore(weak, strong, 100)
	ex.setScore(weak, unrelated, 1)
	ex.setScore(strong, unrelated, 1)

	DiversityPrune(s, 2)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if s.Slot(i).Descriptor == sigfm.Descriptor(weak) {
			t.Fatal("the lower-keypoint member of the most similar pair should have been dropped")
		}
	}
}

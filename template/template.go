/*
NAME
  template.go

DESCRIPTION
  template.go implements the bounded, ranked template store.

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

// Package template implements the bounded, ranked collection of feature
// descriptors enrolled for one identity: admission policies, removal, and
// pairwise matching against a probe. A Store owns every descriptor it
// holds and releases it exactly once, whether by explicit Remove, eviction
// during QualityRankedAdd, or Close.
package template

import "github.com/buxel/fpbench/sigfm"

// DefaultCapacity is the conventional maximum number of sub-templates
// (slots) held per identity.
const DefaultCapacity = 128

// Slot is one entry in a Store: an owned descriptor plus the keypoint
// count it carried at insertion and a cached cross-score.
type Slot struct {
	Descriptor        sigfm.Descriptor
	KeypointsAtInsert int

	// CrossScore is the average pairwise match score against every other
	// occupied slot, valid only immediately after a call to CrossScores; it
	// goes stale the moment a slot is added, removed or replaced.
	CrossScore int
}

// Store is a fixed-capacity, ordered collection of Slots, generic over any
// sigfm.Extractor.
type Store struct {
	extractor sigfm.Extractor
	slots     []Slot
	capacity  int
}

// New returns an empty Store with the given capacity, scored with ex.
func New(ex sigfm.Extractor, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{extractor: ex, capacity: capacity, slots: make([]Slot, 0, capacity)}
}

// Len returns the number of occupied slots.
func (s *Store) Len() int { return len(s.slots) }

// Capacity returns the store's maximum slot count.
func (s *Store) Capacity() int { return s.capacity }

// Slot returns a copy of the slot at index i.
func (s *Store) Slot(i int) Slot { return s.slots[i] }

// Extractor returns the Store's scoring collaborator.
func (s *Store) Extractor() sigfm.Extractor { return s.extractor }

// Add appends d as a new slot if capacity remains, returning false (and
// leaving d untouched — ownership does not transfer) if the store is full.
func (s *Store) Add(d sigfm.Descriptor, keypoints int) bool {
	if len(s.slots) >= s.capacity {
		return false
	}
	s.slots = append(s.slots, Slot{Descriptor: d, KeypointsAtInsert: keypoints})
	return true
}

// QualityRankedAdd admits d using the quality-ranked policy: below
// minFill occupied slots, d is appended unconditionally. At or above
// minFill, d is only admitted if its keypoint count exceeds the current
// weakest slot's keypoint count at insertion; if space remains it is
// appended, otherwise it replaces the weakest slot (which is released).
// If d does not qualify, it is released and QualityRankedAdd returns
// false.
func (s *Store) QualityRankedAdd(d sigfm.Descriptor, keypoints, minFill int) bool {
	if len(s.slots) < minFill {
		if s.Add(d, keypoints) {
			return true
		}
		s.extractor.Release(d)
		return false
	}

	weak := s.Weakest()
	if weak < 0 || keypoints <= s.slots[weak].KeypointsAtInsert {
		s.extractor.Release(d)
		return false
	}

	if len(s.slots) < s.capacity {
		return s.Add(d, keypoints)
	}

	s.extractor.Release(s.slots[weak].Descriptor)
	s.slots[weak] = Slot{Descriptor: d, KeypointsAtInsert: keypoints}
	return true
}

// Weakest returns the index of the slot with the lowest keypoint count at
// insertion, breaking ties by lowest index. It returns -1 if the store is
// empty.
func (s *Store) Weakest() int {
	if len(s.slots) == 0 {
		return -1
	}
	weak := 0
	for i := 1; i < len(s.slots); i++ {
		if s.slots[i].KeypointsAtInsert < s.slots[weak].KeypointsAtInsert {
			weak = i
		}
	}
	return weak
}

// Remove releases the descriptor at slot i and shifts higher slots down
// by one.
func (s *Store) Remove(i int) {
	s.extractor.Release(s.slots[i].Descriptor)
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
}

// MatchResult is the outcome of matching a probe against a Store.
type MatchResult struct {
	Score int
	Index int
}

// Match scores probe against every occupied slot and returns the maximum
// score and the winning slot's index. Index is -1 if the store is empty.
func (s *Store) Match(probe sigfm.Descriptor) MatchResult {
	best := MatchResult{Score: -1, Index: -1}
	for i, slot := range s.slots {
		score := s.extractor.MatchScore(slot.Descriptor, probe)
		if score > best.Score {
			best = MatchResult{Score: score, Index: i}
		}
	}
	return best
}

// CrossScores recomputes and caches, in each slot's CrossScore field, the
// average pairwise match score of that slot against every other occupied
// slot. It returns the freshly computed scores. A negative MatchScore
// (matcher error) is treated as zero when averaging, matching the
// reference implementation's error handling during study and curation
// scans.
func (s *Store) CrossScores() []int {
	n := len(s.slots)
	scores := make([]int, n)
	if n < 2 {
		for i := range scores {
			s.slots[i].CrossScore = 0
		}
		return scores
	}

	for i := range s.slots {
		total := 0
		for j := range s.slots {
			if i == j {
				continue
			}
			sc := s.extractor.MatchScore(s.slots[i].Descriptor, s.slots[j].Descriptor)
			if sc < 0 {
				sc = 0
			}
			total += sc
		}
		avg := total / (n - 1)
		scores[i] = avg
		s.slots[i].CrossScore = avg
	}
	return scores
}

// Replace releases the descriptor currently at slot i and installs d in
// its place, updating the slot's keypoint count. The slot's index, and
// any paired external state keyed by that index (such as a study.State's
// hit count), is preserved — unlike Remove, which shifts later slots down.
func (s *Store) Replace(i int, d sigfm.Descriptor, keypoints int) {
	s.extractor.Release(s.slots[i].Descriptor)
	s.slots[i] = Slot{Descriptor: d, KeypointsAtInsert: keypoints}
}

// ProbeAverage computes the average pairwise match score of probe against
// every occupied slot. A negative (error) score from the extractor is
// treated as zero, matching the reference study algorithm's error
// handling. It returns zero for an empty store.
func (s *Store) ProbeAverage(probe sigfm.Descriptor) int {
	if len(s.slots) == 0 {
		return 0
	}
	total := 0
	for _, slot := range s.slots {
		sc := s.extractor.MatchScore(slot.Descriptor, probe)
		if sc < 0 {
			sc = 0
		}
		total += sc
	}
	return total / len(s.slots)
}

// Close releases every occupied slot's descriptor in one pass and empties
// the store.
func (s *Store) Close() {
	for _, slot := range s.slots {
		s.extractor.Release(slot.Descriptor)
	}
	s.slots = s.slots[:0]
}

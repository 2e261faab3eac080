/*
NAME
  state.go

DESCRIPTION
  state.go holds the per-template bookkeeping the study engines read and mutate.

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

// Package study implements runtime template adaptation: replacing weak
// enrolled entries with high-confidence probes observed during
// verification. Two variants are provided, a naive always-replace-the-
// weakest policy and a multi-layer policy with degradation guards.
package study

import "github.com/buxel/fpbench/template"

// State is the per-template bookkeeping the study engines read and
// mutate: hit counts, the keypoint count each slot carried when it was
// last installed, and the global counters the multi-layer engine's
// degradation lock depends on. State is paired with a *template.Store by
// slot index and must be kept in lockstep with it: curation (sort or
// prune) reorders or drops slots, so State is (re)initialized fresh from
// the store immediately after enrollment and curation, before the first
// verification — the reference design deliberately does not attempt to
// carry hit counts through a reordering.
type State struct {
	Hits              []int
	KeypointsAtInsert []int
	TotalMatches      int
	FailedUpdates     int
	Locked            bool
}

// NewState snapshots s's current slot keypoint counts into a fresh State
// with zeroed hit counts and counters. Call this once, after enrollment
// and any curation pass, before the first verification.
func NewState(s *template.Store) *State {
	n := s.Len()
	st := &State{
		Hits:              make([]int, n),
		KeypointsAtInsert: make([]int, n),
	}
	for i := 0; i < n; i++ {
		st.KeypointsAtInsert[i] = s.Slot(i).KeypointsAtInsert
	}
	return st
}

// RecordHit increments the hit count of the slot that won an accepted
// match. It is called on every accepted match regardless of whether study
// is enabled or subsequently performed, since the multi-layer engine's L5
// observation gate counts matches independently of study outcomes.
func (st *State) RecordHit(bestIdx int) {
	st.TotalMatches++
	if bestIdx >= 0 && bestIdx < len(st.Hits) {
		st.Hits[bestIdx]++
	}
}

// installed records that slot i now holds a freshly-installed descriptor:
// its hit count resets to zero and its keypoint count is updated to the
// probe's.
func (st *State) installed(i, keypoints int) {
	st.Hits[i] = 0
	st.KeypointsAtInsert[i] = keypoints
}

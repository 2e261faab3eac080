/*
NAME
  curate.go

DESCRIPTION
  curate.go implements post-enrollment template curation policies.

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

// Package curate implements the two post-enrollment curation policies
// that reduce an enrolled template.Store to a target size: ranking by
// cross-score, and iteratively pruning the most mutually similar pair in
// favor of diversity.
package curate

import "github.com/buxel/fpbench/template"

// DefaultTargetCount is the curation target used when a run does not
// specify one, matching template.DefaultCapacity.
const DefaultTargetCount = template.DefaultCapacity

// SortTruncate computes every slot's cross-score (mean pairwise score
// against every other slot), sorts slots by cross-score descending, and
// releases and drops every slot beyond targetCount. Sort stability across
// equal scores is not guaranteed. If the store already holds targetCount
// or fewer slots, SortTruncate is a no-op.
func SortTruncate(s *template.Store, targetCount int) {
	if s.Len() <= targetCount {
		return
	}

	scores := s.CrossScores()
	order := make([]int, s.Len())
	for i := range order {
		order[i] = i
	}

	// Descending sort by cross-score; simple insertion sort keeps this
	// package dependency-free and its behavior easy to audit against the
	// O(n^2) curation scans the rest of this package already performs.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && scores[order[j]] > scores[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	drop := order[targetCount:]
	// Remove highest indices first so earlier removals don't shift the
	// indices of slots still queued for removal.
	sortDescending(drop)
	for _, idx := range drop {
		s.Remove(idx)
	}
}

// DiversityPrune repeatedly finds the pair of slots with the maximum
// pairwise match score (the two most redundant entries) and removes the
// one with the smaller keypoint count (ties broken by lower index), until
// the store holds targetCount slots or fewer. DiversityPrune never
// increases the slot count.
func DiversityPrune(s *template.Store, targetCount int) {
	for s.Len() > targetCount {
		i, j, ok := mostSimilarPair(s)
		if !ok {
			return
		}

		drop := i
		if s.Slot(j).KeypointsAtInsert < s.Slot(i).KeypointsAtInsert {
			drop = j
		} else if s.Slot(j).KeypointsAtInsert == s.Slot(i).KeypointsAtInsert && j < i {
			drop = j
		}
		s.Remove(drop)
	}
}

// mostSimilarPair brute-force scans every pair of occupied slots and
// returns the indices of the pair with the highest pairwise match score.
// Ties are broken by the earliest (i, j) encountered in row-major scan
// order, keeping the result deterministic.
func mostSimilarPair(s *template.Store) (i, j int, ok bool) {
	n := s.Len()
	if n < 2 {
		return 0, 0, false
	}

	ex := s.Extractor()
	best := -1
	bi, bj := 0, 1
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			score := ex.MatchScore(s.Slot(a).Descriptor, s.Slot(b).Descriptor)
			if score > best {
				best = score
				bi, bj = a, b
			}
		}
	}
	return bi, bj, true
}

func sortDescending(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] > xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

/*
NAME
  naive.go

DESCRIPTION
  naive.go implements the naive always-replace-the-weakest study engine.

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

package study

import (
	"github.com/buxel/fpbench/sigfm"
	"github.com/buxel/fpbench/template"
)

// NaiveEngine always replaces the template's current weakest slot (by
// cross-score) with an accepted probe whose average score against the
// template exceeds that slot's cross-score. It tracks no degradation
// state; RecordHit is a no-op.
type NaiveEngine struct {
	store *template.Store
}

// NewNaive returns a study Engine implementing the naive (always
// replace-the-weakest-if-better) policy over s.
func NewNaive(s *template.Store) *NaiveEngine {
	return &NaiveEngine{store: s}
}

func (e *NaiveEngine) Study(probe sigfm.Descriptor, probeKeypoints int) bool {
	if e.store.Len() < 2 {
		return false
	}

	probeAvg := e.store.ProbeAverage(probe)
	scores := e.store.CrossScores()
	worst := lowestScoreIndex(scores)

	if probeAvg <= scores[worst] {
		return false
	}

	e.store.Replace(worst, e.store.Extractor().Copy(probe), probeKeypoints)
	return true
}

// RecordHit is a no-op: the naive engine carries no hit-count state.
func (e *NaiveEngine) RecordHit(bestIdx int) {}

// lowestScoreIndex returns the index of the smallest value in scores,
// breaking ties by lowest index. scores must be non-empty.
func lowestScoreIndex(scores []int) int {
	worst := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[worst] {
			worst = i
		}
	}
	return worst
}

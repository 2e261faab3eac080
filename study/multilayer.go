/*
NAME
  multilayer.go

DESCRIPTION
  multilayer.go implements the degradation-guarded multi-layer study engine.

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

// Degradation-guard constants for MultiLayerEngine, per the layer table:
// an observation floor before study is trusted at all, a minimum probe
// quality, and a failure budget before the engine locks itself off
// permanently.
const (
	FailedMax  = 20
	MinObs     = 5
	StudyMinKP = 15
)

// MultiLayerEngine guards template replacement behind six layers (a
// permanent degradation lock, an observation gate, probe quality, anchor
// protection, fewest-hits target selection and a relative quality
// comparison) followed by a benefit check,
// to prevent a run of lucky-but-low-quality probes from eroding template
// quality over a long verification session.
type MultiLayerEngine struct {
	store *template.Store
	state *State
}

// NewMultiLayer returns a study Engine implementing the layered
// degradation-guarded policy over s, using st for its counters. st should
// normally come from NewState(s), snapshotted immediately after
// enrollment and curation.
func NewMultiLayer(s *template.Store, st *State) *MultiLayerEngine {
	return &MultiLayerEngine{store: s, state: st}
}

// State returns the engine's study state.
func (e *MultiLayerEngine) State() *State { return e.state }

func (e *MultiLayerEngine) RecordHit(bestIdx int) {
	e.state.RecordHit(bestIdx)
}

func (e *MultiLayerEngine) Study(probe sigfm.Descriptor, probeKeypoints int) bool {
	// L6: degradation lock. Once locked, the engine must never mutate the
	// template again, including its own counters.
	if e.state.Locked {
		return false
	}

	// Structural precondition shared with the naive engine: study makes
	// no sense with fewer than two slots (no anchor vs. target
	// distinction is possible).
	if e.store.Len() < 2 {
		return false
	}

	// L5: observation gate.
	if e.state.TotalMatches < MinObs {
		return e.fail()
	}

	// L1: probe quality.
	if probeKeypoints < StudyMinKP {
		return e.fail()
	}

	scores := e.store.CrossScores()

	// L3: anchor protection — the slot with the highest cross-score is
	// never a replacement target.
	anchor := highestScoreIndex(scores)

	// L4: target selection among non-anchor slots: fewest hits, tie
	// broken by lower cross-score, tie broken by lower index.
	target := -1
	for i := range scores {
		if i == anchor {
			continue
		}
		if target == -1 {
			target = i
			continue
		}
		if betterTarget(e.state.Hits[i], scores[i], i, e.state.Hits[target], scores[target], target) {
			target = i
		}
	}
	if target == -1 {
		// Only the anchor occupies the store (shouldn't happen once
		// Len() >= 2, kept as a defensive no-op).
		return false
	}

	// L2: quality comparison — probe must carry at least 60% of the
	// target's keypoint count at insertion. Kept as integer arithmetic
	// (probe_kp*10 >= target_kp*6) to avoid float rounding.
	targetKP := e.state.KeypointsAtInsert[target]
	if probeKeypoints*10 < targetKP*6 {
		return e.fail()
	}

	// Benefit check.
	probeAvg := e.store.ProbeAverage(probe)
	if probeAvg <= scores[target] {
		return e.fail()
	}

	e.store.Replace(target, e.store.Extractor().Copy(probe), probeKeypoints)
	e.state.installed(target, probeKeypoints)
	e.state.FailedUpdates = 0
	return true
}

// fail records a guard failure and trips the permanent lock once the
// failure budget is exceeded.
func (e *MultiLayerEngine) fail() bool {
	e.state.FailedUpdates++
	if e.state.FailedUpdates > FailedMax {
		e.state.Locked = true
	}
	return false
}

func highestScoreIndex(scores []int) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// betterTarget reports whether candidate (hits, crossScore, index) is a
// better L4 target than current, i.e. fewer hits, or tied hits with a
// lower cross-score, or tied on both with a lower index.
func betterTarget(candHits, candScore, candIdx, curHits, curScore, curIdx int) bool {
	if candHits != curHits {
		return candHits < curHits
	}
	if candScore != curScore {
		return candScore < curScore
	}
	return candIdx < curIdx
}

/*
NAME
  report.go

DESCRIPTION
  report.go defines the enrollment and verification report types.

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

package bench

// EnrollReport summarizes one Driver.Enroll run.
type EnrollReport struct {
	Attempted int
	Enrolled  int
	Rejected  int

	// KeypointMin, KeypointMax and KeypointMean summarize the keypoint
	// counts of every frame the extractor produced, including frames the
	// keypoint gate or admission then rejected. KeypointMean is only filled
	// in when at least one frame was enrolled.
	KeypointMin  int
	KeypointMax  int
	KeypointMean int
}

// VerifyRecord is one verification attempt's outcome, the row data
// spec.md's CSV output (idx,file,result,score,kp,study_updated) is drawn
// from.
type VerifyRecord struct {
	Index        int
	File         string
	Result       Outcome
	Score        int
	Keypoints    int
	StudyUpdated bool
}

// VerifyReport summarizes one Driver.Verify run.
type VerifyReport struct {
	Matches int
	Fails   int
	Skips   int
	Errors  int

	// FRR is Fails / (Matches + Fails), or zero if that denominator is
	// zero. Skips and errors never enter the calculation.
	FRR float64

	// ScoreMin, ScoreMax and ScoreMean summarize the scores of every
	// MATCH or FAIL record (the only records that carry a meaningful
	// score).
	ScoreMin  int
	ScoreMax  int
	ScoreMean float64

	// Updates is the number of verification attempts that triggered a
	// study engine template replacement.
	Updates int

	Records []VerifyRecord
}

// ExitCode is 0 if the run had no FAILs, 1 otherwise, per spec.md §6.
func (r VerifyReport) ExitCode() int {
	if r.Fails > 0 {
		return 1
	}
	return 0
}

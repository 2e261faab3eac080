/*
NAME
  outcome.go

DESCRIPTION
  outcome.go defines the MATCH/FAIL/SKIP/ERROR verification outcome enum.

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

// Outcome classifies one verification attempt.
type Outcome int

const (
	// MATCH: probe scored at or above the match threshold.
	MATCH Outcome = iota
	// FAIL: probe scored below the match threshold. Counts against FRR.
	FAIL
	// SKIP: a quality gate rejected the frame, or feature extraction
	// failed. Never counts against FRR.
	SKIP
	// ERROR: the frame could not be read, or the matcher reported an
	// internal error (negative score). Never counts against FRR.
	ERROR
)

func (o Outcome) String() string {
	switch o {
	case MATCH:
		return "MATCH"
	case FAIL:
		return "FAIL"
	case SKIP:
		return "SKIP"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

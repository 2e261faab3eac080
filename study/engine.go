/*
NAME
  engine.go

DESCRIPTION
  engine.go defines the runtime template-study Engine contract.

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

import "github.com/buxel/fpbench/sigfm"

// Engine mutates a template.Store at verification time, replacing a weak
// entry with a copy of an accepted probe when doing so is likely to
// improve future matches.
type Engine interface {
	// Study considers replacing a template slot with a copy of probe,
	// which carries probeKeypoints keypoints. It returns true if a
	// replacement was made.
	Study(probe sigfm.Descriptor, probeKeypoints int) bool

	// RecordHit notes that slot bestIdx won an accepted match. It must be
	// called on every accepted match, independent of whether Study is
	// subsequently invoked.
	RecordHit(bestIdx int)
}

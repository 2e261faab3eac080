/*
NAME
  gate.go

DESCRIPTION
  gate.go implements the stddev and keypoint quality gates.

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

// Package gate implements the two-stage quality gate that separates
// "finger present and clear enough to analyze" from "ask the user to
// recapture" — a distinction the benchmark driver must preserve because,
// on the live device, neither condition consumes a verification attempt.
package gate

import "github.com/buxel/fpbench/pixel"

// DefaultStddevThreshold is the minimum acceptable pixel standard
// deviation of a processed image (a proxy for "finger present with
// contrast").
const DefaultStddevThreshold = 25

// DefaultKeypointThreshold is the minimum acceptable keypoint count
// reported by the feature extractor.
const DefaultKeypointThreshold = 25

// Stddev evaluates the pre-extraction gate: reject if the processed
// image's pixel standard deviation falls below threshold. It returns the
// measured statistics alongside the pass/fail verdict so callers can log
// or report them without re-measuring.
func Stddev(img pixel.Image, threshold int) (ok bool, stats pixel.Stats) {
	stats = pixel.Measure(img)
	return stats.StdDev >= threshold, stats
}

// Keypoints evaluates the post-extraction gate: reject if the detected
// keypoint count falls below threshold.
func Keypoints(count, threshold int) bool {
	return count >= threshold
}

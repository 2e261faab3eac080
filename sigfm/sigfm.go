/*
NAME
  sigfm.go

DESCRIPTION
  sigfm.go defines the Extractor and Descriptor contract.

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

// Package sigfm defines the contract for the feature-extraction and
// pairwise-scoring collaborator used by template, curate, study and bench.
// The real implementation (FAST-9 keypoints + BRIEF-256 descriptors) lives
// in libfprint's SIGFM module and is treated here as an opaque capability:
// extract, count keypoints, score a pair, copy, release. Everything above
// this package is generic over any Extractor satisfying the interface.
package sigfm

// Descriptor is an opaque handle to a set of detected keypoints and their
// binary descriptors for one image. Callers never inspect its contents;
// they extract, score, copy and release it through an Extractor.
type Descriptor interface{}

// Extractor is the feature-extraction and scoring collaborator. A Store,
// curation policy or study engine is generic over any Extractor.
//
// Implementations must treat negative scores from MatchScore as errors,
// and KeypointsCount must be safe to call on any Descriptor Extract
// returned (including one later Copy'd).
type Extractor interface {
	// Extract detects keypoints and computes descriptors for an 8-bit
	// grayscale image of the given dimensions. It returns nil if
	// extraction failed (too few features, corrupt input, and so on).
	Extract(pixels []byte, w, h int) Descriptor

	// KeypointsCount returns the number of keypoints held by d.
	KeypointsCount(d Descriptor) int

	// MatchScore computes a pairwise similarity score between a and b.
	// Larger means more similar; a negative value indicates an internal
	// matcher error.
	MatchScore(a, b Descriptor) int

	// Copy returns an independent Descriptor holding the same keypoints
	// and descriptors as d. The caller owns the returned Descriptor and
	// must Release it separately from d.
	Copy(d Descriptor) Descriptor

	// Release frees resources associated with d. Release is a no-op on
	// a nil Descriptor.
	Release(d Descriptor)
}

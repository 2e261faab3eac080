/*
NAME
  pipeline.go

DESCRIPTION
  pipeline.go implements the fixed-order preprocessing pipeline and its options.

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

package pixel

// Default dimensions and parameters, matching the goodix5xx driver this
// pipeline replays offline.
const (
	DefaultScanWidth = 88
	DefaultHeight    = 80
	DefaultWidth     = 64
)

// Options configures a Process run. A zero Options uses no calibration
// subtraction, the default boost, and performs both unsharp masking and
// cropping.
type Options struct {
	// Calibration, if non-nil, is subtracted from the raw frame before
	// the percentile squash. If nil, Stage 1 is skipped.
	Calibration *Frame

	// CropWidth is the target width for the center crop. Zero means
	// DefaultWidth.
	CropWidth int

	// Boost is the unsharp mask sharpening factor. Zero means
	// DefaultBoost. Ignored if SkipUnsharp is true.
	Boost int

	SkipUnsharp bool
	SkipCrop    bool

	// Preview, when true, opens a side-by-side raw/processed window (only
	// compiled in by the debug and withcv build tags; a no-op otherwise).
	Preview bool
}

// Process runs the full four-stage pipeline over a raw frame: calibration
// subtract (if configured), percentile squash, unsharp mask, center crop.
func Process(raw Frame, opts Options) Image {
	frame := raw
	if opts.Calibration != nil {
		frame = Subtract(raw, *opts.Calibration)
	}

	img := SquashPercentile(frame)

	if !opts.SkipUnsharp {
		boost := opts.Boost
		if boost == 0 {
			boost = DefaultBoost
		}
		img = Unsharp(img, boost)
	}

	if !opts.SkipCrop {
		cropWidth := opts.CropWidth
		if cropWidth == 0 {
			cropWidth = DefaultWidth
		}
		img = Crop(img, cropWidth)
	}

	if opts.Preview {
		p := newPreview("fppreprocess")
		defer p.close()
		p.show(SquashPercentile(frame), img)
	}

	return img
}

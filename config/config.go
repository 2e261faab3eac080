/*
NAME
  config.go

DESCRIPTION
  config.go holds the run configuration used by cmd/fpbench.

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

// Package config holds the run configuration used by cmd/fpbench, in the
// style of revid/config.Config: a single
// exported struct of plain fields plus a Logger and a Validate method
// that fills in defaults and logs them.
package config

import (
	"github.com/ausocean/utils/logging"

	"github.com/buxel/fpbench/bench"
	"github.com/buxel/fpbench/curate"
	"github.com/buxel/fpbench/gate"
	"github.com/buxel/fpbench/pixel"
)

// Config holds the benchmark driver's CLI-settable values, including the
// preprocessing geometry and stage switches it applies to raw inputs, plus
// the Logger every stateful component is constructed with.
// cmd/fppreprocess parses its own flags and does not use Config.
type Config struct {
	Logger logging.Logger

	// Geometry. ScanWidth and Height describe the raw sensor frame;
	// CropWidth is stage 4's target width.
	ScanWidth int
	Height    int
	CropWidth int

	// Boost is the unsharp mask sharpening factor (pixel.DefaultBoost if
	// zero).
	Boost int

	SkipUnsharp bool
	SkipCrop    bool

	// StddevThreshold and KeypointThreshold are the two quality gate
	// floors (gate.DefaultStddevThreshold / DefaultKeypointThreshold if
	// zero).
	StddevThreshold   int
	KeypointThreshold int

	// ScoreThreshold is the match/fail boundary for verification.
	// Resolved default: 6 (the production benchmark's value; see
	// DESIGN.md for the historical 40 value this supersedes).
	ScoreThreshold int

	// StudyThreshold is the minimum match score a verification must clear
	// before study is even considered.
	StudyThreshold int

	// TemplateStudy enables the naive study engine. StudyV2 enables the
	// multi-layer engine instead and implies TemplateStudy.
	TemplateStudy bool
	StudyV2       bool

	// QualityEnroll selects template.Store.QualityRankedAdd over plain
	// Add during enrollment.
	QualityEnroll bool

	// MinFillFraction sets QualityRankedAdd's min_fill as a fraction of
	// MaxSubtemplates. Resolved default: 0.5 (spec's open question).
	MinFillFraction float64

	// MaxSubtemplates is the template store's capacity.
	MaxSubtemplates int

	// SortSubtemplates and DiversityPrune select a post-enrollment
	// curation policy; at most one should be set (SortSubtemplates takes
	// precedence if both are).
	SortSubtemplates bool
	DiversityPrune   bool

	// CSV switches the benchmark driver's verification output to
	// machine-readable CSV on stdout, with diagnostics moved to stderr.
	CSV bool

	// ScoreHistogram, if non-empty, is a PNG path the benchmark driver
	// renders a verification score histogram to (gonum.org/v1/plot),
	// a diagnostic enrichment beyond spec.md.
	ScoreHistogram string
}

// Validate fills in zero-valued fields with their documented defaults,
// logging each substitution via LogInvalidField, mirroring
// revid/config.Config.Validate.
func (c *Config) Validate() error {
	if c.ScanWidth <= 0 {
		c.LogInvalidField("ScanWidth", pixel.DefaultScanWidth)
		c.ScanWidth = pixel.DefaultScanWidth
	}
	if c.Height <= 0 {
		c.LogInvalidField("Height", pixel.DefaultHeight)
		c.Height = pixel.DefaultHeight
	}
	if c.CropWidth <= 0 {
		c.LogInvalidField("CropWidth", pixel.DefaultWidth)
		c.CropWidth = pixel.DefaultWidth
	}
	if c.Boost <= 0 {
		c.LogInvalidField("Boost", pixel.DefaultBoost)
		c.Boost = pixel.DefaultBoost
	}
	if c.StddevThreshold <= 0 {
		c.LogInvalidField("StddevThreshold", gate.DefaultStddevThreshold)
		c.StddevThreshold = gate.DefaultStddevThreshold
	}
	if c.KeypointThreshold <= 0 {
		c.LogInvalidField("KeypointThreshold", gate.DefaultKeypointThreshold)
		c.KeypointThreshold = gate.DefaultKeypointThreshold
	}
	if c.ScoreThreshold <= 0 {
		c.LogInvalidField("ScoreThreshold", bench.DefaultScoreThreshold)
		c.ScoreThreshold = bench.DefaultScoreThreshold
	}
	if c.StudyThreshold <= 0 {
		c.LogInvalidField("StudyThreshold", bench.DefaultStudyThreshold)
		c.StudyThreshold = bench.DefaultStudyThreshold
	}
	if c.StudyV2 {
		c.TemplateStudy = true
	}
	if c.MinFillFraction <= 0 {
		c.LogInvalidField("MinFillFraction", bench.DefaultMinFillFraction)
		c.MinFillFraction = bench.DefaultMinFillFraction
	}
	if c.MaxSubtemplates <= 0 {
		c.LogInvalidField("MaxSubtemplates", curate.DefaultTargetCount)
		c.MaxSubtemplates = curate.DefaultTargetCount
	}
	return nil
}

// LogInvalidField logs that a config field was bad or unset and has been
// defaulted, matching revid/config.Config.LogInvalidField's wording and
// key-value convention.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", "value", def)
}

// MinFill returns the QualityRankedAdd min_fill derived from
// MaxSubtemplates and MinFillFraction.
func (c *Config) MinFill() int {
	return int(float64(c.MaxSubtemplates) * c.MinFillFraction)
}

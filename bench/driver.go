/*
NAME
  driver.go

DESCRIPTION
  driver.go implements the enrollment and verification benchmark driver.

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

// Package bench implements the benchmark driver: enrollment and
// verification over lists of raw or preprocessed fingerprint images,
// classifying every verification attempt into MATCH/FAIL/SKIP/ERROR and
// reporting the resulting false reject rate, matching
// original_source/tools/benchmark/sigfm-batch.c's loop structure.
package bench

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/utils/logging"

	"github.com/buxel/fpbench/curate"
	"github.com/buxel/fpbench/gate"
	"github.com/buxel/fpbench/pixel"
	"github.com/buxel/fpbench/rawio"
	"github.com/buxel/fpbench/sigfm"
	"github.com/buxel/fpbench/study"
	"github.com/buxel/fpbench/template"
)

const pkg = "bench: "

// DefaultScoreThreshold is the production match/fail boundary (spec.md's
// resolved open question; an earlier tool used 40).
const DefaultScoreThreshold = 6

// DefaultStudyThreshold gates study consideration at the same boundary as
// a match by default: a frame must at least match before it is a study
// candidate.
const DefaultStudyThreshold = DefaultScoreThreshold

// DefaultMinFillFraction is quality-ranked add's min_fill as a fraction
// of capacity (spec.md's resolved open question).
const DefaultMinFillFraction = 0.5

// Driver orchestrates one enrollment pass and one verification pass
// against a template.Store. It owns no descriptors itself; Extract'd
// descriptors are released by the Driver immediately after each frame is
// classified.
type Driver struct {
	Extractor sigfm.Extractor
	Store     *template.Store
	Logger    logging.Logger

	// Calibration, if non-nil, is subtracted from every raw (.bin) frame
	// before preprocessing. ScanWidth and Height describe raw frame
	// geometry; PixelOptions carries the remaining pixel.Process knobs
	// (CropWidth, Boost, SkipUnsharp, SkipCrop).
	Calibration  *pixel.Frame
	ScanWidth    int
	Height       int
	PixelOptions pixel.Options

	StddevThreshold   int
	KeypointThreshold int
	ScoreThreshold    int
	StudyThreshold    int

	QualityEnroll    bool
	MinFill          int
	SortSubtemplates bool
	DiversityPrune   bool
	MaxSubtemplates  int

	// Study, if non-nil, is invoked on every accepted (MATCH) frame
	// scoring at or above StudyThreshold. RecordStudyHits additionally
	// calls Study.RecordHit on every MATCH, independent of whether Study
	// itself is invoked (the multi-layer engine's L5 gate depends on
	// this being called regardless of StudyThreshold).
	Study           study.Engine
	RecordStudyHits bool
}

// NewDriver returns a Driver with a freshly allocated template.Store of
// the given capacity.
func NewDriver(ex sigfm.Extractor, capacity int, log logging.Logger) *Driver {
	return &Driver{
		Extractor: ex,
		Store:     template.New(ex, capacity),
		Logger:    log,
	}
}

// loadImage reads path, preprocessing it if it is a raw (.bin) frame or
// reading it directly if it is already a processed PGM (.pgm), following
// the naming convention of original_source/tools/replay-pipeline.c.
func (d *Driver) loadImage(path string) (pixel.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".pgm") {
		return rawio.ReadPGM(path)
	}

	frame, err := rawio.ReadFrame(path, d.ScanWidth, d.Height)
	if err != nil {
		return pixel.Image{}, err
	}
	opts := d.PixelOptions
	opts.Calibration = d.Calibration
	return pixel.Process(frame, opts), nil
}

// Enroll reads every file in paths, admitting each that clears both
// quality gates into the template store, then applies the configured
// curation policy (if any) down to MaxSubtemplates. It returns an error
// if no frame was enrolled (spec.md scenario S3).
func (d *Driver) Enroll(paths []string) (EnrollReport, error) {
	var rpt EnrollReport
	var kpSum float64
	var extracted int

	for _, path := range paths {
		rpt.Attempted++

		img, err := d.loadImage(path)
		if err != nil {
			d.Logger.Info(pkg+"enroll: could not read frame, rejecting", "file", path, "error", err)
			rpt.Rejected++
			continue
		}

		ok, stats := gate.Stddev(img, d.StddevThreshold)
		if !ok {
			d.Logger.Info(pkg+"enroll: REJECT (stddev below threshold)", "file", path, "stddev", stats.StdDev, "threshold", d.StddevThreshold)
			rpt.Rejected++
			continue
		}

		desc := d.Extractor.Extract(img.Pix, img.Width, img.Height)
		if desc == nil {
			d.Logger.Info(pkg+"enroll: REJECT (feature extraction failed)", "file", path)
			rpt.Rejected++
			continue
		}

		// Keypoint min/max/mean are tracked over every extracted frame,
		// before the keypoint gate runs, matching sigfm-batch.c's
		// enroll_kp_min/max/total bookkeeping.
		kp := d.Extractor.KeypointsCount(desc)
		extracted++
		kpSum += float64(kp)
		if extracted == 1 || kp < rpt.KeypointMin {
			rpt.KeypointMin = kp
		}
		if kp > rpt.KeypointMax {
			rpt.KeypointMax = kp
		}

		if !gate.Keypoints(kp, d.KeypointThreshold) {
			d.Logger.Info(pkg+"enroll: REJECT (keypoints below threshold)", "file", path, "keypoints", kp, "threshold", d.KeypointThreshold)
			d.Extractor.Release(desc)
			rpt.Rejected++
			continue
		}

		var admitted bool
		if d.QualityEnroll {
			admitted = d.Store.QualityRankedAdd(desc, kp, d.MinFill)
		} else {
			admitted = d.Store.Add(desc, kp)
		}
		if !admitted {
			// A refused plain Add leaves desc with the caller;
			// QualityRankedAdd has already released it.
			if !d.QualityEnroll {
				d.Extractor.Release(desc)
			}
			d.Logger.Info(pkg+"enroll: REJECT (not admitted)", "file", path, "keypoints", kp)
			rpt.Rejected++
			continue
		}

		d.Logger.Info(pkg+"enroll: OK", "file", path, "keypoints", kp)
		rpt.Enrolled++
	}

	if rpt.Enrolled == 0 {
		return rpt, fmt.Errorf(pkg + "no frames enrolled")
	}
	rpt.KeypointMean = int(kpSum / float64(extracted))

	switch {
	case d.SortSubtemplates:
		curate.SortTruncate(d.Store, d.MaxSubtemplates)
	case d.DiversityPrune:
		curate.DiversityPrune(d.Store, d.MaxSubtemplates)
	}

	return rpt, nil
}

// Verify reads every file in paths and matches it against the template
// store, classifying each into MATCH/FAIL/SKIP/ERROR and invoking the
// configured study engine on accepted matches.
func (d *Driver) Verify(paths []string) VerifyReport {
	var rpt VerifyReport
	var scoreSum float64
	haveScore := false

	for i, path := range paths {
		rec := VerifyRecord{Index: i, File: path}

		img, err := d.loadImage(path)
		if err != nil {
			d.Logger.Info(pkg+"verify: ERROR (could not read frame)", "file", path, "error", err)
			rec.Result = ERROR
			rpt.Errors++
			rpt.Records = append(rpt.Records, rec)
			continue
		}

		ok, stats := gate.Stddev(img, d.StddevThreshold)
		if !ok {
			d.Logger.Info(pkg+"verify: SKIP (stddev below threshold)", "file", path, "stddev", stats.StdDev, "threshold", d.StddevThreshold)
			rec.Result = SKIP
			rpt.Skips++
			rpt.Records = append(rpt.Records, rec)
			continue
		}

		desc := d.Extractor.Extract(img.Pix, img.Width, img.Height)
		if desc == nil {
			d.Logger.Info(pkg+"verify: SKIP (feature extraction failed)", "file", path)
			rec.Result = SKIP
			rpt.Skips++
			rpt.Records = append(rpt.Records, rec)
			continue
		}

		kp := d.Extractor.KeypointsCount(desc)
		rec.Keypoints = kp
		if !gate.Keypoints(kp, d.KeypointThreshold) {
			d.Logger.Info(pkg+"verify: SKIP (keypoints below threshold)", "file", path, "keypoints", kp, "threshold", d.KeypointThreshold)
			d.Extractor.Release(desc)
			rec.Result = SKIP
			rpt.Skips++
			rpt.Records = append(rpt.Records, rec)
			continue
		}

		result := d.Store.Match(desc)
		if result.Score < 0 {
			d.Logger.Info(pkg+"verify: ERROR (matcher error)", "file", path)
			d.Extractor.Release(desc)
			rec.Result = ERROR
			rpt.Errors++
			rpt.Records = append(rpt.Records, rec)
			continue
		}
		rec.Score = result.Score
		scoreSum += float64(result.Score)
		if !haveScore || result.Score < rpt.ScoreMin {
			rpt.ScoreMin = result.Score
		}
		if result.Score > rpt.ScoreMax {
			rpt.ScoreMax = result.Score
		}
		haveScore = true

		if result.Score >= d.ScoreThreshold {
			rec.Result = MATCH
			rpt.Matches++
			if d.Study != nil {
				if d.RecordStudyHits {
					d.Study.RecordHit(result.Index)
				}
				if result.Score >= d.StudyThreshold {
					if d.Study.Study(desc, kp) {
						rec.StudyUpdated = true
						rpt.Updates++
					}
				}
			}
			d.Logger.Info(pkg+"verify: MATCH", "file", path, "score", result.Score, "index", result.Index)
		} else {
			rec.Result = FAIL
			rpt.Fails++
			d.Logger.Info(pkg+"verify: FAIL", "file", path, "score", result.Score)
		}

		d.Extractor.Release(desc)
		rpt.Records = append(rpt.Records, rec)
	}

	if denom := rpt.Matches + rpt.Fails; denom > 0 {
		rpt.FRR = float64(rpt.Fails) / float64(denom)
	}
	if haveScore {
		scores := make([]float64, 0, len(rpt.Records))
		for _, r := range rpt.Records {
			if r.Result == MATCH || r.Result == FAIL {
				scores = append(scores, float64(r.Score))
			}
		}
		rpt.ScoreMean = stat.Mean(scores, nil)
	}

	return rpt
}

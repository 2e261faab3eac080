/*
NAME
  main.go

DESCRIPTION
  main.go is the fpbench offline enrollment/verification benchmark CLI.

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

// Package fpbench is the offline enrollment/verification benchmark
// driver CLI: it enrolls a list of fingerprint images into a template,
// optionally curates it, then verifies a second list against it and
// reports MATCH/FAIL/SKIP/ERROR counts and the resulting false reject
// rate.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/buxel/fpbench/bench"
	"github.com/buxel/fpbench/config"
	"github.com/buxel/fpbench/sigfm"
	"github.com/buxel/fpbench/study"
)

const (
	logPath      = "fpbench.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	var (
		enroll           = flag.String("enroll", "", "comma-separated list of enrollment image files")
		verify           = flag.String("verify", "", "comma-separated list of verification image files")
		calPath          = flag.String("cal", "", "calibration frame, required for .bin inputs")
		scanWidth        = flag.Int("scan-width", 0, "raw frame width in samples (0 = default)")
		height           = flag.Int("height", 0, "raw frame / image height (0 = default)")
		cropWidth        = flag.Int("width", 0, "processed image width after center crop (0 = default)")
		boost            = flag.Int("boost", 0, "unsharp mask boost factor (0 = default)")
		stddevGate       = flag.Int("stddev-gate", 0, "stddev gate threshold (0 = default)")
		qualityGate      = flag.Int("quality-gate", 0, "keypoint gate threshold (0 = default)")
		scoreThreshold   = flag.Int("score-threshold", 0, "match/fail score boundary (0 = default)")
		studyThreshold   = flag.Int("study-threshold", 0, "minimum score to consider for study (0 = default)")
		templateStudy    = flag.Bool("template-study", false, "enable the naive study engine")
		studyV2          = flag.Bool("study-v2", false, "enable the multi-layer study engine (implies --template-study)")
		qualityEnroll    = flag.Bool("quality-enroll", false, "use quality-ranked admission during enrollment")
		diversityPrune   = flag.Bool("diversity-prune", false, "curate with diversity pruning after enrollment")
		sortSubtemplates = flag.Bool("sort-subtemplates", false, "curate with score-sort truncation after enrollment")
		maxSubtemplates  = flag.Int("max-subtemplates", 0, "template store capacity (0 = default)")
		csvOut           = flag.Bool("csv", false, "write machine-readable verification results to stdout")
		scoreHistogram   = flag.String("score-histogram", "", "optional PNG path for a verification score histogram")
	)
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logging.Info, io.MultiWriter(fileLog, os.Stderr), true)

	if *enroll == "" || *verify == "" {
		fmt.Fprintln(os.Stderr, "fpbench: --enroll and --verify are both required")
		flag.Usage()
		os.Exit(1)
	}

	c := config.Config{
		Logger:            log,
		ScanWidth:         *scanWidth,
		Height:            *height,
		CropWidth:         *cropWidth,
		Boost:             *boost,
		StddevThreshold:   *stddevGate,
		KeypointThreshold: *qualityGate,
		ScoreThreshold:    *scoreThreshold,
		StudyThreshold:    *studyThreshold,
		TemplateStudy:     *templateStudy,
		StudyV2:           *studyV2,
		QualityEnroll:     *qualityEnroll,
		DiversityPrune:    *diversityPrune,
		SortSubtemplates:  *sortSubtemplates,
		MaxSubtemplates:   *maxSubtemplates,
		CSV:               *csvOut,
		ScoreHistogram:    *scoreHistogram,
	}

	if err := c.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	driver := bench.NewDriver(sigfm.NewStub(), c.MaxSubtemplates, log)
	driver.StddevThreshold = c.StddevThreshold
	driver.KeypointThreshold = c.KeypointThreshold
	driver.ScoreThreshold = c.ScoreThreshold
	driver.StudyThreshold = c.StudyThreshold
	driver.ScanWidth = c.ScanWidth
	driver.Height = c.Height
	driver.PixelOptions.CropWidth = c.CropWidth
	driver.PixelOptions.Boost = c.Boost
	driver.QualityEnroll = c.QualityEnroll
	driver.MinFill = c.MinFill()
	driver.SortSubtemplates = c.SortSubtemplates
	driver.DiversityPrune = c.DiversityPrune
	driver.MaxSubtemplates = c.MaxSubtemplates

	if *calPath != "" {
		cal, err := loadCalibration(*calPath, c.ScanWidth, c.Height)
		if err != nil {
			log.Error("could not load calibration", "error", err)
			os.Exit(1)
		}
		driver.Calibration = &cal
	}

	enrollReport, err := driver.Enroll(splitList(*enroll))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fpbench: %v\n", err)
		os.Exit(1)
	}
	log.Info("enrollment complete", "attempted", enrollReport.Attempted, "enrolled", enrollReport.Enrolled,
		"rejected", enrollReport.Rejected, "kp_min", enrollReport.KeypointMin, "kp_max", enrollReport.KeypointMax,
		"kp_mean", enrollReport.KeypointMean)

	if c.TemplateStudy {
		state := study.NewState(driver.Store)
		if c.StudyV2 {
			driver.Study = study.NewMultiLayer(driver.Store, state)
			driver.RecordStudyHits = true
		} else {
			driver.Study = study.NewNaive(driver.Store)
		}
	}

	verifyReport := driver.Verify(splitList(*verify))
	log.Info("verification complete", "matches", verifyReport.Matches, "fails", verifyReport.Fails,
		"skips", verifyReport.Skips, "errors", verifyReport.Errors, "frr", verifyReport.FRR,
		"updates", verifyReport.Updates)

	if c.CSV {
		if err := bench.WriteCSV(os.Stdout, verifyReport.Records); err != nil {
			log.Error("could not write csv", "error", err)
		}
	} else {
		fmt.Printf("matches=%d fails=%d skips=%d errors=%d frr=%.4f score_min=%d score_max=%d score_mean=%.2f updates=%d\n",
			verifyReport.Matches, verifyReport.Fails, verifyReport.Skips, verifyReport.Errors, verifyReport.FRR,
			verifyReport.ScoreMin, verifyReport.ScoreMax, verifyReport.ScoreMean, verifyReport.Updates)
	}

	if c.ScoreHistogram != "" {
		if err := bench.WriteScoreHistogram(c.ScoreHistogram, verifyReport.Records); err != nil {
			log.Error("could not write score histogram", "error", err)
		}
	}

	os.Exit(verifyReport.ExitCode())
}

/*
NAME
  main.go

DESCRIPTION
  main.go is the fppreprocess offline preprocessing replay CLI.

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

// Package fppreprocess replays the offline preprocessing pipeline
// (calibration subtract, percentile squash, unsharp mask, center crop)
// over raw sensor frames, writing processed PGM images that can later be
// fed to cmd/fpbench. It supports a single raw/calibration/output triple
// or a batch mode that scans a directory for raw_*.bin captures.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/buxel/fpbench/pixel"
	"github.com/buxel/fpbench/rawio"
)

const (
	logPath      = "fppreprocess.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	var (
		rawPath    = flag.String("raw", "", "raw frame file")
		calPath    = flag.String("cal", "", "calibration frame file (optional)")
		outPath    = flag.String("o", "", "output PGM path")
		batchDir   = flag.String("batch", "", "process every raw_*.bin in DIR instead of a single --raw/-o pair")
		boost      = flag.Int("boost", pixel.DefaultBoost, "unsharp mask boost factor")
		scanWidth  = flag.Int("scan-width", pixel.DefaultScanWidth, "raw frame width in samples")
		height     = flag.Int("height", pixel.DefaultHeight, "raw frame height")
		cropWidth  = flag.Int("width", pixel.DefaultWidth, "output crop width")
		noCrop     = flag.Bool("no-crop", false, "skip the center-crop stage")
		noUnsharp  = flag.Bool("no-unsharp", false, "skip the unsharp mask stage")
	)
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logging.Info, io.MultiWriter(fileLog, os.Stderr), true)

	opts := pixel.Options{
		CropWidth:   *cropWidth,
		Boost:       *boost,
		SkipUnsharp: *noUnsharp,
		SkipCrop:    *noCrop,
	}

	if *batchDir != "" {
		count, errs := batchProcess(log, *batchDir, *calPath, *scanWidth, *height, opts)
		log.Info("batch preprocessing complete", "processed", count, "errors", errs)
		if errs > 0 {
			os.Exit(1)
		}
		return
	}

	if *rawPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "fppreprocess: --raw and -o are required outside --batch mode")
		flag.Usage()
		os.Exit(1)
	}

	if err := processOne(log, *rawPath, *calPath, *outPath, *scanWidth, *height, opts); err != nil {
		log.Error("processing failed", "raw", *rawPath, "error", err)
		os.Exit(1)
	}
}

// processOne runs the four-stage pipeline over one raw frame and writes
// the result to outPath. A missing or unreadable calPath is a warning,
// not an error, matching spec.md §4.1's "calibration unavailable" case.
func processOne(log logging.Logger, rawPath, calPath, outPath string, scanWidth, height int, opts pixel.Options) error {
	frame, err := rawio.ReadFrame(rawPath, scanWidth, height)
	if err != nil {
		return fmt.Errorf("fppreprocess: reading %s: %w", rawPath, err)
	}

	if calPath != "" {
		cal, err := rawio.ReadCalibration(calPath, scanWidth, height)
		if err != nil {
			log.Info("fppreprocess: could not read calibration, skipping subtract", "path", calPath, "error", err)
		} else {
			opts.Calibration = &cal
		}
	}

	img := pixel.Process(frame, opts)

	if err := rawio.WritePGM(outPath, img); err != nil {
		return fmt.Errorf("fppreprocess: writing %s: %w", outPath, err)
	}
	log.Info("fppreprocess: processed", "raw", rawPath, "out", outPath, "width", img.Width, "height", img.Height)
	return nil
}

// batchProcess scans dir for files matching raw_*.bin and writes each to
// <stem>.pgm in the same directory, auto-detecting calibration.bin when
// calPath is empty, matching original_source/tools/replay-pipeline.c's
// batch_process naming rule exactly.
func batchProcess(log logging.Logger, dir, calPath string, scanWidth, height int, opts pixel.Options) (processed, errs int) {
	if calPath == "" {
		auto := filepath.Join(dir, "calibration.bin")
		if _, err := os.Stat(auto); err == nil {
			calPath = auto
			log.Info("fppreprocess: auto-detected calibration", "path", calPath)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("fppreprocess: could not read batch directory", "dir", dir, "error", err)
		return 0, 1
	}

	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasPrefix(name, "raw_") || !strings.HasSuffix(name, ".bin") {
			continue
		}
		stem := strings.TrimSuffix(strings.TrimPrefix(name, "raw_"), ".bin")
		rawPath := filepath.Join(dir, name)
		outPath := filepath.Join(dir, stem+".pgm")

		if err := processOne(log, rawPath, calPath, outPath, scanWidth, height, opts); err != nil {
			log.Error("fppreprocess: batch entry failed", "raw", rawPath, "error", err)
			errs++
			continue
		}
		processed++
	}
	return processed, errs
}
